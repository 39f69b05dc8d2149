// Package config loads declarative dataset descriptors for the command line
// surface.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FieldSpec declares one output field of a dataset.
type FieldSpec struct {
	Name     string `yaml:"name"`
	Column   string `yaml:"column"`
	Required bool   `yaml:"required"`
	Skip     bool   `yaml:"skip"`
	// Transform names an optional value conversion: int, float or strip.
	Transform string `yaml:"transform"`
}

// Dataset describes a declarative dataset: the file format, a glob pattern
// enumerating its source files, free-form format options and the field list.
type Dataset struct {
	Format  string                 `yaml:"format"`
	Glob    string                 `yaml:"glob"`
	Options map[string]interface{} `yaml:"options"`
	Fields  []FieldSpec            `yaml:"fields"`
}

// Read loads and checks a dataset descriptor file.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read dataset descriptor %s", path)
	}
	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, errors.Wrap(err, "couldn't parse dataset descriptor")
	}
	if dataset.Format == "" {
		return nil, errors.New("dataset descriptor is missing a format")
	}
	if dataset.Glob == "" {
		return nil, errors.New("dataset descriptor is missing a source glob")
	}
	if len(dataset.Fields) == 0 {
		return nil, errors.New("dataset descriptor declares no fields")
	}
	for _, field := range dataset.Fields {
		if field.Name == "" {
			return nil, errors.New("dataset field with empty name")
		}
	}
	return &dataset, nil
}
