package cmd

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/config"
	"github.com/lexiconlab/readers/extract"
	csvformat "github.com/lexiconlab/readers/formats/csv"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// globDataset is a dataset definition assembled from a descriptor: a tabular
// reader base plus a glob-based source enumeration.
type globDataset struct {
	*csvformat.Reader
	glob string
}

func (d *globDataset) Sources() ([]readers.Source, error) {
	paths, err := filepath.Glob(d.glob)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't expand source glob %s", d.glob)
	}
	if len(paths) == 0 {
		return nil, errors.Wrapf(readers.ErrPathNotFound, "source glob %s matched no files", d.glob)
	}
	sources := make([]readers.Source, len(paths))
	for i, path := range paths {
		sources[i] = readers.File(path).WithMetadata(record.Metadata{
			"filename": filepath.Base(path),
		})
	}
	return sources, nil
}

// buildReader assembles a reader from a dataset descriptor.
func buildReader(dataset *config.Dataset) (*readers.Reader, error) {
	if dataset.Format != "csv" {
		return nil, errors.Wrapf(readers.ErrNotSupported, "unknown dataset format %s", dataset.Format)
	}
	fields, err := buildFields(dataset.Fields)
	if err != nil {
		return nil, err
	}
	opts, err := tabularOptions(dataset.Options)
	if err != nil {
		return nil, err
	}
	return readers.New(&globDataset{
		Reader: csvformat.NewReader(fields, opts...),
		glob:   dataset.Glob,
	}), nil
}

func buildFields(specs []config.FieldSpec) ([]readers.Field, error) {
	fields := make([]readers.Field, len(specs))
	for i, spec := range specs {
		column := spec.Column
		if column == "" {
			column = spec.Name
		}
		var opts []extract.Option
		if spec.Transform != "" {
			transform, err := transformByName(spec.Transform)
			if err != nil {
				return nil, errors.Wrapf(err, "couldn't configure field %q", spec.Name)
			}
			opts = append(opts, extract.WithTransform(transform))
		}
		fields[i] = readers.Field{
			Name:      spec.Name,
			Extractor: extract.NewCSV(extract.CSVSpec{Column: column}, opts...),
			Required:  spec.Required,
			Skip:      spec.Skip,
		}
	}
	return fields, nil
}

func tabularOptions(options map[string]interface{}) ([]csvformat.Option, error) {
	var opts []csvformat.Option

	delimiter, err := config.GetString(options, "delimiter", config.WithDefault(","))
	if err != nil {
		return nil, err
	}
	if delimiter != "," {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return nil, errors.Wrapf(readers.ErrConfiguration, "delimiter must be a single character, got %q", delimiter)
		}
		opts = append(opts, csvformat.WithDelimiter(runes[0]))
	}

	skipLines, err := config.GetInt(options, "skipLines", config.WithDefault(0))
	if err != nil {
		return nil, err
	}
	if skipLines > 0 {
		opts = append(opts, csvformat.WithSkipLines(skipLines))
	}

	fieldEntry, err := config.GetString(options, "fieldEntry", config.WithDefault(""))
	if err != nil {
		return nil, err
	}
	if fieldEntry != "" {
		opts = append(opts, csvformat.WithFieldEntry(fieldEntry))
	}

	requiredColumn, err := config.GetString(options, "requiredColumn", config.WithDefault(""))
	if err != nil {
		return nil, err
	}
	if requiredColumn != "" {
		opts = append(opts, csvformat.WithRequiredColumn(requiredColumn))
	}

	return opts, nil
}

func transformByName(name string) (extract.TransformFunc, error) {
	switch name {
	case "int":
		return func(value interface{}) (interface{}, error) {
			text, ok := value.(string)
			if !ok {
				return nil, errors.Errorf("can't convert %T to an int", value)
			}
			number, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				return nil, errors.Wrapf(err, "couldn't convert %q to an int", text)
			}
			return number, nil
		}, nil
	case "float":
		return func(value interface{}) (interface{}, error) {
			text, ok := value.(string)
			if !ok {
				return nil, errors.Errorf("can't convert %T to a float", value)
			}
			number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "couldn't convert %q to a float", text)
			}
			return number, nil
		}, nil
	case "strip":
		return func(value interface{}) (interface{}, error) {
			text, ok := value.(string)
			if !ok {
				return nil, errors.Errorf("can't strip %T", value)
			}
			return strings.TrimSpace(text), nil
		}, nil
	default:
		return nil, errors.Errorf("unknown transform %q", name)
	}
}
