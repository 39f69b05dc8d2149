package config

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when an option field is absent and no default was
// given.
var ErrNotFound = errors.New("field not found")

// Option configures an option lookup.
type Option func(options *options)

type options struct {
	withDefault  bool
	defaultValue interface{}
}

func getOptions(opts ...Option) *options {
	defaultOptions := &options{}
	for _, opt := range opts {
		opt(defaultOptions)
	}
	return defaultOptions
}

// WithDefault supplies the value used when the field is absent.
func WithDefault(value interface{}) Option {
	return func(options *options) {
		options.withDefault = true
		options.defaultValue = value
	}
}

// GetInterface gets the given field irrelevant of its type.
func GetInterface(config map[string]interface{}, field string, opts ...Option) (interface{}, error) {
	options := getOptions(opts...)
	element, ok := config[field]
	if !ok {
		if options.withDefault {
			return options.defaultValue, nil
		}
		return nil, ErrNotFound
	}
	return element, nil
}

// GetString gets a string from the given field.
func GetString(config map[string]interface{}, field string, opts ...Option) (string, error) {
	out, err := GetInterface(config, field, opts...)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't get %v", field)
	}
	outString, ok := out.(string)
	if !ok {
		return "", errors.Errorf("%v should be a string, got: %v", field, reflect.TypeOf(out))
	}
	return outString, nil
}

// GetInt gets an int from the given field. Numeric strings are converted.
func GetInt(config map[string]interface{}, field string, opts ...Option) (int, error) {
	out, err := GetInterface(config, field, opts...)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't get %v", field)
	}
	switch value := out.(type) {
	case int:
		return value, nil
	case string:
		number, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Wrapf(err, "%v should be an int, got the unparsable string %v", field, value)
		}
		return number, nil
	default:
		return 0, errors.Errorf("%v should be an int, got: %v", field, reflect.TypeOf(out))
	}
}

// GetBool gets a bool from the given field.
func GetBool(config map[string]interface{}, field string, opts ...Option) (bool, error) {
	out, err := GetInterface(config, field, opts...)
	if err != nil {
		return false, errors.Wrapf(err, "couldn't get %v", field)
	}
	outBool, ok := out.(bool)
	if !ok {
		return false, errors.Errorf("%v should be a bool, got: %v", field, reflect.TypeOf(out))
	}
	return outBool, nil
}
