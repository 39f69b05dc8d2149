package readers

import (
	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/record"
)

// Field is a named output slot bound to one extractor. Fields are the
// elements of information extracted for each document.
type Field struct {
	// Name is the field's key in extracted documents. Must be non-empty and
	// unique within a reader.
	Name string
	// Extractor defines how this field's value is computed from source data.
	Extractor extract.Extractor
	// Required discards any document whose value for this field is nil.
	Required bool
	// Skip keeps the field out of extracted documents. Such fields exist
	// for side effects only.
	Skip bool
}

// FieldNames returns the name of every given field, in order.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].Name
	}
	return names
}

func requiredFieldNames(fields []Field) []string {
	var names []string
	for _, field := range fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	return names
}

func validateFields(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return errors.Wrap(ErrConfiguration, "field with empty name")
		}
		if _, ok := seen[field.Name]; ok {
			return errors.Wrapf(ErrConfiguration, "duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Extractor == nil {
			return errors.Wrapf(ErrConfiguration, "field %q has no extractor", field.Name)
		}
	}
	return nil
}

// RejectExtractors fails if any field uses an extractor of one of the given
// kinds. Reader bases call this from Validate to enforce, at configuration
// time, that no field carries an extractor meant for a different data shape.
func RejectExtractors(fields []Field, kinds ...extract.Kind) error {
	for _, field := range fields {
		if field.Extractor == nil {
			continue
		}
		for _, kind := range kinds {
			if field.Extractor.Kind() == kind {
				return errors.Wrapf(ErrConfiguration,
					"field %q uses a %s extractor, which cannot be used with this type of data", field.Name, kind)
			}
		}
	}
	return nil
}

// DocumentFromContext assembles one document by applying every non-skip
// field's extractor to the given context. An extractor or transform error
// aborts the record.
func DocumentFromContext(fields []Field, ctx *extract.Context) (record.Document, error) {
	doc := make(record.Document, len(fields))
	for _, field := range fields {
		if field.Skip {
			continue
		}
		value, err := field.Extractor.Apply(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't extract field %q", field.Name)
		}
		doc[field.Name] = value
	}
	return doc, nil
}
