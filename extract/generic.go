package extract

import (
	"os"

	"github.com/pkg/errors"
)

// Constant extracts the same value for every record, regardless of input.
// Especially useful in combination with Backup or Choice.
type Constant struct {
	value interface{}
	options
}

func NewConstant(value interface{}, opts ...Option) *Constant {
	return &Constant{value: value, options: getOptions(opts...)}
}

func (e *Constant) Kind() Kind { return KindConstant }

func (e *Constant) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(*Context) (interface{}, error) {
		return e.value, nil
	})
}

// Metadata extracts a value from the source metadata.
type Metadata struct {
	key string
	options
}

func NewMetadata(key string, opts ...Option) *Metadata {
	return &Metadata{key: key, options: getOptions(opts...)}
}

func (e *Metadata) Kind() Kind { return KindMetadata }

func (e *Metadata) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		return ctx.Metadata[e.key], nil
	})
}

// Choice uses the first extractor whose applicability predicate passes for
// the source metadata. List extractors in descending order of preference.
//
// Note the difference with Backup: Choice decides based on metadata rather
// than on the extracted value.
type Choice struct {
	extractors []Extractor
	options
}

func NewChoice(extractors ...Extractor) *Choice {
	return &Choice{extractors: extractors}
}

func (e *Choice) Kind() Kind { return KindChoice }

func (e *Choice) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		for _, sub := range e.extractors {
			if sub.Applicable(ctx.Metadata) {
				return sub.Apply(ctx)
			}
		}
		return nil, nil
	})
}

// Backup tries the given extractors in order and returns the first non-empty
// result.
type Backup struct {
	extractors []Extractor
	options
}

func NewBackup(extractors ...Extractor) *Backup {
	return &Backup{extractors: extractors}
}

func (e *Backup) Kind() Kind { return KindBackup }

func (e *Backup) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		for _, sub := range e.extractors {
			value, err := sub.Apply(ctx)
			if err != nil {
				return nil, err
			}
			if !empty(value) {
				return value, nil
			}
		}
		return nil, nil
	})
}

// Combined applies all given extractors and returns their results as a list.
type Combined struct {
	extractors []Extractor
	options
}

func NewCombined(extractors ...Extractor) *Combined {
	return &Combined{extractors: extractors}
}

func (e *Combined) Kind() Kind { return KindCombined }

func (e *Combined) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		out := make([]interface{}, len(e.extractors))
		for i, sub := range e.extractors {
			value, err := sub.Apply(ctx)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	})
}

// Pass passes through the value of another extractor. Useful to stack
// multiple transforms.
type Pass struct {
	extractor Extractor
	options
}

func NewPass(extractor Extractor, opts ...Option) *Pass {
	return &Pass{extractor: extractor, options: getOptions(opts...)}
}

func (e *Pass) Kind() Kind { return KindPass }

func (e *Pass) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		return e.extractor.Apply(ctx)
	})
}

// Order extracts the index of the record within its source. The reader's
// iteration step maintains the counter.
type Order struct {
	options
}

func NewOrder(opts ...Option) *Order {
	return &Order{options: getOptions(opts...)}
}

func (e *Order) Kind() Kind { return KindOrder }

func (e *Order) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		return ctx.Index, nil
	})
}

// StreamHandler extracts a value from an opened external file.
type StreamHandler func(f *os.File) (interface{}, error)

// ExternalFile opens the file named by the "associated_file" metadata key and
// hands the stream to the given handler. The file is closed when the handler
// returns.
type ExternalFile struct {
	handler StreamHandler
	options
}

func NewExternalFile(handler StreamHandler, opts ...Option) *ExternalFile {
	return &ExternalFile{handler: handler, options: getOptions(opts...)}
}

func (e *ExternalFile) Kind() Kind { return KindExternalFile }

func (e *ExternalFile) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		path, ok := ctx.Metadata["associated_file"].(string)
		if !ok {
			return nil, errors.New("external file extraction requires an associated_file metadata entry")
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't open associated file %s", path)
		}
		defer f.Close()
		return e.handler(f)
	})
}
