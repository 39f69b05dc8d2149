// Package readers implements the generic extraction pipeline that turns
// heterogeneous source files into a uniform stream of flat documents, driven
// by a declarative field list.
//
// A concrete reader is a Definition: it declares its fields, enumerates its
// sources, and knows how to iterate records out of decoded data. Format
// bases (see the formats subpackages) provide the decoding and iteration for
// a file type; a dataset definition embeds one of them and adds Fields and
// Sources.
package readers

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/record"
)

// Data is the decoded, format-specific representation of one source: a
// parsed tree, an open row cursor, a parsed graph. When the concrete value
// implements io.Closer it is treated as a scoped resource and released by
// the stream that consumes it.
type Data interface{}

// Definition describes a dataset: what fields each document contains, where
// the source files come from, and how records are iterated out of decoded
// source data.
type Definition interface {
	Fields() []Field
	// Sources enumerates the dataset's entries, typically file paths paired
	// with per-source metadata.
	Sources() ([]Source, error)
	// Iterate produces the raw per-record documents of one decoded source.
	Iterate(data Data, metadata record.Metadata) (DocumentStream, error)
}

// FileDecoder decodes a file path into format data. A definition must
// implement this or BytesDecoder (or both) to resolve sources.
type FileDecoder interface {
	DecodeFile(path string) (Data, error)
}

// BytesDecoder decodes raw file contents into format data.
type BytesDecoder interface {
	DecodeBytes(data []byte) (Data, error)
}

// Validator lets a definition check its configuration before any data is
// touched. Reader bases use it to reject extractors that don't match their
// data shape.
type Validator interface {
	Validate() error
}

// Reader orchestrates extraction over a definition: it resolves sources,
// filters out documents missing required fields, and exposes bulk iteration
// and CSV export.
type Reader struct {
	def Definition
}

// New returns a reader over the given definition.
func New(def Definition) *Reader {
	return &Reader{def: def}
}

// FieldNames returns the name of each of the definition's fields.
func (r *Reader) FieldNames() []string {
	return FieldNames(r.def.Fields())
}

func (r *Reader) validate() error {
	if err := validateFields(r.def.Fields()); err != nil {
		return err
	}
	if v, ok := r.def.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// resolve unpacks a source into decoded data and its metadata.
func (r *Reader) resolve(source Source) (Data, record.Metadata, error) {
	metadata := source.Metadata
	if metadata == nil {
		metadata = record.Metadata{}
	}

	switch {
	case source.Path != "" && source.Bytes != nil:
		return nil, nil, errors.Wrap(ErrConfiguration, "source carries both a path and raw bytes")
	case source.Path != "":
		info, err := os.Stat(source.Path)
		if err != nil || info.IsDir() {
			return nil, nil, errors.Wrapf(ErrPathNotFound, "invalid file path: %s", source.Path)
		}
		decoder, ok := r.def.(FileDecoder)
		if !ok {
			return nil, nil, errors.Wrap(ErrNotSupported, "this reader does not support file path input")
		}
		data, err := decoder.DecodeFile(source.Path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "couldn't decode %s", source.Path)
		}
		return data, metadata, nil
	case source.Bytes != nil:
		decoder, ok := r.def.(BytesDecoder)
		if !ok {
			return nil, nil, errors.Wrap(ErrNotSupported, "this reader does not support bytes input")
		}
		data, err := decoder.DecodeBytes(source.Bytes)
		if err != nil {
			return nil, nil, errors.Wrap(err, "couldn't decode source bytes")
		}
		return data, metadata, nil
	default:
		return nil, nil, errors.Wrap(ErrUnsupportedSource, "source carries neither a path nor raw bytes")
	}
}

// SourceDocuments returns the lazy document stream of a single source.
// Documents missing a value for a required field are silently dropped. The
// returned stream owns the decoded data; it is released when the stream is
// drained, fails, or is closed.
func (r *Reader) SourceDocuments(source Source) (DocumentStream, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	data, metadata, err := r.resolve(source)
	if err != nil {
		return nil, err
	}
	closer, _ := data.(io.Closer)

	inner, err := r.def.Iterate(data, metadata)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, errors.Wrap(err, "couldn't iterate source data")
	}
	return &sourceStream{
		inner:    inner,
		data:     closer,
		required: requiredFieldNames(r.def.Fields()),
	}, nil
}

// Documents returns the document stream of all given sources in order. With
// no arguments, the definition's own Sources enumeration is used. A
// resolution or iteration error aborts the whole stream; callers that need
// per-source isolation drive SourceDocuments themselves.
func (r *Reader) Documents(sources ...Source) (DocumentStream, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		enumerated, err := r.def.Sources()
		if err != nil {
			return nil, errors.Wrap(err, "couldn't enumerate sources")
		}
		sources = enumerated
	}
	return &fanoutStream{reader: r, sources: sources}, nil
}
