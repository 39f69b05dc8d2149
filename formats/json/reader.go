// Package json provides the reader base for JSON encoded data.
//
// A source holds either a single document object or, reached through the
// document path, a list of document objects.
package json

import (
	"os"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// Reader is the JSON reader base.
type Reader struct {
	fields       []readers.Field
	documentPath []string
}

// Option configures the JSON reader base.
type Option func(*Reader)

// WithDocumentPath sets the key path under which the list of documents is
// found. Without it, the top-level value is read as a single document.
func WithDocumentPath(keys ...string) Option {
	return func(r *Reader) {
		r.documentPath = keys
	}
}

func NewReader(fields []readers.Field, opts ...Option) *Reader {
	r := &Reader{fields: fields}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Fields() []readers.Field {
	return r.fields
}

// Sources must be provided by the embedding dataset definition.
func (r *Reader) Sources() ([]readers.Source, error) {
	return nil, errors.Wrap(readers.ErrNotSupported, "dataset definition is missing a sources enumeration")
}

// Validate rejects extractors meant for other data shapes.
func (r *Reader) Validate() error {
	return readers.RejectExtractors(r.fields,
		extract.KindCSV, extract.KindXML, extract.KindFilterAttribute, extract.KindRDF)
}

// parsed keeps the parser alive for as long as its values are in use.
type parsed struct {
	parser fastjson.Parser
	value  *fastjson.Value
}

func (r *Reader) DecodeFile(path string) (readers.Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read %s", path)
	}
	return r.DecodeBytes(data)
}

func (r *Reader) DecodeBytes(data []byte) (readers.Data, error) {
	out := &parsed{}
	value, err := out.parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse json")
	}
	out.value = value
	return out, nil
}

func (r *Reader) Iterate(data readers.Data, metadata record.Metadata) (readers.DocumentStream, error) {
	p, ok := data.(*parsed)
	if !ok {
		return nil, errors.Wrapf(readers.ErrConfiguration, "unexpected data type %T for a json reader", data)
	}
	value := p.value
	for _, key := range r.documentPath {
		value = value.Get(key)
		if value == nil {
			return nil, errors.Wrapf(readers.ErrConfiguration, "document path key %q not present in source", key)
		}
	}
	var entries []*fastjson.Value
	if value.Type() == fastjson.TypeArray {
		entries, _ = value.Array()
	} else {
		entries = []*fastjson.Value{value}
	}
	return &stream{reader: r, metadata: metadata, entries: entries}, nil
}

type stream struct {
	reader   *Reader
	metadata record.Metadata
	entries  []*fastjson.Value
	i        int
}

func (s *stream) Next() (record.Document, error) {
	if s.i >= len(s.entries) {
		return nil, readers.ErrEndOfStream
	}
	ctx := &extract.Context{
		Metadata: s.metadata,
		Index:    s.i,
		Value:    s.entries[s.i],
	}
	doc, err := readers.DocumentFromContext(s.reader.fields, ctx)
	if err != nil {
		s.i = len(s.entries)
		return nil, err
	}
	s.i++
	return doc, nil
}

func (s *stream) Close() error {
	s.i = len(s.entries)
	return nil
}
