// Package xml provides the reader base for markup-tree data.
//
// The base parses each source into an element tree. The top-level tag
// selects the subtree to search, the entry tag selects the elements that
// each become one document. Both default to the document root, which suits
// single-document files.
package xml

import (
	"log"

	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// Reader is the markup-tree reader base.
type Reader struct {
	fields      []readers.Field
	tagToplevel TagResolver
	tagEntry    TagResolver
}

// Option configures the markup reader base.
type Option func(*Reader)

// WithTagToplevel sets the tag selecting the subtree to search.
func WithTagToplevel(tag Tag) Option {
	return func(r *Reader) {
		r.tagToplevel = fixedTag(tag)
	}
}

// WithTagEntry sets the tag whose matches each become one document.
func WithTagEntry(tag Tag) Option {
	return func(r *Reader) {
		r.tagEntry = fixedTag(tag)
	}
}

// WithTagToplevelResolver resolves the top-level tag per source, from its
// metadata.
func WithTagToplevelResolver(resolver TagResolver) Option {
	return func(r *Reader) {
		r.tagToplevel = resolver
	}
}

// WithTagEntryResolver resolves the entry tag per source, from its metadata.
func WithTagEntryResolver(resolver TagResolver) Option {
	return func(r *Reader) {
		r.tagEntry = resolver
	}
}

func NewReader(fields []readers.Field, opts ...Option) *Reader {
	r := &Reader{
		fields:      fields,
		tagToplevel: fixedTag(CurrentTag{}),
		tagEntry:    fixedTag(CurrentTag{}),
	}
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
		extract.KindCSV, extract.KindJSON, extract.KindRDF)
}

func (r *Reader) DecodeFile(path string) (readers.Data, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse %s", path)
	}
	return doc, nil
}

func (r *Reader) DecodeBytes(data []byte) (readers.Data, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, "couldn't parse markup data")
	}
	return doc, nil
}

// Iterate yields one document per entry-tag match inside the top-level
// subtree. Extraction happens lazily, as documents are pulled.
func (r *Reader) Iterate(data readers.Data, metadata record.Metadata) (readers.DocumentStream, error) {
	doc, ok := data.(*etree.Document)
	if !ok {
		return nil, errors.Wrapf(readers.ErrConfiguration, "unexpected data type %T for a markup reader", data)
	}
	root := doc.Root()
	if root == nil {
		return readers.NewSliceStream(), nil
	}
	top := FindFirst(r.tagToplevel(metadata), root)
	if top == nil {
		log.Printf("top-level tag not found in source")
		return readers.NewSliceStream(), nil
	}
	return &stream{
		reader:   r,
		metadata: metadata,
		top:      top,
		entries:  r.tagEntry(metadata).FindAll(top),
	}, nil
}

type stream struct {
	reader   *Reader
	metadata record.Metadata
	top      *etree.Element
	entries  []*etree.Element
	i        int
}

func (s *stream) Next() (record.Document, error) {
	if s.i >= len(s.entries) {
		return nil, readers.ErrEndOfStream
	}
	ctx := &extract.Context{
		Metadata: s.metadata,
		Index:    s.i,
		Top:      s.top,
		Node:     s.entries[s.i],
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
