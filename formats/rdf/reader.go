// Package rdf provides the reader base for graph-structured (triple) data
// in Turtle, N-Triples or RDF/XML serialisations.
//
// Each document corresponds to one subject in the graph. By default every
// distinct subject yields a document; datasets narrow this down with the
// subjects option, typically to subjects of a given type.
package rdf

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/knakk/rdf"
	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// SubjectsFunc selects the subjects that become documents.
type SubjectsFunc func(g *extract.Graph) []rdf.Subject

// Reader is the graph reader base.
type Reader struct {
	fields    []readers.Field
	format    rdf.Format
	hasFormat bool
	subjects  SubjectsFunc
}

// Option configures the graph reader base.
type Option func(*Reader)

// WithFormat fixes the triple serialisation. Without it, file sources are
// decoded according to their extension and byte sources as Turtle.
func WithFormat(format rdf.Format) Option {
	return func(r *Reader) {
		r.format = format
		r.hasFormat = true
	}
}

// WithSubjects overrides the enumeration of document subjects.
func WithSubjects(subjects SubjectsFunc) Option {
	return func(r *Reader) {
		r.subjects = subjects
	}
}

func NewReader(fields []readers.Field, opts ...Option) *Reader {
	r := &Reader{
		fields: fields,
		subjects: func(g *extract.Graph) []rdf.Subject {
			return g.Subjects()
		},
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
		extract.KindCSV, extract.KindXML, extract.KindFilterAttribute, extract.KindJSON)
}

func (r *Reader) DecodeFile(path string) (readers.Data, error) {
	log.Printf("parsing %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read %s", path)
	}
	if r.hasFormat {
		return r.decode(data, r.format)
	}
	return r.decode(data, formatForPath(path))
}

func (r *Reader) DecodeBytes(data []byte) (readers.Data, error) {
	if r.hasFormat {
		return r.decode(data, r.format)
	}
	return r.decode(data, rdf.Turtle)
}

func (r *Reader) decode(data []byte, format rdf.Format) (readers.Data, error) {
	decoder := rdf.NewTripleDecoder(bytes.NewReader(data), format)
	triples, err := decoder.DecodeAll()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode triples")
	}
	graph := extract.NewGraph(triples)
	log.Printf("decoded %d triples", graph.Len())
	return graph, nil
}

func formatForPath(path string) rdf.Format {
	switch filepath.Ext(path) {
	case ".nt":
		return rdf.NTriples
	case ".rdf", ".xml":
		return rdf.RDFXML
	default:
		return rdf.Turtle
	}
}

func (r *Reader) Iterate(data readers.Data, metadata record.Metadata) (readers.DocumentStream, error) {
	graph, ok := data.(*extract.Graph)
	if !ok {
		return nil, errors.Wrapf(readers.ErrConfiguration, "unexpected data type %T for a graph reader", data)
	}
	return &stream{
		reader:   r,
		metadata: metadata,
		graph:    graph,
		subjects: r.subjects(graph),
	}, nil
}

type stream struct {
	reader   *Reader
	metadata record.Metadata
	graph    *extract.Graph
	subjects []rdf.Subject
	i        int
}

func (s *stream) Next() (record.Document, error) {
	if s.i >= len(s.subjects) {
		return nil, readers.ErrEndOfStream
	}
	ctx := &extract.Context{
		Metadata: s.metadata,
		Index:    s.i,
		Graph:    s.graph,
		Subject:  s.subjects[s.i],
	}
	doc, err := readers.DocumentFromContext(s.reader.fields, ctx)
	if err != nil {
		s.i = len(s.subjects)
		return nil, err
	}
	s.i++
	return doc, nil
}

func (s *stream) Close() error {
	s.i = len(s.subjects)
	return nil
}
