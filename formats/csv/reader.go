// Package csv provides the reader base for tabular data.
//
// A dataset definition embeds *Reader and adds its Sources enumeration. Each
// row is one document by default; with the field-entry option, consecutive
// rows sharing a value in the entry column are grouped into a single
// document.
package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// Reader is the tabular reader base. It decodes files or bytes into a
// streaming row cursor and iterates documents without loading whole sources
// into memory.
type Reader struct {
	fields         []readers.Field
	delimiter      rune
	skipLines      int
	fieldEntry     string
	requiredColumn string
}

// Option configures the tabular reader base.
type Option func(*Reader)

// WithDelimiter sets the cell delimiter. Defaults to a comma.
func WithDelimiter(delimiter rune) Option {
	return func(r *Reader) {
		r.delimiter = delimiter
	}
}

// WithSkipLines skips the given number of lines before the header row.
func WithSkipLines(n int) Option {
	return func(r *Reader) {
		r.skipLines = n
	}
}

// WithFieldEntry treats consecutive rows with the same value in the given
// column as a single document.
func WithFieldEntry(column string) Option {
	return func(r *Reader) {
		r.fieldEntry = column
	}
}

// WithRequiredColumn drops rows with an empty value in the given column
// before documents are assembled.
func WithRequiredColumn(column string) Option {
	return func(r *Reader) {
		r.requiredColumn = column
	}
}

func NewReader(fields []readers.Field, opts ...Option) *Reader {
	r := &Reader{fields: fields, delimiter: ','}
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
		extract.KindXML, extract.KindFilterAttribute, extract.KindJSON, extract.KindRDF)
}

// cursor is the scoped data object: an open row decoder plus the underlying
// file, if any.
type cursor struct {
	decoder *csv.Reader
	file    io.Closer
	closed  bool
}

func (c *cursor) Close() error {
	if c.closed || c.file == nil {
		c.closed = true
		return nil
	}
	c.closed = true
	return c.file.Close()
}

func (r *Reader) DecodeFile(path string) (readers.Data, error) {
	log.Printf("reading tabular file %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open %s", path)
	}
	cur, err := r.newCursor(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cur, nil
}

func (r *Reader) DecodeBytes(data []byte) (readers.Data, error) {
	return r.newCursor(bytes.NewReader(data), nil)
}

func (r *Reader) newCursor(reader io.Reader, file io.Closer) (*cursor, error) {
	buffered := bufio.NewReader(reader)
	for i := 0; i < r.skipLines; i++ {
		if _, err := buffered.ReadString('\n'); err != nil {
			return nil, errors.Wrap(err, "couldn't skip leading lines")
		}
	}
	decoder := csv.NewReader(buffered)
	decoder.Comma = r.delimiter
	decoder.FieldsPerRecord = -1
	decoder.LazyQuotes = true
	return &cursor{decoder: decoder, file: file}, nil
}

// Iterate streams one document at a time from the row cursor.
func (r *Reader) Iterate(data readers.Data, metadata record.Metadata) (readers.DocumentStream, error) {
	cur, ok := data.(*cursor)
	if !ok {
		return nil, errors.Wrapf(readers.ErrConfiguration, "unexpected data type %T for a tabular reader", data)
	}
	header, err := cur.decoder.Read()
	if err == io.EOF {
		return readers.NewSliceStream(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read header row")
	}
	return &stream{reader: r, cursor: cur, metadata: metadata, header: header}, nil
}

type stream struct {
	reader   *Reader
	cursor   *cursor
	metadata record.Metadata
	header   []string

	group   []map[string]string
	entryID string
	index   int
	done    bool
}

func (s *stream) Next() (record.Document, error) {
	if s.done {
		return nil, readers.ErrEndOfStream
	}
	for {
		row, err := s.cursor.decoder.Read()
		if err == io.EOF {
			s.done = true
			if len(s.group) > 0 {
				return s.document(s.takeGroup())
			}
			return nil, readers.ErrEndOfStream
		}
		if err != nil {
			s.done = true
			return nil, errors.Wrap(err, "couldn't decode row")
		}

		cells := s.rowMap(row)
		if s.reader.requiredColumn != "" && cells[s.reader.requiredColumn] == "" {
			continue
		}
		if s.reader.fieldEntry == "" {
			return s.document([]map[string]string{cells})
		}

		id := cells[s.reader.fieldEntry]
		if len(s.group) == 0 || id == s.entryID {
			s.entryID = id
			s.group = append(s.group, cells)
			continue
		}
		finished := s.takeGroup()
		s.entryID = id
		s.group = append(s.group, cells)
		return s.document(finished)
	}
}

func (s *stream) Close() error {
	s.done = true
	return nil
}

func (s *stream) rowMap(row []string) map[string]string {
	cells := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if i < len(row) {
			cells[name] = row[i]
		}
	}
	return cells
}

func (s *stream) takeGroup() []map[string]string {
	group := s.group
	s.group = nil
	return group
}

func (s *stream) document(rows []map[string]string) (record.Document, error) {
	ctx := &extract.Context{
		Metadata: s.metadata,
		Index:    s.index,
		Rows:     rows,
	}
	doc, err := readers.DocumentFromContext(s.reader.fields, ctx)
	if err != nil {
		s.done = true
		return nil, err
	}
	s.index++
	return doc, nil
}
