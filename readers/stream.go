package readers

import (
	"io"

	"github.com/lexiconlab/readers/record"
)

// DocumentStream is a finite, lazy sequence of documents. Next returns
// ErrEndOfStream once the stream is exhausted. Streams are not restartable;
// consumers must either drain them or call Close to release underlying
// resources.
type DocumentStream interface {
	Next() (record.Document, error)
	Close() error
}

// sliceStream serves documents from memory.
type sliceStream struct {
	docs []record.Document
	i    int
}

// NewSliceStream returns a stream over the given documents.
func NewSliceStream(docs ...record.Document) DocumentStream {
	return &sliceStream{docs: docs}
}

func (s *sliceStream) Next() (record.Document, error) {
	if s.i >= len(s.docs) {
		return nil, ErrEndOfStream
	}
	doc := s.docs[s.i]
	s.i++
	return doc, nil
}

func (s *sliceStream) Close() error {
	s.i = len(s.docs)
	return nil
}

// sourceStream wraps the iteration stream of one source. It filters out
// documents missing required fields and guarantees that the scoped data
// object is released on every exit path: exhaustion, an iteration error, or
// early abandonment through Close.
type sourceStream struct {
	inner    DocumentStream
	data     io.Closer
	required []string
	closed   bool
}

func (s *sourceStream) Next() (record.Document, error) {
	if s.closed {
		return nil, ErrEndOfStream
	}
	for {
		doc, err := s.inner.Next()
		if err != nil {
			if closeErr := s.release(); closeErr != nil && err == ErrEndOfStream {
				return nil, closeErr
			}
			return nil, err
		}
		if hasRequiredFields(doc, s.required) {
			return doc, nil
		}
	}
}

func (s *sourceStream) Close() error {
	if s.closed {
		return nil
	}
	return s.release()
}

func (s *sourceStream) release() error {
	s.closed = true
	err := s.inner.Close()
	if s.data != nil {
		if dataErr := s.data.Close(); err == nil {
			err = dataErr
		}
	}
	return err
}

// hasRequiredFields checks whether a document has a non-nil value for every
// required field name.
func hasRequiredFields(doc record.Document, required []string) bool {
	for _, name := range required {
		if doc[name] == nil {
			return false
		}
	}
	return true
}

// fanoutStream flattens the per-source streams of multiple sources,
// preserving source order and within-source record order.
type fanoutStream struct {
	reader  *Reader
	sources []Source
	i       int
	current DocumentStream
	closed  bool
}

func (s *fanoutStream) Next() (record.Document, error) {
	if s.closed {
		return nil, ErrEndOfStream
	}
	for {
		if s.current == nil {
			if s.i >= len(s.sources) {
				s.closed = true
				return nil, ErrEndOfStream
			}
			stream, err := s.reader.SourceDocuments(s.sources[s.i])
			if err != nil {
				s.closed = true
				return nil, err
			}
			s.current = stream
			s.i++
		}
		doc, err := s.current.Next()
		if err == ErrEndOfStream {
			s.current = nil
			continue
		}
		if err != nil {
			s.closed = true
			return nil, err
		}
		return doc, nil
	}
}

func (s *fanoutStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.current != nil {
		return s.current.Close()
	}
	return nil
}
