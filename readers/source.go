package readers

import "github.com/lexiconlab/readers/record"

// Source describes one unit of input to decode: either the path of a file on
// disk or its raw byte contents, optionally paired with metadata. Exactly
// one of Path and Bytes must be set.
type Source struct {
	Path     string
	Bytes    []byte
	Metadata record.Metadata
}

// File returns a source referencing a file on disk.
func File(path string) Source {
	return Source{Path: path}
}

// Raw returns a source holding file contents directly.
func Raw(data []byte) Source {
	return Source{Bytes: data}
}

// WithMetadata returns a copy of the source with the given metadata
// attached.
func (s Source) WithMetadata(metadata record.Metadata) Source {
	s.Metadata = metadata
	return s
}
