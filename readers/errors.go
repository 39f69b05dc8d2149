package readers

import "github.com/pkg/errors"

// ErrEndOfStream is returned by DocumentStream.Next when the stream is
// exhausted.
var ErrEndOfStream = errors.New("end of stream")

var (
	// ErrNotSupported signals that a reader capability was invoked which the
	// concrete reader never implemented.
	ErrNotSupported = errors.New("not supported by this reader")
	// ErrConfiguration signals an author-time misconfiguration: a malformed
	// source, an invalid field list, or an extractor incompatible with the
	// reader's data shape.
	ErrConfiguration = errors.New("invalid reader configuration")
	// ErrUnsupportedSource signals a source that carries neither a file path
	// nor raw bytes.
	ErrUnsupportedSource = errors.New("unsupported source type")
	// ErrPathNotFound signals a source path that does not reference an
	// existing file.
	ErrPathNotFound = errors.New("source path not found")
)
