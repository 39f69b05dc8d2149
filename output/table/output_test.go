package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

func TestWrite(t *testing.T) {
	stream := readers.NewSliceStream(
		record.Document{"character": "HAMLET", "line": "To be"},
		record.Document{"character": "OPHELIA", "line": "My lord"},
	)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stream, []string{"character", "line"}, 0))

	out := buf.String()
	assert.Contains(t, out, "character")
	assert.Contains(t, out, "HAMLET")
	assert.Contains(t, out, "OPHELIA")
}

func TestWriteLimit(t *testing.T) {
	stream := readers.NewSliceStream(
		record.Document{"character": "HAMLET"},
		record.Document{"character": "OPHELIA"},
	)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stream, []string{"character"}, 1))

	assert.Contains(t, buf.String(), "HAMLET")
	assert.NotContains(t, buf.String(), "OPHELIA")
}
