package extract

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlab/readers/record"
)

func TestConstant(t *testing.T) {
	value, err := NewConstant("Hamlet").Apply(&Context{})
	require.NoError(t, err)
	assert.Equal(t, "Hamlet", value)
}

func TestMetadata(t *testing.T) {
	ctx := &Context{Metadata: record.Metadata{"filename": "hamlet.xml"}}

	value, err := NewMetadata("filename").Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hamlet.xml", value)

	value, err = NewMetadata("missing").Apply(ctx)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestChoice(t *testing.T) {
	modern := func(m record.Metadata) bool { return m["era"] == "modern" }
	choice := NewChoice(
		NewConstant("modernised", WithApplicable(modern)),
		NewConstant("original"),
	)

	value, err := choice.Apply(&Context{Metadata: record.Metadata{"era": "modern"}})
	require.NoError(t, err)
	assert.Equal(t, "modernised", value)

	value, err = choice.Apply(&Context{Metadata: record.Metadata{"era": "early"}})
	require.NoError(t, err)
	assert.Equal(t, "original", value)
}

func TestBackup(t *testing.T) {
	value, err := NewBackup(NewConstant(""), NewConstant(nil), NewConstant("fallback")).Apply(&Context{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)

	value, err = NewBackup(NewConstant(""), NewConstant(nil)).Apply(&Context{})
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestCombined(t *testing.T) {
	value, err := NewCombined(NewConstant("a"), NewConstant("b")).Apply(&Context{})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, value)
}

func TestPassStacksTransforms(t *testing.T) {
	strip := func(value interface{}) (interface{}, error) {
		return strings.TrimSpace(value.(string)), nil
	}
	upper := func(value interface{}) (interface{}, error) {
		return strings.ToUpper(value.(string)), nil
	}
	inner := NewConstant("  hamlet ", WithTransform(strip))

	value, err := NewPass(inner, WithTransform(upper)).Apply(&Context{})
	require.NoError(t, err)
	assert.Equal(t, "HAMLET", value)
}

func TestOrder(t *testing.T) {
	value, err := NewOrder().Apply(&Context{Index: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}

func TestTransformConvertsValue(t *testing.T) {
	toLength := func(value interface{}) (interface{}, error) {
		return len(value.(string)), nil
	}
	value, err := NewConstant("Hamlet", WithTransform(toLength)).Apply(&Context{})
	require.NoError(t, err)
	assert.Equal(t, 6, value)
}

func TestTransformErrorAbortsRecord(t *testing.T) {
	failing := func(interface{}) (interface{}, error) {
		return nil, errors.New("malformed value")
	}
	_, err := NewConstant("x", WithTransform(failing)).Apply(&Context{})
	assert.EqualError(t, err, "malformed value")
}

func TestTransformSkippedOnNil(t *testing.T) {
	called := false
	transform := func(value interface{}) (interface{}, error) {
		called = true
		return value, nil
	}
	value, err := NewMetadata("missing", WithTransform(transform)).Apply(&Context{Metadata: record.Metadata{}})
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.False(t, called)
}

func TestInapplicableExtractorYieldsNil(t *testing.T) {
	never := func(record.Metadata) bool { return false }
	value, err := NewConstant("x", WithApplicable(never)).Apply(&Context{})
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("marginalia"), 0644))

	extractor := NewExternalFile(func(f *os.File) (interface{}, error) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	})

	value, err := extractor.Apply(&Context{Metadata: record.Metadata{"associated_file": path}})
	require.NoError(t, err)
	assert.Equal(t, "marginalia", value)

	_, err = extractor.Apply(&Context{Metadata: record.Metadata{}})
	assert.Error(t, err)
}
