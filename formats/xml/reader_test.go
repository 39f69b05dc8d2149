package xml

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

func speechFields() []readers.Field {
	return []readers.Field{
		{Name: "title", Extractor: extract.NewXML(extract.XMLSpec{Tag: []string{"title"}, Toplevel: true})},
		{Name: "character", Extractor: extract.NewXML(extract.XMLSpec{Attribute: "who"})},
		{Name: "line", Extractor: extract.NewXML(extract.XMLSpec{Tag: []string{"l"}})},
	}
}

func drain(t *testing.T, stream readers.DocumentStream) []record.Document {
	var out []record.Document
	for {
		doc, err := stream.Next()
		if err == readers.ErrEndOfStream {
			return out
		}
		require.NoError(t, err)
		out = append(out, doc)
	}
}

func TestSpeechPerDocument(t *testing.T) {
	reader := readers.New(NewReader(speechFields(), WithTagEntry(NameTag{Name: "sp"})))
	stream, err := reader.Documents(readers.File("fixtures/hamlet.xml"))
	require.NoError(t, err)
	defer stream.Close()

	docs := drain(t, stream)
	require.Len(t, docs, 3)
	assert.Equal(t, record.Document{
		"title":     "Hamlet",
		"character": "BERNARDO",
		"line":      "Who's there?",
	}, docs[0])
	assert.Equal(t, "CLAUDIUS", docs[2]["character"])
}

func TestToplevelNarrowsSearch(t *testing.T) {
	fields := []readers.Field{
		{Name: "scene", Extractor: extract.NewXML(extract.XMLSpec{Tag: []string{".."}, Attribute: "n"})},
		{Name: "character", Extractor: extract.NewXML(extract.XMLSpec{Attribute: "who"})},
	}
	reader := readers.New(NewReader(fields,
		WithTagToplevel(NameTag{Name: "scene"}),
		WithTagEntry(NameTag{Name: "sp"}),
	))
	stream, err := reader.Documents(readers.File("fixtures/hamlet.xml"))
	require.NoError(t, err)
	defer stream.Close()

	// Only the first scene is the top-level subtree.
	docs := drain(t, stream)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0]["scene"])
	assert.Equal(t, "FRANCISCO", docs[1]["character"])
}

func TestEntryTagResolvedFromMetadata(t *testing.T) {
	reader := readers.New(NewReader(
		[]readers.Field{{Name: "character", Extractor: extract.NewXML(extract.XMLSpec{Attribute: "who"})}},
		WithTagEntryResolver(func(metadata record.Metadata) Tag {
			return NameTag{Name: metadata["entry"].(string)}
		}),
	))
	source := readers.File("fixtures/hamlet.xml").WithMetadata(record.Metadata{"entry": "sp"})
	stream, err := reader.Documents(source)
	require.NoError(t, err)
	defer stream.Close()

	assert.Len(t, drain(t, stream), 3)
}

func TestBytesSource(t *testing.T) {
	reader := readers.New(NewReader(
		[]readers.Field{{Name: "title", Extractor: extract.NewXML(extract.XMLSpec{Tag: []string{"title"}})}},
	))
	stream, err := reader.Documents(readers.Raw([]byte(`<play><title>Othello</title></play>`)))
	require.NoError(t, err)
	defer stream.Close()

	docs := drain(t, stream)
	require.Len(t, docs, 1)
	assert.Equal(t, "Othello", docs[0]["title"])
}

func TestMissingToplevelYieldsNoDocuments(t *testing.T) {
	reader := readers.New(NewReader(speechFields(),
		WithTagToplevel(NameTag{Name: "epilogue"}),
		WithTagEntry(NameTag{Name: "sp"}),
	))
	stream, err := reader.Documents(readers.File("fixtures/hamlet.xml"))
	require.NoError(t, err)
	defer stream.Close()

	assert.Empty(t, drain(t, stream))
}

func TestValidateRejectsTabularExtractors(t *testing.T) {
	fields := []readers.Field{
		{Name: "character", Extractor: extract.NewCSV(extract.CSVSpec{Column: "character"})},
	}
	_, err := readers.New(NewReader(fields)).Documents(readers.File("fixtures/hamlet.xml"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, readers.ErrConfiguration), "got: %v", err)
}
