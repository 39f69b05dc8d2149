package rdf

import (
	"testing"

	knakk "github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlab/readers/extract"
	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

const (
	titleIRI  = "http://example.org/title"
	authorIRI = "http://example.org/author"
	nameIRI   = "http://example.org/name"
)

func playFields() []readers.Field {
	return []readers.Field{
		{Name: "title", Extractor: extract.NewRDF(extract.RDFSpec{Predicates: []string{titleIRI}})},
		{Name: "author", Extractor: extract.NewRDF(extract.RDFSpec{Predicates: []string{authorIRI, nameIRI}})},
	}
}

// titledSubjects narrows documents to subjects carrying a title.
func titledSubjects(g *extract.Graph) []knakk.Subject {
	var out []knakk.Subject
	for _, subject := range g.Subjects() {
		if len(g.Objects(subject, titleIRI)) > 0 {
			out = append(out, subject)
		}
	}
	return out
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

func TestSubjectPerDocument(t *testing.T) {
	reader := readers.New(NewReader(playFields(), WithSubjects(titledSubjects)))
	stream, err := reader.Documents(readers.File("fixtures/plays.ttl"))
	require.NoError(t, err)
	defer stream.Close()

	docs := drain(t, stream)
	require.Len(t, docs, 2)
	assert.Equal(t, record.Document{"title": "Hamlet", "author": "William Shakespeare"}, docs[0])
	assert.Equal(t, record.Document{"title": "Othello", "author": "William Shakespeare"}, docs[1])
}

func TestDefaultSubjectsCoverWholeGraph(t *testing.T) {
	reader := readers.New(NewReader(playFields()))
	stream, err := reader.Documents(readers.File("fixtures/plays.ttl"))
	require.NoError(t, err)
	defer stream.Close()

	// The author subject has no title, so its document carries nil values.
	docs := drain(t, stream)
	assert.Len(t, docs, 3)
}

func TestBytesSourceDecodesAsTurtle(t *testing.T) {
	source := readers.Raw([]byte(`<http://example.org/hamlet> <http://example.org/title> "Hamlet" .`))
	reader := readers.New(NewReader(playFields(), WithSubjects(titledSubjects)))
	stream, err := reader.Documents(source)
	require.NoError(t, err)
	defer stream.Close()

	docs := drain(t, stream)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hamlet", docs[0]["title"])
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, knakk.NTriples, formatForPath("corpus.nt"))
	assert.Equal(t, knakk.RDFXML, formatForPath("corpus.rdf"))
	assert.Equal(t, knakk.Turtle, formatForPath("corpus.ttl"))
}

func TestMalformedSource(t *testing.T) {
	reader := readers.New(NewReader(playFields()))
	stream, err := reader.Documents(readers.Raw([]byte("not triples at all")))
	require.NoError(t, err)
	defer stream.Close()
	_, err = stream.Next()
	assert.Error(t, err)
}
