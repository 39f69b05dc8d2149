package extract

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	titleIRI  = "http://example.org/title"
	authorIRI = "http://example.org/author"
	nameIRI   = "http://example.org/name"
)

func iri(t *testing.T, s string) rdf.IRI {
	out, err := rdf.NewIRI(s)
	require.NoError(t, err)
	return out
}

func literal(t *testing.T, s string) rdf.Literal {
	out, err := rdf.NewLiteral(s)
	require.NoError(t, err)
	return out
}

func playGraph(t *testing.T) *Graph {
	hamlet := iri(t, "http://example.org/works/hamlet")
	othello := iri(t, "http://example.org/works/othello")
	shakespeare := iri(t, "http://example.org/authors/shakespeare")

	return NewGraph([]rdf.Triple{
		{Subj: hamlet, Pred: iri(t, titleIRI), Obj: literal(t, "Hamlet")},
		{Subj: hamlet, Pred: iri(t, authorIRI), Obj: shakespeare},
		{Subj: othello, Pred: iri(t, titleIRI), Obj: literal(t, "Othello")},
		{Subj: shakespeare, Pred: iri(t, nameIRI), Obj: literal(t, "William Shakespeare")},
	})
}

func TestGraph(t *testing.T) {
	g := playGraph(t)

	assert.Equal(t, 4, g.Len())

	subjects := g.Subjects()
	require.Len(t, subjects, 3)
	assert.Equal(t, "http://example.org/works/hamlet", subjects[0].String())
	assert.Equal(t, "http://example.org/works/othello", subjects[1].String())
	assert.Equal(t, "http://example.org/authors/shakespeare", subjects[2].String())

	objects := g.Objects(subjects[0], titleIRI)
	require.Len(t, objects, 1)
	assert.Equal(t, "Hamlet", objects[0].String())

	assert.Empty(t, g.Objects(subjects[2], titleIRI))
}

func TestURILocalName(t *testing.T) {
	assert.Equal(t, "hamlet", URILocalName(iri(t, "http://example.org/works/hamlet")))
	assert.Equal(t, "title", URILocalName(iri(t, "http://example.org/ontology#title")))
}

func TestRDF(t *testing.T) {
	g := playGraph(t)
	hamlet := g.Subjects()[0]

	value, err := NewRDF(RDFSpec{Predicates: []string{titleIRI}}).Apply(&Context{Graph: g, Subject: hamlet})
	require.NoError(t, err)
	assert.Equal(t, "Hamlet", value)

	// A predicate chain follows intermediate nodes.
	value, err = NewRDF(RDFSpec{Predicates: []string{authorIRI, nameIRI}}).Apply(&Context{Graph: g, Subject: hamlet})
	require.NoError(t, err)
	assert.Equal(t, "William Shakespeare", value)

	value, err = NewRDF(RDFSpec{Predicates: []string{"http://example.org/unknown"}}).Apply(&Context{Graph: g, Subject: hamlet})
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRDFMultiple(t *testing.T) {
	folio := iri(t, "http://example.org/works/folio")
	g := NewGraph([]rdf.Triple{
		{Subj: folio, Pred: iri(t, titleIRI), Obj: literal(t, "Hamlet")},
		{Subj: folio, Pred: iri(t, titleIRI), Obj: literal(t, "The Tragedie of Hamlet")},
	})

	value, err := NewRDF(RDFSpec{Predicates: []string{titleIRI}, Multiple: true}).Apply(&Context{Graph: g, Subject: folio})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Hamlet", "The Tragedie of Hamlet"}, value)
}

func TestRDFWithoutGraph(t *testing.T) {
	value, err := NewRDF(RDFSpec{Predicates: []string{titleIRI}}).Apply(&Context{})
	require.NoError(t, err)
	assert.Nil(t, value)
}
