package extract

import (
	"strings"

	"github.com/knakk/rdf"
)

// Graph is a subject-indexed set of triples, the decoded representation an
// RDF reader hands to its extractors.
type Graph struct {
	bySubject map[string][]rdf.Triple
	subjects  []rdf.Subject
}

// NewGraph indexes the given triples by subject, preserving the order in
// which subjects first appear.
func NewGraph(triples []rdf.Triple) *Graph {
	g := &Graph{bySubject: make(map[string][]rdf.Triple)}
	for _, triple := range triples {
		key := termKey(triple.Subj)
		if _, ok := g.bySubject[key]; !ok {
			g.subjects = append(g.subjects, triple.Subj)
		}
		g.bySubject[key] = append(g.bySubject[key], triple)
	}
	return g
}

// Subjects returns every distinct subject in first-seen order.
func (g *Graph) Subjects() []rdf.Subject {
	return g.subjects
}

// Objects returns the objects of all triples with the given subject and
// predicate IRI.
func (g *Graph) Objects(subject rdf.Subject, predicate string) []rdf.Object {
	var out []rdf.Object
	for _, triple := range g.bySubject[termKey(subject)] {
		if triple.Pred.String() == predicate {
			out = append(out, triple.Obj)
		}
	}
	return out
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	n := 0
	for _, triples := range g.bySubject {
		n += len(triples)
	}
	return n
}

func termKey(term rdf.Term) string {
	return term.Serialize(rdf.NTriples)
}

// URILocalName returns the last segment of a URI term: the fragment if one
// is present, otherwise the part after the final slash.
func URILocalName(term rdf.Term) string {
	uri := term.String()
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// RDFSpec configures an RDF extractor.
type RDFSpec struct {
	// Predicates is a chain of predicate IRIs followed from the document's
	// subject. Intermediate objects must be nodes that can appear as
	// subjects.
	Predicates []string
	// Multiple collects every matching object instead of the first.
	Multiple bool
}

// RDF extracts object values from the graph, starting at the current
// document's subject. It should be used in readers based on the RDF reader
// base.
type RDF struct {
	spec RDFSpec
	options
}

func NewRDF(spec RDFSpec, opts ...Option) *RDF {
	return &RDF{spec: spec, options: getOptions(opts...)}
}

func (e *RDF) Kind() Kind { return KindRDF }

func (e *RDF) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		if ctx.Graph == nil || ctx.Subject == nil {
			return nil, nil
		}
		nodes := []rdf.Subject{ctx.Subject}
		var objects []rdf.Object
		for _, predicate := range e.spec.Predicates {
			objects = objects[:0]
			for _, node := range nodes {
				objects = append(objects, ctx.Graph.Objects(node, predicate)...)
			}
			nodes = nodes[:0]
			for _, object := range objects {
				if subject, ok := object.(rdf.Subject); ok {
					nodes = append(nodes, subject)
				}
			}
		}
		if len(objects) == 0 {
			return nil, nil
		}
		if e.spec.Multiple {
			out := make([]interface{}, len(objects))
			for i := range objects {
				out[i] = termValue(objects[i])
			}
			return out, nil
		}
		return termValue(objects[0]), nil
	})
}

// termValue renders a term as a plain value: the literal's string value, or
// the full IRI for resources.
func termValue(term rdf.Term) interface{} {
	return term.String()
}
