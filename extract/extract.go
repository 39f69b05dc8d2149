// Package extract contains the extractor kinds that can be used to obtain
// values for the fields of a reader. Some extractors are tied to a specific
// data shape (tabular rows, markup trees, graphs), others are generic.
package extract

import (
	"github.com/beevik/etree"
	"github.com/knakk/rdf"
	"github.com/valyala/fastjson"

	"github.com/lexiconlab/readers/record"
)

// Kind tags an extractor variant. Reader bases use these tags to reject
// extractors that are incompatible with the data shape they produce.
type Kind string

const (
	KindConstant        Kind = "constant"
	KindMetadata        Kind = "metadata"
	KindChoice          Kind = "choice"
	KindBackup          Kind = "backup"
	KindCombined        Kind = "combined"
	KindPass            Kind = "pass"
	KindOrder           Kind = "order"
	KindExternalFile    Kind = "external_file"
	KindXML             Kind = "xml"
	KindFilterAttribute Kind = "filter_attribute"
	KindCSV             Kind = "csv"
	KindJSON            Kind = "json"
	KindRDF             Kind = "rdf"
)

// Context carries the inputs available to one extractor invocation. It is
// assembled by the record iteration step of a concrete reader: Metadata and
// Index are always set, the remaining slots depend on the data shape.
// Extractors read only the slots they understand and return nil when a slot
// they need is absent.
type Context struct {
	Metadata record.Metadata
	// Index is the running ordinal of the current record within its source.
	Index int

	// Markup-tree slots (XML readers).
	Top  *etree.Element
	Node *etree.Element

	// Tabular slot: the rows that make up the current logical document.
	Rows []map[string]string

	// JSON slot: the parsed value for the current document.
	Value *fastjson.Value

	// Graph slots (RDF readers).
	Graph   *Graph
	Subject rdf.Subject
}

// Extractor computes one field's value from a context. Implementations are
// stateless across invocations except for configuration fixed at
// construction.
type Extractor interface {
	Kind() Kind
	// Apply returns the extracted value or nil when nothing was found.
	// Errors abort processing of the record they occurred in.
	Apply(ctx *Context) (interface{}, error)
	// Applicable reports whether this extractor applies given the source
	// metadata.
	Applicable(metadata record.Metadata) bool
}

// TransformFunc postprocesses a raw extracted value. It only runs on non-nil
// values; its error aborts the in-flight record.
type TransformFunc func(value interface{}) (interface{}, error)

// Predicate decides, based on source metadata, whether an extractor applies.
type Predicate func(metadata record.Metadata) bool

type options struct {
	transform  TransformFunc
	applicable Predicate
}

// Option configures behavior shared by all extractor kinds.
type Option func(*options)

// WithTransform attaches a postprocessing function to the extractor.
func WithTransform(f TransformFunc) Option {
	return func(o *options) {
		o.transform = f
	}
}

// WithApplicable restricts the extractor to sources whose metadata satisfies
// the predicate. Inapplicable extractors yield nil.
func WithApplicable(p Predicate) Option {
	return func(o *options) {
		o.applicable = p
	}
}

func getOptions(opts ...Option) options {
	var out options
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// Applicable implements the applicability check shared by all kinds.
func (o options) Applicable(metadata record.Metadata) bool {
	return o.applicable == nil || o.applicable(metadata)
}

// run wraps a kind-specific extraction function with the applicability check
// and the transform step.
func run(o options, ctx *Context, fn func(*Context) (interface{}, error)) (interface{}, error) {
	if !o.Applicable(ctx.Metadata) {
		return nil, nil
	}
	raw, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	if o.transform != nil {
		return o.transform(raw)
	}
	return raw, nil
}

// empty reports whether an extracted value counts as "nothing" for the
// purposes of the Backup extractor.
func empty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case float64:
		return v == 0
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
