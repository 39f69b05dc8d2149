package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// SecondaryTag restricts an XML extraction to a tag whose text content
// matches a metadata entry (MatchMetadata) or a literal string (Exact). The
// extractor then looks for the target tag among the siblings of the match.
type SecondaryTag struct {
	Tag           string
	MatchMetadata string
	Exact         string
}

// XMLSpec configures an XML extractor.
type XMLSpec struct {
	// Tag is the path to the target tag. Entries are tag names, ".." ascends
	// to the parent and "." stays in place. An empty path selects the
	// current entry node itself.
	Tag []string
	// Attribute selects an attribute value instead of text content. The
	// pseudo-attribute "name" selects the tag name.
	Attribute string
	// Flatten joins the text of the node and all its descendants,
	// normalising whitespace.
	Flatten bool
	// Toplevel searches from the source's top-level node instead of the
	// current entry node.
	Toplevel bool
	// Recursive searches all descendants instead of direct children.
	Recursive bool
	// Multiple collects every matching node instead of the first.
	Multiple bool
	// ParentLevel ascends the given number of parents before searching.
	ParentLevel int
	SecondaryTag *SecondaryTag
	// TransformNode rewrites the selected node before value extraction. The
	// node passed in may be nil.
	TransformNode func(node *etree.Element) *etree.Element
	// ExtractNode computes the value from the selected node directly,
	// instead of reading text content or an attribute.
	ExtractNode func(node *etree.Element) (interface{}, error)
}

// XML extracts data from a markup tree. It should be used in readers based
// on the XML reader base.
type XML struct {
	spec XMLSpec
	options
}

func NewXML(spec XMLSpec, opts ...Option) *XML {
	return &XML{spec: spec, options: getOptions(opts...)}
}

func (e *XML) Kind() Kind { return KindXML }

func (e *XML) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		root := e.startNode(ctx)
		if root == nil {
			return nil, nil
		}
		root, last, ok := walkPath(root, e.spec.Tag, e.find)
		if !ok {
			return nil, nil
		}
		if last == "" {
			return e.value(e.transformNode(root))
		}
		if e.spec.SecondaryTag != nil {
			return e.value(e.transformNode(e.selectSibling(root, last, ctx)))
		}
		if e.spec.Multiple {
			return e.values(e.findAll(root, last))
		}
		for i := 0; i < e.spec.ParentLevel; i++ {
			if root = root.Parent(); root == nil {
				return nil, nil
			}
		}
		return e.value(e.transformNode(e.find(root, last)))
	})
}

func (e *XML) startNode(ctx *Context) *etree.Element {
	if e.spec.Toplevel {
		return ctx.Top
	}
	return ctx.Node
}

func (e *XML) find(el *etree.Element, tag string) *etree.Element {
	if e.spec.Recursive {
		return el.FindElement(".//" + tag)
	}
	return el.SelectElement(tag)
}

func (e *XML) findAll(el *etree.Element, tag string) []*etree.Element {
	if e.spec.Recursive {
		return el.FindElements(".//" + tag)
	}
	return el.SelectElements(tag)
}

// selectSibling finds a tag whose text matches the secondary tag constraint,
// then looks for the target tag next to it.
func (e *XML) selectSibling(root *etree.Element, tag string, ctx *Context) *etree.Element {
	st := e.spec.SecondaryTag
	match := st.Exact
	if st.MatchMetadata != "" {
		match = fmt.Sprint(ctx.Metadata[st.MatchMetadata])
	}
	for _, candidate := range root.FindElements(".//" + st.Tag) {
		if strings.TrimSpace(candidate.Text()) != match {
			continue
		}
		if parent := candidate.Parent(); parent != nil {
			return parent.FindElement(".//" + tag)
		}
	}
	return nil
}

func (e *XML) transformNode(node *etree.Element) *etree.Element {
	if e.spec.TransformNode != nil {
		return e.spec.TransformNode(node)
	}
	return node
}

func (e *XML) values(nodes []*etree.Element) (interface{}, error) {
	out := make([]interface{}, 0, len(nodes))
	for _, node := range nodes {
		value, err := e.value(e.transformNode(node))
		if err != nil {
			return nil, err
		}
		if value != nil {
			out = append(out, value)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (e *XML) value(node *etree.Element) (interface{}, error) {
	if node == nil {
		return nil, nil
	}
	if e.spec.ExtractNode != nil {
		return e.spec.ExtractNode(node)
	}
	if e.spec.Attribute != "" {
		return attributeValue(node, e.spec.Attribute), nil
	}
	if e.spec.Flatten {
		return flattenText(node), nil
	}
	text := strings.TrimSpace(node.Text())
	if text == "" {
		return nil, nil
	}
	return text, nil
}

func attributeValue(node *etree.Element, attribute string) interface{} {
	if attribute == "name" {
		return node.Tag
	}
	attr := node.SelectAttr(attribute)
	if attr == nil {
		return nil
	}
	return attr.Value
}

var (
	tabsPattern     = regexp.MustCompile(`\t+`)
	spacesPattern   = regexp.MustCompile(` +`)
	newlinesPattern = regexp.MustCompile(`\n+`)
)

// flattenText joins the text content of a node and all its descendants,
// disregarding the underlying markup structure.
func flattenText(node *etree.Element) string {
	var sb strings.Builder
	collectText(node, &sb)
	text := tabsPattern.ReplaceAllString(sb.String(), "")
	text = spacesPattern.ReplaceAllString(text, " ")
	text = newlinesPattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func collectText(node *etree.Element, sb *strings.Builder) {
	for _, child := range node.Child {
		switch token := child.(type) {
		case *etree.CharData:
			sb.WriteString(token.Data)
		case *etree.Element:
			collectText(token, sb)
		}
	}
}

// walkPath follows all but the last entry of a tag path from el and returns
// the node to search from plus the final tag. An empty path, or a path ending
// in a navigation entry, returns the reached node and an empty tag.
func walkPath(el *etree.Element, path []string, find func(*etree.Element, string) *etree.Element) (*etree.Element, string, bool) {
	if len(path) == 0 {
		return el, "", true
	}
	last := path[len(path)-1]
	steps := path[:len(path)-1]
	if last == "." || last == ".." {
		steps = path
		last = ""
	}
	for _, tag := range steps {
		switch tag {
		case "..":
			el = el.Parent()
		case ".":
		default:
			el = find(el, tag)
		}
		if el == nil {
			return nil, "", false
		}
	}
	return el, last, true
}

// FilterAttribute extracts from a markup tree like XML, but selects the
// target tag by an attribute/value pair.
type FilterAttribute struct {
	spec      XMLSpec
	attribute string
	value     string
	options
}

func NewFilterAttribute(spec XMLSpec, attribute, value string, opts ...Option) *FilterAttribute {
	return &FilterAttribute{spec: spec, attribute: attribute, value: value, options: getOptions(opts...)}
}

func (e *FilterAttribute) Kind() Kind { return KindFilterAttribute }

func (e *FilterAttribute) Apply(ctx *Context) (interface{}, error) {
	inner := &XML{spec: e.spec}
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		root := inner.startNode(ctx)
		if root == nil {
			return nil, nil
		}
		root, last, ok := walkPath(root, e.spec.Tag, inner.find)
		if !ok {
			return nil, nil
		}
		if last == "" {
			return inner.value(root)
		}
		if e.spec.Multiple {
			return inner.values(e.filtered(inner, root, last))
		}
		for _, node := range e.filtered(inner, root, last) {
			return inner.value(node)
		}
		return nil, nil
	})
}

func (e *FilterAttribute) filtered(inner *XML, root *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, node := range inner.findAll(root, tag) {
		if node.SelectAttrValue(e.attribute, "") == e.value {
			out = append(out, node)
		}
	}
	return out
}
