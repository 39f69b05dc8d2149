package xml

import (
	"github.com/beevik/etree"

	"github.com/lexiconlab/readers/record"
)

// Tag selects elements in a markup tree, relative to a starting element.
type Tag interface {
	// FindAll returns every matching element in document order.
	FindAll(el *etree.Element) []*etree.Element
}

// FindFirst returns the first element a tag selects under el, or nil.
func FindFirst(tag Tag, el *etree.Element) *etree.Element {
	for _, match := range tag.FindAll(el) {
		return match
	}
	return nil
}

// CurrentTag selects the element itself.
type CurrentTag struct{}

func (CurrentTag) FindAll(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	return []*etree.Element{el}
}

// NameTag selects descendant elements by tag name.
type NameTag struct {
	Name string
}

func (t NameTag) FindAll(el *etree.Element) []*etree.Element {
	return el.FindElements(".//" + t.Name)
}

// ParentTag selects the ancestor a fixed number of levels up.
type ParentTag struct {
	Level int
}

func (t ParentTag) FindAll(el *etree.Element) []*etree.Element {
	level := t.Level
	if level == 0 {
		level = 1
	}
	for i := 0; i < level; i++ {
		if el == nil {
			return nil
		}
		el = el.Parent()
	}
	if el == nil {
		return nil
	}
	return []*etree.Element{el}
}

// AncestorTag selects the nearest ancestor with the given tag name.
type AncestorTag struct {
	Name string
}

func (t AncestorTag) FindAll(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	for parent := el.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Tag == t.Name {
			return []*etree.Element{parent}
		}
	}
	return nil
}

// SiblingTag selects the element's siblings by tag name, following siblings
// first.
type SiblingTag struct {
	Name string
}

func (t SiblingTag) FindAll(el *etree.Element) []*etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.ChildElements()
	position := -1
	for i, sibling := range siblings {
		if sibling == el {
			position = i
			break
		}
	}
	var out []*etree.Element
	for i := position + 1; i >= 0 && i < len(siblings); i++ {
		if siblings[i].Tag == t.Name {
			out = append(out, siblings[i])
		}
	}
	for i := position - 1; i >= 0; i-- {
		if siblings[i].Tag == t.Name {
			out = append(out, siblings[i])
		}
	}
	return out
}

// TagResolver picks a tag based on source metadata, for datasets where the
// entry tag differs per file.
type TagResolver func(metadata record.Metadata) Tag

func fixedTag(tag Tag) TagResolver {
	return func(record.Metadata) Tag {
		return tag
	}
}
