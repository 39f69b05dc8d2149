package xml

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T) *etree.Document {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile("fixtures/hamlet.xml"))
	return doc
}

func TestNameTag(t *testing.T) {
	root := parseFixture(t).Root()
	matches := NameTag{Name: "sp"}.FindAll(root)
	require.Len(t, matches, 3)
	assert.Equal(t, "BERNARDO", matches[0].SelectAttrValue("who", ""))
}

func TestCurrentTag(t *testing.T) {
	root := parseFixture(t).Root()
	matches := CurrentTag{}.FindAll(root)
	require.Len(t, matches, 1)
	assert.Same(t, root, matches[0])

	assert.Empty(t, CurrentTag{}.FindAll(nil))
}

func TestParentTag(t *testing.T) {
	root := parseFixture(t).Root()
	line := root.FindElement("//sp[@who='BERNARDO']/l")
	require.NotNil(t, line)

	matches := ParentTag{}.FindAll(line)
	require.Len(t, matches, 1)
	assert.Equal(t, "sp", matches[0].Tag)

	matches = ParentTag{Level: 2}.FindAll(line)
	require.Len(t, matches, 1)
	assert.Equal(t, "scene", matches[0].Tag)

	assert.Empty(t, ParentTag{Level: 10}.FindAll(line))
}

func TestAncestorTag(t *testing.T) {
	root := parseFixture(t).Root()
	line := root.FindElement("//sp[@who='BERNARDO']/l")
	require.NotNil(t, line)

	matches := AncestorTag{Name: "act"}.FindAll(line)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", matches[0].SelectAttrValue("n", ""))

	assert.Empty(t, AncestorTag{Name: "epilogue"}.FindAll(line))
	assert.Empty(t, AncestorTag{Name: "act"}.FindAll(nil))
}

func TestSiblingTag(t *testing.T) {
	root := parseFixture(t).Root()
	bernardo := root.FindElement("//sp[@who='BERNARDO']")
	require.NotNil(t, bernardo)

	// Following siblings come before preceding ones.
	matches := SiblingTag{Name: "sp"}.FindAll(bernardo)
	require.Len(t, matches, 1)
	assert.Equal(t, "FRANCISCO", matches[0].SelectAttrValue("who", ""))

	francisco := matches[0]
	matches = SiblingTag{Name: "sp"}.FindAll(francisco)
	require.Len(t, matches, 1)
	assert.Equal(t, "BERNARDO", matches[0].SelectAttrValue("who", ""))
}
