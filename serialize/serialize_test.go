package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larskjaer/marktree/serialize"
	"github.com/larskjaer/marktree/tree"
)

func elemName(local string) tree.QualName {
	return tree.QualName{Namespace: tree.NamespaceHTML, Local: local}
}

func TestSerializeEscapesTextAndAttributes(t *testing.T) {
	d := tree.New()
	a := d.NewElement(elemName("a"), []tree.Attribute{{Name: tree.QualName{Local: "href"}, Value: `"><script>`}})
	d.AppendChild(tree.DocumentNodeID, a)
	text := d.NewText("<b> & \"friends\"")
	d.AppendChild(a, text)

	got := serialize.ToHTML(d, tree.DocumentNodeID, serialize.Options{})
	assert.Equal(t, `<a href="&quot;><script>">&lt;b&gt; &amp; "friends"</a>`, got)
}

func TestSerializeVoidElementHasNoClosingTag(t *testing.T) {
	d := tree.New()
	img := d.NewElement(elemName("img"), []tree.Attribute{{Name: tree.QualName{Local: "src"}, Value: "x.png"}})
	d.AppendChild(tree.DocumentNodeID, img)

	got := serialize.ToHTML(d, tree.DocumentNodeID, serialize.Options{})
	assert.Equal(t, `<img src="x.png">`, got)
}

func TestSerializeDoctypeAndComment(t *testing.T) {
	d := tree.New()
	dt := d.NewDoctype("html", "", "")
	d.AppendChild(tree.DocumentNodeID, dt)
	c := d.NewComment(" note ")
	d.AppendChild(tree.DocumentNodeID, c)

	got := serialize.ToHTML(d, tree.DocumentNodeID, serialize.Options{})
	assert.Equal(t, "<!DOCTYPE html><!-- note -->", got)
}

func TestSerializeHolePanics(t *testing.T) {
	d := tree.New()
	require.Panics(t, func() {
		serialize.ToHTML(d, tree.NodeID(0), serialize.Options{})
	})
}
