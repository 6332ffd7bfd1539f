package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larskjaer/marktree/filter"
	"github.com/larskjaer/marktree/serialize"
	"github.com/larskjaer/marktree/treesink"
	"github.com/larskjaer/marktree/tree"
)

func mustParseFragment(t *testing.T, html, context string) *tree.Document {
	t.Helper()
	d, err := treesink.ParseFragment([]byte(html), context)
	require.NoError(t, err)
	return d
}

func mustParseDocument(t *testing.T, html string) *tree.Document {
	t.Helper()
	d, err := treesink.ParseDocument([]byte(html))
	require.NoError(t, err)
	return d
}

func strikeFold(d *tree.Document, id tree.NodeID) filter.Action {
	if d.Node(id).IsElem("strike") {
		return filter.Fold
	}
	return filter.Continue
}

func strikeDetach(d *tree.Document, id tree.NodeID) filter.Action {
	if d.Node(id).IsElem("strike") {
		return filter.Detach
	}
	return filter.Continue
}

func TestStrikeFoldScenario(t *testing.T) {
	d := mustParseDocument(t, `<div>foo <strike><strike><strike></strike><i>bar</i><strike>s</strike></strike></strike> baz</div>`)
	filter.Walk(d, strikeFold)
	got := serialize.ToHTML(d, tree.DocumentNodeID, serialize.Options{})
	assert.Equal(t, "<html><head></head><body><div>foo <i>bar</i>s baz</div></body></html>", got)
}

func TestBannedChainScenario(t *testing.T) {
	d := mustParseFragment(t, "<div>foo<strike><i>bar</i>s</strike> \n\t baz</div>", "div")
	tn := filter.NewTextNormalizer()
	chain := filter.Chain(strikeDetach, tn.Filter)
	filter.Walk(d, chain)
	root, ok := d.RootElement()
	require.True(t, ok)
	got := serialize.ToHTML(d, root, serialize.Options{})
	assert.Equal(t, "<div>foo baz</div>", got)
}

func TestXMPToPreScenario(t *testing.T) {
	d := mustParseFragment(t, "<div>foo <xmp><i>bar\n</i>\n</xmp> baz</div>", "div")
	tn := filter.NewTextNormalizer()
	chain := filter.Chain(filter.XMPToPre, tn.Filter)
	filter.Walk(d, chain)
	root, ok := d.RootElement()
	require.True(t, ok)
	got := serialize.ToHTML(d, root, serialize.Options{})
	assert.Equal(t, "<div>foo<pre>&lt;i&gt;bar\n&lt;/i&gt;\n</pre>baz</div>", got)
}

func TestFilterIdempotence(t *testing.T) {
	d := mustParseFragment(t, "<div>foo<strike><i>bar</i>s</strike> \n\t baz</div>", "div")
	filter.Walk(d, strikeDetach)
	tn1 := filter.NewTextNormalizer()
	filter.Walk(d, tn1.Filter)
	root, ok := d.RootElement()
	require.True(t, ok)
	first := serialize.ToHTML(d, root, serialize.Options{})

	tn2 := filter.NewTextNormalizer()
	filter.Walk(d, tn2.Filter)
	second := serialize.ToHTML(d, root, serialize.Options{})

	assert.Equal(t, first, second)
}

func TestFoldEmptyInlineNeverFoldsMultimediaOrBlock(t *testing.T) {
	d := mustParseFragment(t, `<div><img src="x"><p></p></div>`, "div")
	filter.Walk(d, filter.FoldEmptyInline)
	root, ok := d.RootElement()
	require.True(t, ok)
	_, imgFound := d.Find(root, func(d *tree.Document, id tree.NodeID) bool { return d.Node(id).IsElem("img") })
	assert.True(t, imgFound)
	_, pFound := d.Find(root, func(d *tree.Document, id tree.NodeID) bool { return d.Node(id).IsElem("p") })
	assert.True(t, pFound, "p is block-level and must not be folded by fold_empty_inline")
}

func TestDetachBannedElementsRemovesScriptAndUnknown(t *testing.T) {
	d := mustParseFragment(t, `<div><script>alert(1)</script><weird-tag>x</weird-tag><p>kept</p></div>`, "div")
	filter.Walk(d, filter.DetachBannedElements)
	root, ok := d.RootElement()
	require.True(t, ok)
	got := serialize.ToHTML(d, root, serialize.Options{})
	assert.Equal(t, "<div><p>kept</p></div>", got)
}
