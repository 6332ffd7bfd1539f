package treesink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larskjaer/marktree/serialize"
	"github.com/larskjaer/marktree/treesink"
)

func TestParseDocumentBuildsHTMLSkeleton(t *testing.T) {
	doc, err := treesink.ParseDocument([]byte("<p>hi</p>"))
	require.NoError(t, err)

	root, ok := doc.RootElement()
	require.True(t, ok)
	assert.True(t, doc.Node(root).IsElem("html"))
}

func TestParseDocumentWithMetaHookReportsMetaAttrs(t *testing.T) {
	src := `<html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width"></head><body></body></html>`

	var got []map[string]string
	b, err := treesink.ParseDocumentWithMetaHook([]byte(src), nil, func(metas []map[string]string) {
		got = metas
	})
	require.NoError(t, err)
	require.NotNil(t, b.Document)

	require.Len(t, got, 2)
	assert.Equal(t, "utf-8", got[0]["charset"])
	assert.Equal(t, "viewport", got[1]["name"])
}

func TestParseFragmentFoldsSingleBlockChild(t *testing.T) {
	doc, err := treesink.ParseFragment([]byte("<div>text</div>"), "div")
	require.NoError(t, err)

	root, ok := doc.RootElement()
	require.True(t, ok)
	assert.True(t, doc.Node(root).IsElem("div"))
	assert.Equal(t, "<div>text</div>", serialize.ToHTML(doc, root, serialize.Options{}))
}

func TestParseFragmentRenamesWrapperForInlineOnlyChild(t *testing.T) {
	doc, err := treesink.ParseFragment([]byte("<i>text</i>"), "div")
	require.NoError(t, err)

	root, ok := doc.RootElement()
	require.True(t, ok)
	assert.True(t, doc.Node(root).IsElem("div"))
	assert.Equal(t, "<div><i>text</i></div>", serialize.ToHTML(doc, root, serialize.Options{}))
}
