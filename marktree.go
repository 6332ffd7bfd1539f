// Package marktree implements an arena-backed HTML (and, secondarily,
// XML-shaped) tree container plus an incremental, encoding-aware parser
// pipeline built on top of it.
//
// The tokenizer and HTML5 tree-construction algorithm are treated as an
// external collaborator: golang.org/x/net/html performs the actual
// tokenizing and insertion-mode state machine, and treesink.Builder
// replays its result through the tree/treesink packages in this module,
// which own the arena, the mutation/traversal/clone API, the filter
// framework, and encoding negotiation.
//
// # Basic usage
//
//	doc, err := marktree.ParseUTF8([]byte("<p>Hello!</p>"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	root, _ := doc.RootElement()
//	fmt.Println(serialize.ToHTML(doc, root, serialize.Options{}))
package marktree

import (
	"github.com/larskjaer/marktree/tree"
	"github.com/larskjaer/marktree/treesink"
)

// ParseUTF8 parses a complete HTML document already known to be UTF-8
// encoded. Callers with bytes of unknown encoding should use ParseBuffered
// instead, which negotiates encoding from BOM and meta hints.
func ParseUTF8(data []byte) (*tree.Document, error) {
	return treesink.ParseDocument(data)
}

// ParseUTF8Fragment parses data as an HTML fragment in the given context
// element, applying the fragment-root coercion rule: a lone block-level
// element child folds the synthetic <html> wrapper entirely (becoming root
// itself); any other shape renames the wrapper to <div> and retains it.
func ParseUTF8Fragment(data []byte, context string) (*tree.Document, error) {
	return treesink.ParseFragment(data, context)
}
