package marktree

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	encpkg "github.com/larskjaer/marktree/encoding"
	"github.com/larskjaer/marktree/tree"
	"github.com/larskjaer/marktree/treesink"
)

// InitialBufferSize is the size of the prefix window the buffered driver
// reads before committing to an encoding.
const InitialBufferSize = 4096

// ErrInterrupted marks a Read that should be retried rather than surfaced
// to the caller (wrapped, via errors.Is). Real files never produce it; it
// exists for test doubles that simulate short, interrupted reads.
var ErrInterrupted = errors.New("marktree: read interrupted")

// ParseBuffered implements the buffered parser driver: it reads up
// to InitialBufferSize bytes of r, checks them for a BOM, probe-parses that
// same prefix to harvest <meta charset>/Content-Type hints from <head>, and
// if either source changes hint's top encoding, commits to decoding the
// entire input with the new top encoding before doing the real parse.
//
// Unlike an incremental tokenizer, golang.org/x/net/html's Parse consumes a
// whole io.Reader and returns a finished tree in one call; there is no
// token-by-token pause point to rewind. This driver honors the same
// observable contract — at most one discarded parse, restricted to the
// initial window, before a final parse with the resolved encoding — by
// realizing the discarded parse as a throwaway probe over just the prefix
// rather than by re-invoking a paused tokenizer.
func ParseBuffered(ctx context.Context, hint *encpkg.Hint, r io.Reader) (*tree.Document, error) {
	return ParseBufferedWithLogger(ctx, hint, r, nil)
}

// ParseBufferedWithLogger is ParseBuffered plus an optional logger attached
// to the underlying treesink.Builder, so a caller (the CLI's --debug flag,
// for instance) can observe parse errors at debug level. A nil logger
// behaves exactly like ParseBuffered.
func ParseBufferedWithLogger(ctx context.Context, hint *encpkg.Hint, r io.Reader, logger *slog.Logger) (*tree.Document, error) {
	window, atEOF, err := readWindow(ctx, r, InitialBufferSize)
	if err != nil {
		return nil, err
	}

	checkBOM(hint, window)

	if len(window) > 0 {
		probeAndApplyMetaHints(hint, window)
	}
	hint.ClearChanged()

	all := window
	if !atEOF {
		rest, err := readAll(ctx, r)
		if err != nil {
			return nil, err
		}
		all = append(all, rest...)
	}

	dec, err := encpkg.NewDecoder(hint.Top(), func(string) { hint.IncrementError() })
	if err != nil {
		return nil, err
	}
	decoded := dec.Decode(all, true)

	b, err := treesink.ParseDocumentWithLogger([]byte(decoded), hint, nil, logger)
	if err != nil {
		return nil, err
	}
	return b.Document, nil
}

// probeAndApplyMetaHints decodes window with hint's current top encoding,
// parses that decoded prefix purely to find <meta> elements under <head>
// (the document is necessarily incomplete, so the resulting tree is
// discarded — only the meta scan's side effect on hint matters), and folds
// each usable meta hint into hint at HTML_META_CONF / count confidence.
func probeAndApplyMetaHints(hint *encpkg.Hint, window []byte) {
	probeDec, err := encpkg.NewDecoder(hint.Top(), nil)
	if err != nil {
		return
	}
	decoded := probeDec.Decode(window, true)

	_, _ = treesink.ParseDocumentWithMetaHook([]byte(decoded), nil, func(metas []map[string]string) {
		applyMetaHints(hint, metas)
	})
}

func applyMetaHints(hint *encpkg.Hint, metas []map[string]string) {
	if len(metas) == 0 {
		return
	}
	confidence := encpkg.HTMLMetaConfidence / float64(len(metas))
	for _, attrs := range metas {
		label, ok := metaCharsetLabel(attrs)
		if !ok {
			continue
		}
		name, ok := encpkg.MetaDeclaredEncoding(label)
		if !ok {
			continue
		}
		if !hint.CouldReadFrom(name) {
			continue
		}
		hint.AddHint(name, confidence)
	}
}

// metaCharsetLabel extracts the encoding label from a <meta charset=…> or
// <meta http-equiv="Content-Type" content="…charset=…"> element's
// attributes.
func metaCharsetLabel(attrs map[string]string) (string, bool) {
	if v, ok := attrs["charset"]; ok {
		return v, true
	}
	if !strings.EqualFold(strings.TrimSpace(attrs["http-equiv"]), "content-type") {
		return "", false
	}
	content, ok := attrs["content"]
	if !ok {
		return "", false
	}
	idx := strings.Index(strings.ToLower(content), "charset")
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len("charset"):]
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	rest = strings.TrimSpace(rest[1:])
	rest = strings.Trim(rest, `"'`)
	end := strings.IndexAny(rest, "; \t")
	if end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// checkBOM inspects the first three bytes of window for a UTF-8, UTF-16LE
// or UTF-16BE byte-order mark and, if found, folds it into hint at
// BOMConfidence. BOM hints bypass CouldReadFrom.
func checkBOM(hint *encpkg.Hint, window []byte) {
	switch {
	case len(window) >= 3 && window[0] == 0xEF && window[1] == 0xBB && window[2] == 0xBF:
		hint.AddHint("utf-8", encpkg.BOMConfidence)
	case len(window) >= 2 && window[0] == 0xFF && window[1] == 0xFE:
		hint.AddHint("utf-16le", encpkg.BOMConfidence)
	case len(window) >= 2 && window[0] == 0xFE && window[1] == 0xFF:
		hint.AddHint("utf-16be", encpkg.BOMConfidence)
	}
}

// readWindow reads up to size bytes from r, retrying reads that report
// ErrInterrupted, and reports whether EOF was reached while filling it.
func readWindow(ctx context.Context, r io.Reader, size int) (buf []byte, atEOF bool, err error) {
	buf = make([]byte, 0, size)
	chunk := make([]byte, size)
	for len(buf) < size {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		n, err := r.Read(chunk[:size-len(buf)])
		buf = append(buf, chunk[:n]...)
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return buf, true, nil
			}
			return buf, false, err
		}
	}
	return buf, false, nil
}

// readAll reads r to completion, retrying ErrInterrupted reads and
// propagating any other error verbatim.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var out []byte
	chunk := make([]byte, InitialBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		out = append(out, chunk[:n]...)
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
	}
}
