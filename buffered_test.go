package marktree_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larskjaer/marktree"
	"github.com/larskjaer/marktree/encoding"
)

func encodeUTF16(s string, bigEndian bool) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}
	return out
}

func TestParseBufferedBOMOverridesDefaultHint(t *testing.T) {
	body := "<html><body>¿De donde eres tú?</body></html>"
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})
	buf.Write(encodeUTF16(body, false))

	hint := encoding.NewHintWithDefault("utf-8", encoding.DefaultConfidence)
	doc, err := marktree.ParseBuffered(context.Background(), hint, &buf)
	require.NoError(t, err)

	assert.Equal(t, "utf-16le", hint.Top())
	root, ok := doc.RootElement()
	require.True(t, ok)
	text, ok := doc.Text(root)
	require.True(t, ok)
	assert.Contains(t, text, "¿De donde eres tú?")
}

func TestParseBufferedMetaHintRejectedWhenIncompatibleWithTop(t *testing.T) {
	body := `<html><head><meta charset="utf-16le"></head><body>hola</body></html>`
	r := bytes.NewReader(encodeUTF16(body, true))

	hint := encoding.NewHintWithDefault("utf-16be", encoding.HTTPContentTypeConfidence)
	doc, err := marktree.ParseBuffered(context.Background(), hint, r)
	require.NoError(t, err)

	assert.Equal(t, "utf-16be", hint.Top())
	root, ok := doc.RootElement()
	require.True(t, ok)
	text, ok := doc.Text(root)
	require.True(t, ok)
	assert.Contains(t, text, "hola")
}

// interruptingReader returns at most chunkSize bytes per call and, every
// other call, reports marktree.ErrInterrupted alongside zero bytes, to
// exercise the buffered driver's retry-on-interrupt behavior.
type interruptingReader struct {
	data      []byte
	pos       int
	chunkSize int
	calls     int
}

func (r *interruptingReader) Read(p []byte) (int, error) {
	r.calls++
	if r.calls%2 == 0 {
		return 0, marktree.ErrInterrupted
	}
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func TestParseBufferedToleratesShortInterruptedReads(t *testing.T) {
	document := []byte("<html><body><p>Hello, world!</p></body></html>")

	hint := encoding.NewHintWithDefault("utf-8", encoding.DefaultConfidence)
	r := &interruptingReader{data: document, chunkSize: 17}
	doc, err := marktree.ParseBuffered(context.Background(), hint, r)
	require.NoError(t, err)

	root, ok := doc.RootElement()
	require.True(t, ok)
	text, ok := doc.Text(root)
	require.True(t, ok)
	assert.Contains(t, text, "Hello, world!")
}

// TestParseBufferedMetaContentTypeCharsetExtraction exercises the
// whitespace-tolerant Content-Type meta scan: a leading space inside
// http-equiv's value and spaces around the charset= token must not stop
// the hint from resolving ISO-8859-1 (folded to windows-1252), provided
// the current top is itself ASCII-compatible.
func TestParseBufferedMetaContentTypeCharsetExtraction(t *testing.T) {
	doc := `<html><head><meta http-equiv=" Content-Type" content="text/html; charset = ISO-8859-1"></head><body>ok</body></html>`

	// Starts at utf-8, ASCII-compatible like the ISO-8859-1 the meta tag
	// declares, so the meta hint's higher confidence should win outright.
	hint := encoding.NewHintWithDefault("utf-8", encoding.DefaultConfidence)
	_, err := marktree.ParseBuffered(context.Background(), hint, bytes.NewReader([]byte(doc)))
	require.NoError(t, err)

	assert.Equal(t, "windows-1252", hint.Top())
}

func TestParseBufferedPropagatesContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hint := encoding.NewHintWithDefault("utf-8", encoding.DefaultConfidence)
	_, err := marktree.ParseBuffered(ctx, hint, bytes.NewReader([]byte("<p>hi</p>")))
	assert.ErrorIs(t, err, context.Canceled)
}
