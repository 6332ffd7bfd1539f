package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ErrorHook is called with a descriptive tag whenever the UTF-8 path
// substitutes U+FFFD for an ill-formed byte (once per replaced byte). On
// other encodings it is called only when the golang.org/x/text transform
// returns an error; U+FFFD substitutions made inside that transform are not
// reported.
type ErrorHook func(tag string)

// IllSequenceTag is the description passed to ErrorHook (and, via the tree
// builder sink's parse_error, to Hint.IncrementError) for a replaced
// ill-formed byte sequence.
const IllSequenceTag = "ill-formed byte sequence"

// Decoder is a byte-stream adaptor that consumes arbitrary byte chunks and
// emits UTF-8 text chunks. Input already known to be UTF-8 takes a fast
// validation path that copies the valid bytes into the returned string;
// anything else is transcoded via
// golang.org/x/text/encoding through a transform.Transformer.
type Decoder struct {
	name      string
	onError   ErrorHook
	transform transform.Transformer
	leftover  []byte
}

// NewDecoder returns a Decoder for encodingName (a canonical name as
// produced by canonicalName/MetaDeclaredEncoding, or "utf-8"). onError may
// be nil.
func NewDecoder(encodingName string, onError ErrorHook) (*Decoder, error) {
	d := &Decoder{name: encodingName, onError: onError}
	if encodingName == "utf-8" {
		return d, nil
	}
	enc, err := resolve(encodingName)
	if err != nil {
		return nil, err
	}
	d.transform = enc.NewDecoder()
	return d, nil
}

// Decode consumes a chunk of input bytes and returns the UTF-8 text
// decoded from it. Partial trailing sequences are buffered internally and
// completed by a subsequent call; pass final=true on the last chunk to
// force any incomplete trailing bytes to be replaced with U+FFFD.
func (d *Decoder) Decode(chunk []byte, final bool) string {
	if d.transform != nil {
		return d.decodeForeign(chunk, final)
	}
	return d.decodeUTF8(chunk, final)
}

func (d *Decoder) decodeUTF8(chunk []byte, final bool) string {
	buf := append(d.leftover, chunk...)
	d.leftover = nil

	var out []byte
	i := 0
	for i < len(buf) {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			if !final && i+utf8.UTFMax > len(buf) && !utf8.FullRune(buf[i:]) {
				d.leftover = append(d.leftover, buf[i:]...)
				return string(out)
			}
			d.reportError()
			var repl [utf8.UTFMax]byte
			n := utf8.EncodeRune(repl[:], utf8.RuneError)
			out = append(out, repl[:n]...)
			i++
			continue
		}
		out = append(out, buf[i:i+size]...)
		i += size
	}
	return string(out)
}

func (d *Decoder) decodeForeign(chunk []byte, final bool) string {
	buf := append(d.leftover, chunk...)
	d.leftover = nil

	dst := make([]byte, 4*len(buf)+16)
	nDst, nSrc, err := d.transform.Transform(dst, buf, final)
	for err == transform.ErrShortDst {
		dst = make([]byte, 2*len(dst)+16)
		nDst, nSrc, err = d.transform.Transform(dst, buf, final)
	}
	if err == transform.ErrShortSrc && !final {
		d.leftover = append(d.leftover, buf[nSrc:]...)
	}
	if nSrc < len(buf) && err != nil && err != transform.ErrShortSrc {
		d.reportError()
	}
	return string(dst[:nDst])
}

func (d *Decoder) reportError() {
	if d.onError != nil {
		d.onError(IllSequenceTag)
	}
}
