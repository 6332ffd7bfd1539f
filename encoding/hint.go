// Package encoding implements the confidence-aggregating encoding hint and
// the streaming byte-to-UTF-8 decoder used by the buffered parser driver.
// Label resolution is delegated to golang.org/x/text/encoding/htmlindex
// rather than a hand-rolled label table.
package encoding

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Confidence constants used when folding a new hint into the running sum.
const (
	DefaultConfidence         = 0.01
	HTTPContentTypeConfidence = 0.09
	CLIHintConfidence         = 0.11
	HTMLMetaConfidence        = 0.20
	BOMConfidence             = 0.31
)

// Hint maintains a summed-confidence mapping from encoding name to
// cumulative confidence, tracks the current top encoding, a
// changed-since-last-clear flag, and an error counter. It is owned by a
// single parse session and is not safe for cross-thread sharing.
type Hint struct {
	sums    map[string]float64
	top     string
	changed bool
	errs    int
}

// NewHint returns a Hint defaulting to windows-1252 with DefaultConfidence,
// a reasonable fallback for a caller with no better guess (no declared HTTP
// charset, for instance).
func NewHint() *Hint {
	return NewHintWithDefault("windows-1252", DefaultConfidence)
}

// NewHintWithDefault returns a Hint preloaded with a single hint for
// defaultEncoding at the given confidence, with Changed() cleared. Callers
// that already know a better starting guess than windows-1252 — an HTTP
// Content-Type header, say — use this instead of NewHint.
func NewHintWithDefault(defaultEncoding string, confidence float64) *Hint {
	h := &Hint{sums: make(map[string]float64)}
	h.AddHint(defaultEncoding, confidence)
	h.ClearChanged()
	return h
}

// Top returns the encoding with the highest cumulative confidence so far.
func (h *Hint) Top() string { return h.top }

// AddHint adds confidence to encoding's running sum. confidence must be
// positive. Returns true iff this call changed the top encoding.
func (h *Hint) AddHint(encodingName string, confidence float64) bool {
	if confidence <= 0 {
		panic("encoding: AddHint requires confidence > 0")
	}
	h.sums[encodingName] += confidence
	if h.top == "" || h.sums[encodingName] > h.sums[h.top] {
		if h.top != encodingName {
			h.top = encodingName
			h.changed = true
			return true
		}
	}
	return false
}

// AddLabelHint resolves label to a canonical encoding name via htmlindex
// and delegates to AddHint. Unknown labels are ignored and report no
// change.
func (h *Hint) AddLabelHint(label string, confidence float64) bool {
	name, ok := canonicalName(label)
	if !ok {
		return false
	}
	return h.AddHint(name, confidence)
}

// CouldReadFrom rejects a meta hint whose encoding is ASCII-incompatible
// (UTF-16 in either endianness, or the REPLACEMENT encoding) when the
// current top is ASCII-compatible, or vice versa, or between two
// different ASCII-incompatible encodings. Callers bypass this check
// entirely for BOM and HTTP Content-Type hints.
func (h *Hint) CouldReadFrom(encodingName string) bool {
	if h.top == "" {
		return true
	}
	topIncompat := isASCIIIncompatible(h.top)
	candidateIncompat := isASCIIIncompatible(encodingName)
	if topIncompat != candidateIncompat {
		return false
	}
	if topIncompat && candidateIncompat && h.top != encodingName {
		return false
	}
	return true
}

// Changed reports whether the top encoding has changed since the last
// ClearChanged call.
func (h *Hint) Changed() bool { return h.changed }

// ClearChanged resets the changed flag.
func (h *Hint) ClearChanged() { h.changed = false }

// Errors returns the current decode-error count.
func (h *Hint) Errors() int { return h.errs }

// IncrementError bumps the decode-error count by one.
func (h *Hint) IncrementError() { h.errs++ }

// ClearErrors resets the decode-error count to zero.
func (h *Hint) ClearErrors() { h.errs = 0 }

func isASCIIIncompatible(name string) bool {
	switch name {
	case "utf-16le", "utf-16be", "replacement":
		return true
	}
	return false
}

// canonicalName resolves label the way the HTML "get an encoding"
// algorithm does: utf-7 is rejected outright (a longstanding security
// carve-out), and ISO-8859-1 labels are folded into windows-1252 per the
// encoding standard. UTF-16/UTF-32 names are returned as they are; the
// remap of such meta-declarations to UTF-8 is done by MetaDeclaredEncoding.
func canonicalName(label string) (string, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-7", "utf7", "x-utf-7", "unicode-1-1-utf-7":
		return "", false
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", false
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", false
	}
	name = strings.ToLower(name)

	if name == "iso-8859-1" {
		name = "windows-1252"
	}
	return name, true
}

// MetaDeclaredEncoding resolves a <meta charset> or Content-Type-declared
// label for use during the meta-charset scan, remapping
// UTF-16/UTF-32 declarations to UTF-8 per the HTML prescan algorithm.
func MetaDeclaredEncoding(label string) (string, bool) {
	name, ok := canonicalName(label)
	if !ok {
		return "", false
	}
	switch name {
	case "utf-16le", "utf-16be", "utf-32", "utf-32le", "utf-32be":
		return "utf-8", true
	}
	return name, true
}

// resolve looks up the golang.org/x/text Encoding for a canonical name
// produced by canonicalName/MetaDeclaredEncoding.
func resolve(name string) (encoding.Encoding, error) {
	return htmlindex.Get(name)
}
