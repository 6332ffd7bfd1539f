package nametable

import "sync"

// TagMeta holds the static per-tag flags and basic-attribute allowlist used
// by the filter framework (detach_banned_elements, retain_basic_attributes,
// fold_empty_inline, text_normalize's block/inline check).
type TagMeta struct {
	empty      bool
	deprecated bool
	inline     bool
	meta       bool
	banned     bool
	basicAttrs map[string]struct{}
}

func (t TagMeta) IsEmpty() bool      { return t.empty }
func (t TagMeta) IsDeprecated() bool { return t.deprecated }
func (t TagMeta) IsInline() bool     { return t.inline }
func (t TagMeta) IsMeta() bool       { return t.meta }
func (t TagMeta) IsBanned() bool     { return t.banned }

// HasBasicAttr reports whether localName is in this tag's basic-attribute
// allowlist.
func (t TagMeta) HasBasicAttr(localName string) bool {
	_, ok := t.basicAttrs[localName]
	return ok
}

var (
	tagMetaOnce sync.Once
	tagMeta     map[string]TagMeta
)

// entry is the compact source-of-truth row used to build the table once.
type entry struct {
	name  string
	flags string
	attrs string
}

// TagMetaOf returns the static metadata for an HTML tag's local name, and
// whether that tag is known at all. The table is built once, lazily, on
// first call and is read-only thereafter.
func TagMetaOf(localName string) (TagMeta, bool) {
	tagMetaOnce.Do(initTagMeta)
	m, ok := tagMeta[localName]
	return m, ok
}

func initTagMeta() {
	rows := []entry{
		{"a", "I", "base charset dir href hreflang id lang media name rel rev title type"},
		{"abbr", "I", "base dir lang title"},
		{"acronym", "D,I", "base dir lang title"},
		{"address", "", "base dir lang title"},
		{"applet", "D", "base dir lang title"},
		{"area", "E", "alt base dir lang media title"},
		{"article", "", "base dir lang title"},
		{"aside", "", "base dir lang title"},
		{"audio", "I", "base dir lang src title"},
		{"b", "I", "base dir lang title"},
		{"base", "E,M", "base href"},
		{"basefont", "E,D,I,M", "base dir lang title"},
		{"bdi", "I", "base dir lang title"},
		{"bdo", "I", "base dir lang title"},
		{"big", "D,I", "base dir lang title"},
		{"blink", "D,I", "base dir lang title"},
		{"blockquote", "", "base cite dir lang title"},
		{"body", "", "base dir lang title"},
		{"br", "E", "base title"},
		{"button", "I", "base dir lang title"},
		{"canvas", "I", "base dir lang title"},
		{"caption", "", "base dir lang title"},
		{"center", "D", "base dir lang title"},
		{"cite", "I", "base dir lang title"},
		{"code", "I", "base dir lang title"},
		{"col", "E", "base dir lang span title"},
		{"colgroup", "", "base dir lang span title"},
		{"content", "D", "base dir lang title"},
		{"data", "I", "base dir lang title value"},
		{"datalist", "I", "base dir lang title"},
		{"dd", "", "base dir lang title"},
		{"del", "I", "base cite datetime dir lang title"},
		{"details", "", "base dir lang title"},
		{"dfn", "I", "base dir lang title"},
		{"dialog", "", "base dir lang title"},
		{"dir", "D", "base dir lang title"},
		{"div", "", "base dir lang title"},
		{"dl", "", "base dir lang title"},
		{"dt", "", "base dir lang title"},
		{"em", "I", "base dir lang title"},
		{"embed", "E,I", "base dir height lang src title type width"},
		{"fieldset", "", "base dir lang title"},
		{"figcaption", "", "base dir lang title"},
		{"figure", "", "base dir lang title"},
		{"font", "D,I", "base dir lang title"},
		{"footer", "", "base dir lang title"},
		{"form", "", "accept accept-charset base dir lang title"},
		{"frame", "E,D", "base src title"},
		{"frameset", "D", "base title"},
		{"h1", "", "base dir lang title"},
		{"h2", "", "base dir lang title"},
		{"h3", "", "base dir lang title"},
		{"h4", "", "base dir lang title"},
		{"h5", "", "base dir lang title"},
		{"h6", "", "base dir lang title"},
		{"head", "M", "base dir lang"},
		{"header", "", "base dir lang title"},
		{"hgroup", "", "base dir lang title"},
		{"hr", "E", "base title"},
		{"html", "", "base dir lang"},
		{"i", "I", "base dir lang title"},
		{"iframe", "I", "align base title"},
		{"img", "E,I", "alt base decoding dir height lang src title width"},
		{"input", "E,I", "accept alt base dir lang title"},
		{"ins", "I", "base cite datetime dir lang title"},
		{"isindex", "D", "base dir lang title"},
		{"kbd", "I", "base dir lang title"},
		{"label", "I", "base dir lang title"},
		{"legend", "", "base dir lang title"},
		{"li", "", "base dir lang title"},
		{"link", "E,M", "base charset dir href hreflang lang media rel rev title type"},
		{"listing", "D", "base dir lang title"},
		{"main", "", "base dir lang title"},
		{"map", "I", "base dir lang title"},
		{"mark", "I", "base dir lang title"},
		{"menu", "D", "base dir lang title"},
		{"menuitem", "E,D", "base dir lang title"},
		{"meta", "E,M", "base charset content dir http-equiv lang scheme"},
		{"meter", "I", "base dir lang title"},
		{"nav", "", "base dir lang title"},
		{"nobr", "D,I", "base dir lang title"},
		{"noframes", "D", "base dir lang title"},
		{"noscript", "I", "base dir lang title"},
		{"object", "I", "align base data dir lang title type"},
		{"ol", "", "base dir lang title"},
		{"optgroup", "", "base dir label lang title"},
		{"option", "", "base dir label lang title"},
		{"output", "I", "base dir lang title"},
		{"p", "", "base dir lang title"},
		{"param", "E", "base name value"},
		{"picture", "I", "base dir height lang title width"},
		{"plaintext", "D", "base dir lang title"},
		{"pre", "", "base dir lang title"},
		{"progress", "I", "base dir lang title"},
		{"q", "I", "base cite dir lang title"},
		{"rb", "", "base dir lang title"},
		{"rp", "", "base dir lang title"},
		{"rt", "", "base dir lang title"},
		{"rtc", "", "base dir lang title"},
		{"ruby", "I", "base dir lang title"},
		{"s", "D,I", "base dir lang title"},
		{"samp", "I", "base dir lang title"},
		{"script", "I,B", "base dir lang"},
		{"section", "", "base dir lang title"},
		{"select", "I", "base dir lang title"},
		{"slot", "I", "base dir lang title"},
		{"small", "I", "base dir lang title"},
		{"source", "E", "base dir lang src title type"},
		{"span", "I", "base dir lang title"},
		{"strike", "D,I", "base dir lang title"},
		{"strong", "I", "base dir lang title"},
		{"style", "", "base dir lang"},
		{"sub", "I", "base dir lang title"},
		{"summary", "", "base dir lang title"},
		{"sup", "I", "base dir lang title"},
		{"svg", "", "base dir height lang title width"},
		{"table", "", "align base dir lang summary title"},
		{"tbody", "", "align base dir lang title"},
		{"td", "", "align base colspan dir headers lang rowspan scope title"},
		{"template", "", "base dir lang title"},
		{"textarea", "I", "base dir lang title"},
		{"tfoot", "", "align base dir lang title"},
		{"th", "", "abbr align axis base colspan dir lang rowspan scope title"},
		{"thead", "", "align base dir lang title"},
		{"time", "I", "base datetime dir lang title"},
		{"title", "M", "base dir lang"},
		{"tr", "", "abbr align axis base colspan dir headers lang rowspan scope title"},
		{"tt", "D,I", "base dir lang title"},
		{"u", "D,I", "base dir lang title"},
		{"ul", "", "base dir lang title"},
		{"var", "I", "base dir lang title"},
		{"video", "I", "base dir height lang title width"},
		{"wbr", "E,I", "base dir lang title"},
		{"xmp", "D", "base dir lang title"},
	}

	tagMeta = make(map[string]TagMeta, len(rows))
	for _, row := range rows {
		tm := TagMeta{basicAttrs: make(map[string]struct{})}
		for _, f := range splitNonEmpty(row.flags, ',') {
			switch f {
			case "E":
				tm.empty = true
			case "D":
				tm.deprecated = true
			case "I":
				tm.inline = true
			case "M":
				tm.meta = true
			case "B":
				tm.banned = true
			}
		}
		for _, a := range splitNonEmpty(row.attrs, ' ') {
			tm.basicAttrs[a] = struct{}{}
		}
		tagMeta[row.name] = tm
	}
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
