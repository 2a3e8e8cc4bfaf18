package matchers

import (
	"strings"

	"github.com/phildawes/racer/core"
)

// Matches enumerates every name a single statement blob introduces,
// ignoring the `impl` and `use` keywords, which produce the richer
// core.ImplRecord and core.UseArrow shapes
// handled by ParseImpl and ParseUse instead. Rather than filtering by
// query prefix inline the way util.rs's single-purpose helpers do,
// this enumerates unconditionally; callers (the resolver) apply
// TxtMatches/SymbolMatches and core.Namespace.Admits themselves, which
// keeps this package ignorant of what a caller is searching for.
//
// blobStart is the blob's absolute byte offset into file's raw source;
// blob must already be masked.
func Matches(file string, blobStart int, blob string) []core.Match {
	keyword, kwEnd := stripToKeyword(blob)
	if keyword == "" {
		return nil
	}

	context := excerpt(blob)

	switch keyword {
	case "fn":
		return identMatch(file, blobStart, blob, kwEnd, core.KindFunction, context)
	case "struct":
		return identMatch(file, blobStart, blob, kwEnd, core.KindStruct, context)
	case "enum":
		ms := identMatch(file, blobStart, blob, kwEnd, core.KindEnum, context)
		return append(ms, enumVariants(file, blobStart, blob)...)
	case "trait":
		return identMatch(file, blobStart, blob, kwEnd, core.KindTrait, context)
	case "type":
		return identMatch(file, blobStart, blob, kwEnd, core.KindType, context)
	case "const":
		return identMatch(file, blobStart, blob, kwEnd, core.KindConst, context)
	case "static":
		end := kwEnd
		if w := peekWord(blob, end); w == "mut" {
			end = wordEnd(blob, end)
		}
		return identMatch(file, blobStart, blob, end, core.KindStatic, context)
	case "mod":
		return identMatch(file, blobStart, blob, kwEnd, core.KindModule, context)
	case "extern":
		return identMatch(file, blobStart, blob, kwEnd, core.KindCrate, context)
	default:
		return nil
	}
}

// identMatch reads one identifier starting after `from` in blob and
// returns it as a single Match of the given kind.
func identMatch(file string, blobStart int, blob string, from int, kind core.MatchKind, context string) []core.Match {
	name, start := readIdent(blob, from)
	if name == "" {
		return nil
	}
	return []core.Match{{
		Name:    name,
		File:    file,
		Point:   blobStart + start,
		Kind:    kind,
		Context: context,
	}}
}

// enumVariants scans an enum's body for its variant names, each
// surfaced as a KindEnumVariant match in the Value namespace.
func enumVariants(file string, blobStart int, blob string) []core.Match {
	open := strings.IndexByte(blob, '{')
	closeIdx := strings.LastIndexByte(blob, '}')
	if open == -1 || closeIdx == -1 || closeIdx <= open {
		return nil
	}
	body := blob[open+1 : closeIdx]
	bodyStart := open + 1

	var out []core.Match
	depth := 0
	atVariantStart := true
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '{', '(', '<':
			depth++
		case '}', ')', '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				atVariantStart = true
			}
		default:
			if depth == 0 && atVariantStart && isIdentByte(c) {
				name, start := readIdent(body, i)
				if name != "" {
					out = append(out, core.Match{
						Name:  name,
						File:  file,
						Point: blobStart + bodyStart + start,
						Kind:  core.KindEnumVariant,
					})
				}
				atVariantStart = false
				i += len(name) - 1
			}
		}
	}
	return out
}

// stripToKeyword skips visibility qualifiers, attributes, doc
// comments, and the `unsafe`/`async` modifiers leading a statement,
// returning the keyword token found there and kwEnd, the
// absolute-in-blob offset just past that keyword (and past "crate"
// too, for "extern crate"). An empty keyword means the blob matched no
// recognized construct (e.g. an expression statement).
func stripToKeyword(blob string) (keyword string, kwEnd int) {
	pos := 0
	for {
		pos = skipSpace(blob, pos)
		switch {
		case strings.HasPrefix(blob[pos:], "#["):
			pos = skipBalanced(blob, pos+1, '[', ']')
			continue
		case strings.HasPrefix(blob[pos:], "///") || strings.HasPrefix(blob[pos:], "//!"):
			if nl := strings.IndexByte(blob[pos:], '\n'); nl == -1 {
				pos = len(blob)
			} else {
				pos += nl + 1
			}
			continue
		}

		w := peekWord(blob, pos)
		switch w {
		case "pub":
			pos = wordEnd(blob, pos)
			p2 := skipSpace(blob, pos)
			if p2 < len(blob) && blob[p2] == '(' {
				pos = skipBalanced(blob, p2+1, '(', ')')
			}
			continue
		case "unsafe", "async":
			pos = wordEnd(blob, pos)
			continue
		case "extern":
			next := skipSpace(blob, wordEnd(blob, pos))
			if peekWord(blob, next) == "crate" {
				return "extern", wordEnd(blob, next)
			}
			pos = wordEnd(blob, pos)
			continue
		}
		break
	}

	kw := peekWord(blob, pos)
	return kw, wordEnd(blob, pos)
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return i
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func peekWord(s string, i int) string {
	i = skipSpace(s, i)
	j := i
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[i:j]
}

func wordEnd(s string, i int) int {
	i = skipSpace(s, i)
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return i
}

// readIdent skips whitespace from `from`, then reads one identifier,
// returning its text and absolute start offset within s. When no
// identifier starts there, the text is "" and the offset is where the
// whitespace ended.
func readIdent(s string, from int) (string, int) {
	i := skipSpace(s, from)
	j := i
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[i:j], i
}

// skipBalanced returns the index just past the close byte matching
// the open byte already consumed before position i (i.e. i sits right
// after the opening character), tracking nested pairs of the same
// open/close bytes.
func skipBalanced(s string, i int, open, closeB byte) int {
	depth := 1
	for i < len(s) {
		switch s[i] {
		case open:
			depth++
		case closeB:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return len(s)
}

// excerpt returns blob up to (and not including) its first `{` or `;`
// at any nesting depth, or the whole blob if neither appears — the Matcher's
// context excerpt.
func excerpt(blob string) string {
	for i := 0; i < len(blob); i++ {
		if blob[i] == '{' || blob[i] == ';' {
			return strings.TrimSpace(blob[:i])
		}
	}
	return strings.TrimSpace(blob)
}
