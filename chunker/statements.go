package chunker

// Statements splits a scope body — the masked source text immediately
// after an opening `{` (or a whole file for crate-root scope) — into
// the byte ranges of its top-level statements/items.
//
// A depth counter tracks `{[(<` / `}])>` together; a statement ends at
// a top-level `;`, at the top-level
// `}` that closes a block-shaped item (fn/impl/struct/match/loop/...),
// or at end of input. Attributes (`#[...]`) and doc comments preceding
// an item do not end a statement on their own — closing a `[` at
// depth 0 is not a `}` and has no `;`, so scanning continues straight
// into the item they decorate, attaching them to its range.
//
// src must already be masked (comments and string/char contents
// blanked) — callers get that for free from srcindex.IndexedSource.
func Statements(src string) []Range {
	var out []Range
	n := len(src)
	depth := 0
	start := 0
	i := 0

	isOpen := func(c byte) bool { return c == '{' || c == '[' || c == '(' || c == '<' }
	isClose := func(c byte) bool { return c == '}' || c == ']' || c == ')' || c == '>' }

	for i < n {
		c := src[i]
		switch {
		case isOpen(c):
			depth++
			i++
		case isClose(c):
			if depth > 0 {
				depth--
			}
			i++
			if depth == 0 && c == '}' {
				out = append(out, Range{start, i})
				start = i
			}
		case c == ';' && depth == 0:
			i++
			out = append(out, Range{start, i})
			start = i
		default:
			i++
		}
	}

	// Trailing content with no terminator (e.g. a statement cut short,
	// or trailing whitespace/attrs) still forms a final range if
	// non-empty once trimmed of pure whitespace.
	if hasNonSpace(src[start:n]) {
		out = append(out, Range{start, n})
	}

	return out
}

func hasNonSpace(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return true
		}
	}
	return false
}
