// Package matchers turns a statement blob (one byte range yielded by
// chunker.Statements) into the core.Match records it introduces, and
// provides the standalone substring-matching primitives the Name
// Resolver filters those records with. Grounded on util.rs's
// txt_matches/symbol_matches and on the keyword table that drives
// Matches.
package matchers

import (
	"unicode"
	"unicode/utf8"

	"github.com/phildawes/racer/core"
)

// IsIdentChar reports whether r can appear inside a Rust identifier or
// macro invocation (the trailing `!` included, as util.rs does for
// macro names like `println!`).
func IsIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '!'
}

// IsPathChar reports whether r can appear in a `::`-joined path or a
// `.`-joined member-access expression, the character class util.rs
// calls is_search_expr_char.
func IsPathChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':' || r == '.'
}

// TxtMatches reports whether needle occurs in haystack as a standalone
// identifier: at the start of haystack, or immediately after a
// non-identifier character, and (for ExactMatch) followed immediately
// by a non-identifier character or end of string. Grounded on
// util.rs's txt_matches.
func TxtMatches(stype core.SearchType, needle, haystack string) bool {
	if needle == "" {
		return true
	}
	n := 0
	for {
		rest := haystack[n:]
		idx := indexString(rest, needle)
		if idx == -1 {
			return false
		}
		pos := n + idx
		precededOK := pos == 0 || !IsIdentChar(lastRune(haystack[:pos]))
		if precededOK {
			if stype == core.StartsWith {
				return true
			}
			end := pos + len(needle)
			if end == len(haystack) || !IsIdentChar(firstRune(haystack[end:])) {
				return true
			}
		}
		n = pos + 1
		if n >= len(haystack) {
			return false
		}
	}
}

// SymbolMatches reports whether candidate satisfies searchstr under
// stype, for when candidate is already known to be exactly one
// identifier (as opposed to TxtMatches' free-text scan). Grounded on
// util.rs's symbol_matches.
func SymbolMatches(stype core.SearchType, searchstr, candidate string) bool {
	switch stype {
	case core.ExactMatch:
		return searchstr == candidate
	default:
		return len(candidate) >= len(searchstr) && candidate[:len(searchstr)] == searchstr
	}
}

func indexString(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return i
		}
	}
	return -1
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
