package matchers

import (
	"strings"

	"github.com/phildawes/racer/core"
)

// StructFields scans a `struct Name { field: Type, … }` statement blob
// for its named fields, each surfaced as a KindStructField Match whose
// Context holds the field's `name: Type` declaration text, the same
// convention identMatch uses to stash a function's `fn … -> Ret`
// signature — the Type Evaluator recovers the declared type by
// re-splitting Context on its first top-level `:`. Tuple structs
// (`struct Name(Type, …)`) and unit structs contribute no named
// fields.
func StructFields(file string, blobStart int, blob string) []core.Match {
	keyword, kwEnd := stripToKeyword(blob)
	if keyword != "struct" {
		return nil
	}
	_, nameStart := readIdent(blob, kwEnd)
	_, nameEnd := readIdentEnd(blob, nameStart)

	open := skipGenericsToBrace(blob, nameEnd)
	if open == -1 {
		return nil
	}
	closeIdx := matchBrace(blob, open)
	if closeIdx == -1 {
		return nil
	}

	var out []core.Match
	for _, seg := range splitTopLevel(blob[open+1:closeIdx], ',') {
		segAbsStart := blobStart + open + 1 + seg.start
		trimmed := strings.TrimSpace(seg.text)
		if trimmed == "" {
			continue
		}
		visEnd := stripFieldVisibility(seg.text)
		name, namePos := readIdent(seg.text, visEnd)
		if name == "" {
			continue
		}
		afterName := skipSpace(seg.text, namePos+len(name))
		if afterName >= len(seg.text) || seg.text[afterName] != ':' {
			continue
		}
		out = append(out, core.Match{
			Name:    name,
			File:    file,
			Point:   segAbsStart + namePos,
			Kind:    core.KindStructField,
			Context: trimmed,
		})
	}
	return out
}

// readIdentEnd reads the identifier starting at from and returns its
// end offset (from itself if no identifier starts there).
func readIdentEnd(s string, from int) (string, int) {
	j := from
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[from:j], j
}

// skipGenericsToBrace scans forward from after a struct's name,
// through an optional `<...>` generic parameter list and an optional
// `where` clause, to the struct body's opening `{`, or -1 if the
// struct has no `{ … }` body (tuple struct or unit struct).
func skipGenericsToBrace(blob string, from int) int {
	i := skipSpace(blob, from)
	if i < len(blob) && blob[i] == '<' {
		i = skipBalanced(blob, i+1, '<', '>')
	}
	for i < len(blob) {
		switch blob[i] {
		case '{':
			return i
		case '(', ';':
			return -1
		default:
			i++
		}
	}
	return -1
}

// stripFieldVisibility returns the offset within field just past a
// leading `pub`/`pub(crate)` qualifier, or 0 if field has none.
func stripFieldVisibility(field string) int {
	lead := skipSpace(field, 0)
	if peekWord(field, lead) != "pub" {
		return lead
	}
	i := skipSpace(field, lead+len("pub"))
	if i < len(field) && field[i] == '(' {
		i = skipBalanced(field, i+1, '(', ')')
	}
	return i
}
