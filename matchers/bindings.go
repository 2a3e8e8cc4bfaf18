package matchers

import (
	"strings"

	"github.com/phildawes/racer/core"
)

// LetBindings scans a statement blob for `let`/`if let`/`while let`
// patterns and returns one core.Match per name the pattern
// introduces, each carrying the core.Binding.Path needed
// by the Type Evaluator's destructuring walk. Only the blob's header —
// up to its first top-level `{`, if any — is searched, so a nested
// block's own `let`s (a separate, inner scope) are never picked up
// here.
func LetBindings(file string, blobStart int, blob string) []core.Match {
	pat, patStart, ok := LetPattern(blob)
	if !ok {
		return nil
	}
	return bindingsToMatches(file, blobStart+patStart, pat, core.KindLet)
}

// LetPattern extracts the pattern text of a `let`/`if let`/`while let`
// statement blob (and its byte offset within blob), stopping at
// whichever comes first: a top-level type-annotation `:` or the `=`
// initializer. Colons inside the pattern itself (struct-record field
// patterns) sit inside braces and so are not top-level. Shared by
// LetBindings and the Type Evaluator's typed-destructure case, e.g.
// `let (a, b): (u32, Blah)`.
func LetPattern(blob string) (pat string, patStart int, ok bool) {
	header := headerPart(blob)
	idx := findKeyword(header, "let", 0)
	if idx == -1 {
		return "", 0, false
	}
	patStart = skipSpace(header, idx+len("let"))
	patEnd := len(header)
	if colon := findTopLevelByte(header[patStart:], ':'); colon != -1 && patStart+colon < patEnd {
		patEnd = patStart + colon
	}
	if eq := findTopLevelByte(header[patStart:], '='); eq != -1 && patStart+eq < patEnd {
		patEnd = patStart + eq
	}
	return header[patStart:patEnd], patStart, true
}

// LetTypeAnnotation extracts a `let pat: Type = …` statement's
// optional type-annotation text and its absolute byte offset, for the
// Type Evaluator's typed-destructure case. ok is false when blob isn't
// a `let` or carries no annotation.
func LetTypeAnnotation(blobStart int, blob string) (typeText string, typeStart int, ok bool) {
	header := headerPart(blob)
	idx := findKeyword(header, "let", 0)
	if idx == -1 {
		return "", 0, false
	}
	colon := findTopLevelByte(header, ':')
	if colon == -1 {
		return "", 0, false
	}
	rest := header[colon+1:]
	end := len(rest)
	if eq := findTopLevelByte(rest, '='); eq != -1 {
		end = eq
	}
	typeText = strings.TrimSpace(rest[:end])
	if typeText == "" {
		return "", 0, false
	}
	offsetInRest := strings.Index(rest[:end], typeText)
	return typeText, blobStart + colon + 1 + offsetInRest, true
}

// PatternBindings walks pat (a pattern whose first byte sits at
// patAbsStart in its file) and returns one core.Binding per name it
// introduces, each carrying the destructuring Path the Type Evaluator
// needs to map a binding back to a sub-Ty of the pattern's driving
// type. This is LetBindings/ForBindings/ParamBindings' shared walk,
// exposed directly for callers (the Type Evaluator) that already have
// isolated pattern text in hand.
func PatternBindings(patAbsStart int, pat string) []core.Binding {
	var out []core.Binding
	walkPattern(pat, 0, nil, func(name string, offset int, path []core.PatternStep) {
		out = append(out, core.Binding{Name: name, Point: patAbsStart + offset, Path: path})
	})
	return out
}

// ForBindings scans a `for pat in expr { … }` statement for the
// pattern's bindings, restricted to the blob's header for the same
// reason as LetBindings.
func ForBindings(file string, blobStart int, blob string) []core.Match {
	header := headerPart(blob)
	idx := findKeyword(header, "for", 0)
	if idx == -1 {
		return nil
	}
	patStart := skipSpace(header, idx+len("for"))
	in := findKeyword(header, "in", patStart)
	if in == -1 {
		return nil
	}
	pat := header[patStart:in]
	return bindingsToMatches(file, blobStart+patStart, pat, core.KindLet)
}

// ParamBindings scans a fn/closure parameter list's inner text (the
// bytes strictly between its parens or pipes) for each parameter
// pattern's bindings, producing core.KindFnArg matches. self/&self/
// &mut self receivers introduce no binding: they aren't a completable
// name.
func ParamBindings(file string, listStart int, inner string) []core.Match {
	var out []core.Match
	for _, seg := range splitTopLevel(inner, ',') {
		param := strings.TrimSpace(seg.text)
		if param == "" || stripSelf(param) == "" {
			continue
		}
		pat := param
		if colon := findTopLevelByte(param, ':'); colon != -1 {
			pat = param[:colon]
		}
		paramOffset := seg.start + leadingSpace(seg.text)
		out = append(out, bindingsToMatches(file, listStart+paramOffset, pat, core.KindFnArg)...)
	}
	return out
}

// HasSelfReceiver reports whether a fn parameter list's inner text (the
// same slice ParamBindings expects) declares a `self` receiver as its
// first parameter — `self`, `&self`, `&mut self`, or `self: Type`.
// This is the method-receiver rule that drives completion on
// `expr.|` vs `Type::|`.
func HasSelfReceiver(inner string) bool {
	segs := splitTopLevel(inner, ',')
	if len(segs) == 0 {
		return false
	}
	first := strings.TrimSpace(segs[0].text)
	return first != "" && stripSelf(first) == ""
}

func stripSelf(param string) string {
	trimmed := strings.TrimPrefix(param, "&")
	trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "mut ")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "self" || strings.HasPrefix(trimmed, "self:") || strings.HasPrefix(trimmed, "self ") {
		return ""
	}
	return param
}

func leadingSpace(s string) int {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return i
}

// bindingsToMatches walks a pattern and emits one Match per binding it
// introduces, handling identifier, tuple, tuple-struct, and
// struct-record patterns; `_`, literals, and `ref`/`mut` modifiers
// introduce no binding of their own.
func bindingsToMatches(file string, patAbsStart int, pat string, kind core.MatchKind) []core.Match {
	var out []core.Match
	walkPattern(pat, 0, nil, func(name string, offset int, path []core.PatternStep) {
		out = append(out, core.Match{
			Name:  name,
			File:  file,
			Point: patAbsStart + offset,
			Kind:  kind,
		})
	})
	return out
}

// walkPattern recurses through a Rust pattern, invoking emit(name,
// offsetWithinPat, path) once per bound identifier. patOffset is the
// offset of pat[0] within the top-level pattern passed to
// bindingsToMatches, so offsets threaded through emit are always
// relative to that same origin. path records how to reach that
// binding's sub-Ty from the pattern's driving Ty.
func walkPattern(pat string, patOffset int, path []core.PatternStep, emit func(name string, offset int, path []core.PatternStep)) {
	lead := skipSpace(pat, 0)
	pat = pat[lead:]
	patOffset += lead

	tm := trimModifiers(pat)
	body := tm.text
	base := patOffset + tm.offset

	if body == "" || body == "_" {
		return
	}

	switch body[0] {
	case '(':
		closeIdx := matchParen(body, 0)
		if closeIdx == -1 {
			return
		}
		walkTuple(body[1:closeIdx], base+1, path, emit)
		return
	default:
		name, nameStart := readIdent(body, 0)
		if name == "" {
			return
		}
		rest := skipSpace(body, nameStart+len(name))
		switch {
		case rest < len(body) && body[rest] == '(':
			if closeIdx := matchParen(body, rest); closeIdx != -1 {
				walkTuple(body[rest+1:closeIdx], base+rest+1, path, emit)
				return
			}
		case rest < len(body) && body[rest] == '{':
			if closeIdx := matchBrace(body, rest); closeIdx != -1 {
				walkStruct(body[rest+1:closeIdx], base+rest+1, path, emit)
				return
			}
		}
		if isLiteralLead(name) {
			return
		}
		emit(name, base, path)
	}
}

func walkTuple(inner string, innerAbsOffset int, path []core.PatternStep, emit func(string, int, []core.PatternStep)) {
	for idx, seg := range splitTopLevel(inner, ',') {
		stepPath := append(append([]core.PatternStep{}, path...), core.PatternStep{Index: idx})
		walkPattern(seg.text, innerAbsOffset+seg.start, stepPath, emit)
	}
}

func walkStruct(inner string, innerAbsOffset int, path []core.PatternStep, emit func(string, int, []core.PatternStep)) {
	for _, seg := range splitTopLevel(inner, ',') {
		text := seg.text
		if strings.TrimSpace(text) == ".." {
			continue
		}
		if colon := findTopLevelByte(text, ':'); colon != -1 {
			fieldName := strings.TrimSpace(text[:colon])
			stepPath := append(append([]core.PatternStep{}, path...), core.PatternStep{Field: fieldName})
			walkPattern(text[colon+1:], innerAbsOffset+seg.start+colon+1, stepPath, emit)
			continue
		}
		tm := trimModifiers(text)
		name, _ := readIdent(tm.text, 0)
		if name == "" {
			continue
		}
		stepPath := append(append([]core.PatternStep{}, path...), core.PatternStep{Field: name})
		emit(name, innerAbsOffset+seg.start+tm.offset, stepPath)
	}
}

type segment struct {
	text  string
	start int // offset within the enclosing inner text
}

// TextSegment is segment's exported counterpart, for callers outside
// this package (the Type Evaluator's parameter-list and type-text
// splitting) that need the same depth-aware comma split without
// reimplementing it.
type TextSegment struct {
	Text  string
	Start int
}

// SplitTopLevel splits s on sep, ignoring seps nested inside
// `()[]{}<>`, mirroring how this package already isolates struct
// fields, fn params, and tuple-pattern elements.
func SplitTopLevel(s string, sep byte) []TextSegment {
	segs := splitTopLevel(s, sep)
	out := make([]TextSegment, len(segs))
	for i, seg := range segs {
		out[i] = TextSegment{Text: seg.text, Start: seg.start}
	}
	return out
}

// FindTopLevelByte returns the index of b in s outside any
// `()[]{}<>` nesting, or -1.
func FindTopLevelByte(s string, b byte) int { return findTopLevelByte(s, b) }

func splitTopLevel(s string, sep byte) []segment {
	var out []segment
	depth := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		atEnd := i == len(s)
		var c byte
		if !atEnd {
			c = s[i]
		}
		switch {
		case !atEnd && (c == '(' || c == '[' || c == '{' || c == '<'):
			depth++
		case !atEnd && (c == ')' || c == ']' || c == '}' || c == '>'):
			if depth > 0 {
				depth--
			}
		case atEnd || (c == sep && depth == 0):
			out = append(out, segment{s[start:i], start})
			start = i + 1
		}
	}
	return out
}

type trimmedPattern struct {
	text   string
	offset int
}

// trimModifiers strips `ref`/`mut`/`&`/`&mut` prefixes that don't
// themselves bind a name, returning the remaining text and its offset
// within the original pattern.
func trimModifiers(pat string) trimmedPattern {
	offset := 0
	for {
		lead := skipSpace(pat, 0)
		pat = pat[lead:]
		offset += lead
		switch {
		case strings.HasPrefix(pat, "&mut "):
			pat = pat[5:]
			offset += 5
		case strings.HasPrefix(pat, "&"):
			pat = pat[1:]
			offset += 1
		case strings.HasPrefix(pat, "ref mut "):
			pat = pat[8:]
			offset += 8
		case strings.HasPrefix(pat, "ref "):
			pat = pat[4:]
			offset += 4
		case strings.HasPrefix(pat, "mut "):
			pat = pat[4:]
			offset += 4
		default:
			return trimmedPattern{pat, offset}
		}
	}
}

func isLiteralLead(name string) bool {
	if name == "" {
		return false
	}
	return name[0] >= '0' && name[0] <= '9'
}

func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func findKeyword(s, kw string, from int) int {
	for i := from; i+len(kw) <= len(s); i++ {
		if s[i:i+len(kw)] == kw &&
			(i == 0 || !isIdentByte(s[i-1])) &&
			(i+len(kw) == len(s) || !isIdentByte(s[i+len(kw)])) {
			return i
		}
	}
	return -1
}

// headerPart returns blob up to its first top-level `{`, or the whole
// blob if it has none (a plain `let pat = expr;` statement).
func headerPart(blob string) string {
	if idx := findTopLevelByte(blob, '{'); idx != -1 {
		return blob[:idx]
	}
	return blob
}

func findTopLevelByte(s string, b byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == b && depth == 0 {
			return i
		}
		switch c {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		}
	}
	return -1
}
