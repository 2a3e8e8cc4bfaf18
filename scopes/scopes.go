// Package scopes is the Scope Walker: given a point, it finds the
// statement start and the chain of enclosing `{}` blocks around that
// point by scanning unbalanced braces in masked source, the way
// nameres.rs's reverse_to_start_of_fn and search_local_scopes walk
// outward from a point without ever building an AST.
package scopes

import "github.com/phildawes/racer/chunker"

// Block is one enclosing lexical scope: [BodyStart, BodyEnd) is the
// byte range of its body, the text strictly between its `{` and
// matching `}` (or, for the outermost/file scope, the whole file).
type Block struct {
	BodyStart, BodyEnd int
}

// FindStmtStart scans backward from point over masked source to find
// the start of the statement/item point sits inside: the byte just
// after the nearest unbalanced `{` or top-level `;` before point, or 0
// if none is found (point is in the first statement of the file).
// Grounded on nameres.rs's reverse_to_start_of_fn / scopes::find_stmt_start.
func FindStmtStart(masked string, point int) int {
	if point > len(masked) {
		point = len(masked)
	}
	depth := 0
	for i := point - 1; i >= 0; i-- {
		switch masked[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				return i + 1
			}
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// ScopeEnd scans forward from a scope body's start (just after its
// opening `{`) to find the byte offset of its matching `}`, or
// len(masked) if the scope runs to EOF unmatched.
func ScopeEnd(masked string, bodyStart int) int {
	depth := 0
	for i := bodyStart; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return len(masked)
}

// EnclosingBlocks returns, innermost first, every `{}` block
// containing point, ending with the whole-file scope (crate root).
// Each Block's body range can then be split into statements via
// chunker.Statements and scanned by the matchers package.
func EnclosingBlocks(masked string, point int) []Block {
	if point > len(masked) {
		point = len(masked)
	}
	var blocks []Block
	depth := 0
	for i := point - 1; i >= 0; i-- {
		switch masked[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				start := i + 1
				blocks = append(blocks, Block{BodyStart: start, BodyEnd: ScopeEnd(masked, start)})
			} else {
				depth--
			}
		}
	}
	blocks = append(blocks, Block{BodyStart: 0, BodyEnd: len(masked)})
	return blocks
}

// EnclosingFnParamLists returns the byte range of the parameter list
// `(...)` for each enclosing fn/closure signature, innermost first, so
// the resolver can also search the parameter patterns of each
// enclosing fn/closure when walking scopes outward. For a block at
// BodyStart,
// the signature is the statement immediately preceding it; callers
// locate `fn ... (` or a closure's `|...|` there.
func EnclosingFnParamLists(masked string, blocks []Block) []chunker.Range {
	var out []chunker.Range
	for _, b := range blocks {
		sigStart := FindStmtStart(masked, b.BodyStart-1)
		sig := masked[sigStart:b.BodyStart]
		if open, close, ok := ClosureArgScope(sig); ok {
			out = append(out, chunker.Range{Start: sigStart + open, End: sigStart + close + 1})
			continue
		}
		if open, close, ok := fnParamRange(sig); ok {
			out = append(out, chunker.Range{Start: sigStart + open, End: sigStart + close + 1})
		}
	}
	return out
}

func fnParamRange(sig string) (open, close int, ok bool) {
	depth := 0
	open = -1
	for i := 0; i < len(sig); i++ {
		switch sig[i] {
		case '(':
			if depth == 0 && open == -1 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 && open != -1 {
				return open, i, true
			}
		}
	}
	return 0, 0, false
}

// ClosureArgScope finds a closure's `|params|` list within scopeSrc,
// returning the byte offsets of the pipes. Grounded on util.rs's
// closure_valid_arg_scope: the pipe-delimited text must have balanced
// braces and no top-level `;`, or it is rejected as not actually a
// closure signature (e.g. a bitwise-or expression).
func ClosureArgScope(scopeSrc string) (leftPipe, rightPipe int, ok bool) {
	left := indexByte(scopeSrc, '|', 0)
	if left == -1 {
		return 0, 0, false
	}
	right := indexByte(scopeSrc, '|', left+1)
	if right == -1 {
		return 0, 0, false
	}

	pipeScope := scopeSrc[left : right+1]
	depth := 0
	for _, c := range pipeScope {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				return 0, 0, false
			}
		}
	}
	if depth != 0 {
		return 0, 0, false
	}
	return left, right, true
}

func indexByte(s string, b byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
