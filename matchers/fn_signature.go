package matchers

import "strings"

// FnSignature isolates a `fn name<generics>(params) -> Ret { … }`
// blob's parameter-list text and return-type text, for the Type
// Evaluator's fn-arg destructuring and function-call return-type
// lookup. Either text may come back empty (no params; no explicit
// return type, i.e. `()`).
func FnSignature(blob string) (paramsInner string, paramsStart int, returnType string, returnTypeStart int, ok bool) {
	keyword, kwEnd := stripToKeyword(blob)
	if keyword != "fn" {
		return "", 0, "", 0, false
	}
	_, nameStart := readIdent(blob, kwEnd)
	_, nameEnd := readIdentEnd(blob, nameStart)
	i := skipSpace(blob, nameEnd)
	if i < len(blob) && blob[i] == '<' {
		i = skipBalanced(blob, i+1, '<', '>')
	}
	i = skipSpace(blob, i)
	if i >= len(blob) || blob[i] != '(' {
		return "", 0, "", 0, false
	}
	closeIdx := skipBalanced(blob, i+1, '(', ')') - 1
	if closeIdx <= i {
		return "", 0, "", 0, false
	}
	paramsInner = blob[i+1 : closeIdx]
	paramsStart = i + 1

	rest := skipSpace(blob, closeIdx+1)
	if strings.HasPrefix(blob[rest:], "->") {
		typeStart := skipSpace(blob, rest+2)
		typeEnd := len(blob)
		if w := findKeyword(blob[typeStart:], "where", 0); w != -1 {
			typeEnd = typeStart + w
		}
		if brace := findTopLevelByte(blob[typeStart:typeEnd], '{'); brace != -1 {
			typeEnd = typeStart + brace
		}
		returnType = strings.TrimSpace(blob[typeStart:typeEnd])
		returnTypeStart = typeStart + (len(blob[typeStart:typeEnd]) - len(strings.TrimLeft(blob[typeStart:typeEnd], " \t\n\r")))
	}
	return paramsInner, paramsStart, returnType, returnTypeStart, true
}
