package matchers

import (
	"strings"

	"github.com/phildawes/racer/core"
)

// ParseImpl recognizes an `impl [<Generic>] [Trait for] Type { … }`
// statement blob and returns its core.ImplRecord, or ok=false if blob
// is not an impl block. Only a single generic parameter is tracked,
// matching the Type Evaluator's single-level generic substitution.
func ParseImpl(file string, blobStart int, blob string) (core.ImplRecord, bool) {
	keyword, kwEnd := stripToKeyword(blob)
	if keyword != "impl" {
		return core.ImplRecord{}, false
	}

	open := strings.IndexByte(blob, '{')
	if open == -1 {
		return core.ImplRecord{}, false
	}
	closeIdx := matchBrace(blob, open)
	if closeIdx == -1 {
		closeIdx = len(blob) - 1
	}

	header := strings.TrimSpace(blob[kwEnd:open])

	var generic string
	if strings.HasPrefix(header, "<") {
		end := matchAngle(header, 0)
		if end != -1 {
			params := header[1:end]
			if name, _ := readIdent(params, 0); name != "" {
				generic = name
			}
			header = strings.TrimSpace(header[end+1:])
		}
	}

	var traitName, selfType string
	if idx := findKeyword(header, "for", 0); idx != -1 {
		traitName = strings.TrimSpace(header[:idx])
		selfType = strings.TrimSpace(header[idx+len("for"):])
	} else {
		selfType = header
	}
	selfType = headTypeName(selfType)
	traitName = headTypeName(traitName)

	return core.ImplRecord{
		File:       file,
		SelfType:   selfType,
		TraitName:  traitName,
		Body:       blob[open+1 : closeIdx],
		BodyStart:  blobStart + open + 1,
		GenericArg: generic,
	}, true
}

// headTypeName extracts a type expression's leading name, stripping
// any generic argument list (`Foo<T>` -> `Foo`) and reference sigils.
func headTypeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "&")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "mut ")
	name, _ := readIdent(s, 0)
	return name
}

func matchAngle(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
