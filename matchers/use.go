package matchers

import (
	"strings"

	"github.com/phildawes/racer/core"
)

// ParseUse expands a `use` statement blob into its leaf UseArrows,
// each leaf becoming a reexport arrow to be followed, handling
// grouped (`use a::{b, c}`), aliased (`use a::b as c`),
// `self`-leaf, and glob (`use a::*`) forms. importScope is the scope
// the resolver should resolve each arrow's Target against — the
// module the `use` statement itself lives in.
func ParseUse(file string, blobStart int, blob string, importScope core.Scope) []core.UseArrow {
	keyword, kwEnd := stripToKeyword(blob)
	if keyword != "use" {
		return nil
	}
	rest := blob[kwEnd:]
	end := len(rest)
	if semi := strings.IndexByte(rest, ';'); semi != -1 {
		end = semi
	}
	return expandUseTree(file, blobStart+kwEnd, rest[:end], nil, importScope)
}

func expandUseTree(file string, absOffset int, text string, prefix []core.PathSegment, importScope core.Scope) []core.UseArrow {
	lead := skipSpace(text, 0)
	text = text[lead:]
	absOffset += lead
	if text == "" {
		return nil
	}

	if text[0] == '{' {
		closeIdx := matchBrace(text, 0)
		if closeIdx == -1 {
			return nil
		}
		var out []core.UseArrow
		for _, seg := range splitTopLevel(text[1:closeIdx], ',') {
			out = append(out, expandUseTree(file, absOffset+1+seg.start, seg.text, prefix, importScope)...)
		}
		return out
	}

	if text[0] == '*' {
		return []core.UseArrow{{
			Name:        "*",
			Target:      core.Path{Segments: prefix},
			ImportScope: importScope,
			Point:       absOffset,
		}}
	}

	name, nameStart := readIdent(text, 0)
	if name == "" {
		return nil
	}
	rest := skipSpace(text, nameStart+len(name))

	if strings.HasPrefix(text[rest:], "::") {
		afterColons := rest + 2
		newPrefix := append(append([]core.PathSegment{}, prefix...), core.PathSegment{Name: name})
		return expandUseTree(file, absOffset+afterColons, text[afterColons:], newPrefix, importScope)
	}

	localName := name
	namePoint := absOffset
	fullSegs := append(append([]core.PathSegment{}, prefix...), core.PathSegment{Name: name})
	if name == "self" {
		fullSegs = prefix
		if len(prefix) > 0 {
			localName = prefix[len(prefix)-1].Name
		}
	}

	if w := peekWord(text, rest); w == "as" {
		aliasStart := skipSpace(text, rest+len("as"))
		if alias, _ := readIdent(text, aliasStart); alias != "" {
			localName = alias
			namePoint = absOffset + aliasStart
		}
	}

	return []core.UseArrow{{
		Name:        localName,
		Target:      core.Path{Segments: fullSegs},
		ImportScope: importScope,
		Point:       namePoint,
	}}
}
