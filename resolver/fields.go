package resolver

import (
	"github.com/phildawes/racer/chunker"
	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
)

// StructFieldsOf enumerates the named fields of structMatch (a
// core.KindStruct Match) whose name satisfies stype, for the Type
// Evaluator's field-expression case: looking up field f on the
// struct/enum-variant type. Enum-variant field access is not
// implemented here — see DESIGN.md.
func (r *Resolver) StructFieldsOf(structMatch core.Match, name string, stype core.SearchType) []core.Match {
	if structMatch.Kind != core.KindStruct {
		return nil
	}
	masked := r.load(structMatch.File).MaskedString()
	for _, stmt := range chunker.Statements(masked) {
		if structMatch.Point < stmt.Start || structMatch.Point >= stmt.End {
			continue
		}
		blob := masked[stmt.Start:stmt.End]
		fields := matchers.StructFields(structMatch.File, stmt.Start, blob)
		return filterNamespaceAndName(fields, name, stype, core.Value)
	}
	return nil
}
