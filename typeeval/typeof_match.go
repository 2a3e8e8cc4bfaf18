package typeeval

import (
	"strings"

	"github.com/phildawes/racer/chunker"
	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
	"github.com/phildawes/racer/scopes"
)

// TypeOfMatch derives a resolved Match's Ty by dispatching on Kind.
// Struct/enum/trait/type
// names are their own nominal type; lets, fn-args, and fields defer to
// their declared annotation (or, absent one, the initializer
// expression); functions yield their return type only when called
// directly as a value (evalCallExpression handles that case itself).
func (e *Evaluator) TypeOfMatch(m core.Match, origin core.Scope) core.Ty {
	switch m.Kind {
	case core.KindStruct, core.KindEnum, core.KindEnumVariant, core.KindTrait, core.KindTraitBound, core.KindType:
		return core.MatchTy(m)
	case core.KindLet, core.KindFnArg:
		return e.typeOfBinding(m, origin)
	case core.KindStructField:
		return e.typeOfFieldDecl(m, origin)
	case core.KindFunction:
		return core.MatchTy(m)
	default:
		return core.UnsupportedTy()
	}
}

// typeOfBinding resolves a KindLet/KindFnArg Match's type: its own
// annotation if one was written, else (for a let) the initializer
// expression's inferred type. A binding with no annotation and no
// resolvable initializer is Unsupported.
func (e *Evaluator) typeOfBinding(m core.Match, origin core.Scope) core.Ty {
	masked := e.R.Sess.Index.Load(m.File).MaskedString()

	if stmtStart, stmtEnd, pat, patStart, ok := e.enclosingLetStatement(masked, m.Point); ok {
		blob := masked[stmtStart:stmtEnd]
		if typeText, typeStart, tok := matchers.LetTypeAnnotation(stmtStart, blob); tok {
			ty := e.parseTypeExpr(typeText, core.Scope{File: m.File, Point: typeStart})
			return e.bindingPathInto(ty, pat, patStart, m.Point)
		}
		if eq := matchers.FindTopLevelByte(blob, '='); eq != -1 {
			exprEnd := len(blob)
			if semi := strings.LastIndexByte(blob, ';'); semi != -1 && semi > eq {
				exprEnd = semi
			}
			expr := strings.TrimSpace(blob[eq+1 : exprEnd])
			ty := e.Eval(expr, core.Scope{File: m.File, Point: stmtStart + eq + 1})
			return e.bindingPathInto(ty, pat, patStart, m.Point)
		}
		return core.UnsupportedTy()
	}

	if paramsInner, paramsStart, _, _, ok := e.enclosingFnParamList(masked, m.Point); ok {
		for _, seg := range matchers.SplitTopLevel(paramsInner, ',') {
			segStart := paramsStart + seg.Start
			if m.Point < segStart || m.Point >= segStart+len(seg.Text) {
				continue
			}
			colon := matchers.FindTopLevelByte(seg.Text, ':')
			if colon == -1 {
				return core.UnsupportedTy()
			}
			typeText := seg.Text[colon+1:]
			return e.parseTypeExpr(typeText, core.Scope{File: m.File, Point: segStart + colon + 1})
		}
	}
	return core.UnsupportedTy()
}

// bindingPathInto walks ty according to the destructuring path of the
// binding named at point within pattern pat: a bare identifier pattern
// has an empty path and ty is returned unchanged.
func (e *Evaluator) bindingPathInto(ty core.Ty, pat string, patStart, point int) core.Ty {
	for _, b := range matchers.PatternBindings(patStart, pat) {
		if b.Point != point {
			continue
		}
		return e.walkPatternPath(ty, b.Path)
	}
	return ty
}

func (e *Evaluator) walkPatternPath(ty core.Ty, path []core.PatternStep) core.Ty {
	for _, step := range path {
		ty = ty.Deref()
		if step.Field != "" {
			if ty.Kind != core.TyMatch || ty.Match == nil {
				return core.UnsupportedTy()
			}
			fields := e.R.StructFieldsOf(*ty.Match, step.Field, core.ExactMatch)
			if len(fields) == 0 {
				return core.UnsupportedTy()
			}
			ty = e.substitute(e.TypeOfMatch(fields[0], core.Scope{File: ty.Match.File, Point: ty.Match.Point}), *ty.Match, core.Scope{})
			continue
		}
		if ty.Kind != core.TyTuple || step.Index >= len(ty.Elements) {
			return core.UnsupportedTy()
		}
		ty = ty.Elements[step.Index]
	}
	return ty
}

// enclosingLetStatement locates the statement containing point inside
// the innermost enclosing block and, if it is a `let`, returns its
// byte range plus its pattern text and the pattern's absolute start —
// a let's own name sits inside its own statement's range.
func (e *Evaluator) enclosingLetStatement(masked string, point int) (stmtStart, stmtEnd int, pat string, patStart int, ok bool) {
	blocks := scopes.EnclosingBlocks(masked, point)
	if len(blocks) == 0 {
		return 0, 0, "", 0, false
	}
	body := blocks[0]
	for _, stmt := range chunker.Statements(masked[body.BodyStart:body.BodyEnd]) {
		absStart := body.BodyStart + stmt.Start
		absEnd := body.BodyStart + stmt.End
		if point < absStart || point >= absEnd {
			continue
		}
		blob := masked[absStart:absEnd]
		p, pStart, pok := matchers.LetPattern(blob)
		if !pok {
			return 0, 0, "", 0, false
		}
		return absStart, absEnd, p, absStart + pStart, true
	}
	return 0, 0, "", 0, false
}

// enclosingFnParamList locates the parameter list of the function
// whose signature encloses point — used when point names a fn-arg,
// which sits before its function body's own enclosing-block range.
func (e *Evaluator) enclosingFnParamList(masked string, point int) (paramsInner string, paramsStart int, returnType string, returnTypeStart int, ok bool) {
	// The signature precedes its body, so take the block that opens
	// after point rather than the blocks enclosing it.
	open := strings.IndexByte(masked[point:], '{')
	if open == -1 {
		return "", 0, "", 0, false
	}
	bodyStart := point + open + 1
	blocks := []scopes.Block{{BodyStart: bodyStart, BodyEnd: scopes.ScopeEnd(masked, bodyStart)}}
	for _, ranges := range scopes.EnclosingFnParamLists(masked, blocks) {
		if point < ranges.Start || point >= ranges.End {
			continue
		}
		stmtStart := scopes.FindStmtStart(masked, ranges.Start)
		sigBlob := masked[stmtStart:ranges.End]
		pInner, pStart, rType, rStart, sok := matchers.FnSignature(sigBlob)
		if !sok {
			return "", 0, "", 0, false
		}
		return pInner, stmtStart + pStart, rType, stmtStart + rStart, true
	}
	return "", 0, "", 0, false
}

// typeOfFieldDecl parses a struct field's declared type out of its
// Context excerpt (the field's own `name: Type` text, stashed by
// matchers.StructFields).
func (e *Evaluator) typeOfFieldDecl(m core.Match, origin core.Scope) core.Ty {
	colon := matchers.FindTopLevelByte(m.Context, ':')
	if colon == -1 {
		return core.UnsupportedTy()
	}
	return e.parseTypeExpr(m.Context[colon+1:], core.Scope{File: m.File, Point: m.Point})
}

// typeOfFunctionReturn resolves fnMatch's `-> T` clause, parsed out of
// its Context excerpt the same way typeOfFieldDecl reads a field's
// annotation. A function with no return type is the unit type, which
// this engine reports as Unsupported.
func (e *Evaluator) typeOfFunctionReturn(fnMatch core.Match, origin core.Scope) core.Ty {
	_, _, returnType, returnTypeStart, ok := matchers.FnSignature(fnMatch.Context)
	if !ok || returnType == "" {
		return core.UnsupportedTy()
	}
	return e.parseTypeExpr(returnType, core.Scope{File: fnMatch.File, Point: fnMatch.Point + returnTypeStart})
}

// evalPathSearch lazily resolves a Match's deferred generic-argument
// PathSearch: generic arguments are stored unresolved until something
// actually needs them, e.g. unwrapping `Result<T, E>`'s T.
func (e *Evaluator) evalPathSearch(ps core.PathSearch) core.Ty {
	var matches []core.Match
	if len(ps.Path.Segments) == 1 {
		matches = e.R.ResolveName(ps.Path.Segments[0].Name, ps.Scope, core.ExactMatch, core.Type)
	} else {
		matches = e.R.ResolvePath(ps.Path, ps.Scope, core.ExactMatch, core.Type)
	}
	if len(matches) == 0 {
		return core.PathSearchTy(ps)
	}
	return core.MatchTy(matches[0])
}
