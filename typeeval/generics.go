package typeeval

import (
	"strings"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/matchers"
)

// genericParamNames parses the `<T, U: Bound, const N: usize>` clause
// immediately after a type's name out of its Context excerpt, so
// substitute can later match a usage site's generic arguments against
// the type's own parameter names.
func genericParamNames(context string) []string {
	open := matchers.FindTopLevelByte(context, '<')
	if open == -1 {
		return nil
	}
	closeIdx := matchDelim(context, open, '<', '>')
	if closeIdx == -1 {
		return nil
	}
	var names []string
	for _, seg := range matchers.SplitTopLevel(context[open+1:closeIdx], ',') {
		text := strings.TrimSpace(seg.Text)
		text = strings.TrimPrefix(text, "const ")
		text = strings.TrimPrefix(text, "'")
		if text == "" {
			continue
		}
		name := text
		if i := strings.IndexAny(text, ":= "); i != -1 {
			name = text[:i]
		}
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// substitute replaces, throughout ty, any TyMatch, or unresolved
// single-segment TyPathSearch, whose name is one of
// ctx's declared generic parameters with the corresponding concrete
// argument ctx was resolved with at its usage site — field and return
// types that mention a receiver's generic parameters resolve to the
// receiver's concrete argument. origin is unused by
// the concrete-argument lookup itself (ctx.GenericTypes already carry
// their own defining Scope) but is threaded through recursive calls
// for symmetry with the rest of the Evaluator's API.
func (e *Evaluator) substitute(ty core.Ty, ctx core.Match, origin core.Scope) core.Ty {
	if len(ctx.GenericArgs) == 0 || len(ctx.GenericTypes) == 0 {
		return ty
	}
	switch ty.Kind {
	case core.TyMatch:
		if ty.Match == nil {
			return ty
		}
		for i, param := range ctx.GenericArgs {
			if i >= len(ctx.GenericTypes) {
				break
			}
			if ty.Match.Name == param && len(ty.Match.GenericArgs) == 0 {
				return e.evalPathSearch(ctx.GenericTypes[i])
			}
		}
		return ty
	case core.TyPathSearch:
		if len(ty.PathSearch.Path.Segments) != 1 {
			return ty
		}
		for i, param := range ctx.GenericArgs {
			if i >= len(ctx.GenericTypes) {
				break
			}
			if ty.PathSearch.Path.Segments[0].Name == param {
				return e.evalPathSearch(ctx.GenericTypes[i])
			}
		}
		return ty
	case core.TyRefPtr:
		if ty.Inner == nil {
			return ty
		}
		inner := e.substitute(*ty.Inner, ctx, origin)
		return core.RefPtrTy(inner)
	case core.TyTuple:
		elems := make([]core.Ty, len(ty.Elements))
		for i, el := range ty.Elements {
			elems[i] = e.substitute(el, ctx, origin)
		}
		return core.TupleTy(elems)
	case core.TyVec:
		if ty.Elem == nil {
			return ty
		}
		return core.VecTy(e.substitute(*ty.Elem, ctx, origin))
	case core.TyFixedLengthVec:
		if ty.Elem == nil {
			return ty
		}
		return core.FixedLengthVecTy(e.substitute(*ty.Elem, ctx, origin), ty.LengthExpr)
	default:
		return ty
	}
}
