package typeeval

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/syntax"
)

// evalPath evaluates a `::`-joined path expression:
// `resolve_path(p, scope, Exact, Both).first()`, then type_of_match.
func (e *Evaluator) evalPath(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	path := buildPath(syntax.Text(node, buf))
	if len(path.Segments) == 0 {
		return core.UnsupportedTy()
	}
	var matches []core.Match
	if len(path.Segments) == 1 {
		matches = e.R.ResolveName(path.Segments[0].Name, origin, core.ExactMatch, core.Both)
	} else {
		matches = e.R.ResolvePath(path, origin, core.ExactMatch, core.Both)
	}
	if len(matches) == 0 {
		return core.UnsupportedTy()
	}
	return e.TypeOfMatch(matches[0], origin)
}

// evalFieldExpression evaluates `r.f` (named field) and `r.N` (tuple
// index), substituting r's generic arguments into the result.
func (e *Evaluator) evalFieldExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	valueNode := syntax.ChildByFieldName(node, "value")
	fieldNode := syntax.ChildByFieldName(node, "field")
	if valueNode == nil || fieldNode == nil {
		return core.UnsupportedTy()
	}
	recv := e.evalNode(valueNode, buf, origin).Deref()

	if fieldNode.Type() == "integer_literal" {
		idx := tupleIndex(syntax.Text(fieldNode, buf))
		if idx < 0 || recv.Kind != core.TyTuple || idx >= len(recv.Elements) {
			return core.UnsupportedTy()
		}
		return recv.Elements[idx]
	}

	if recv.Kind != core.TyMatch || recv.Match == nil || recv.Match.Kind != core.KindStruct {
		return core.UnsupportedTy()
	}
	name := syntax.Text(fieldNode, buf)
	fields := e.R.StructFieldsOf(*recv.Match, name, core.ExactMatch)
	if len(fields) == 0 {
		return core.UnsupportedTy()
	}
	ty := e.TypeOfMatch(fields[0], origin)
	return e.substitute(ty, *recv.Match, origin)
}

func tupleIndex(text string) int {
	n := 0
	if text == "" {
		return -1
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// evalCallExpression evaluates `f(args)` and `r.m(args)`. A plain
// identifier/path function
// resolves to either a free function (return type) or a struct/variant
// constructor (the constructed type itself); a field_expression
// function is a method call through its receiver's impls.
func (e *Evaluator) evalCallExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	fn := syntax.ChildByFieldName(node, "function")
	if fn == nil {
		return core.UnsupportedTy()
	}

	if fn.Type() == "field_expression" {
		return e.evalMethodCall(fn, buf, origin)
	}

	callee := e.evalNode(fn, buf, origin)
	if callee.Kind != core.TyMatch || callee.Match == nil {
		return core.UnsupportedTy()
	}
	switch callee.Match.Kind {
	case core.KindStruct, core.KindEnumVariant:
		return callee
	case core.KindFunction:
		return e.typeOfFunctionReturn(*callee.Match, origin)
	default:
		return core.UnsupportedTy()
	}
}

func (e *Evaluator) evalMethodCall(fieldExpr *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	valueNode := syntax.ChildByFieldName(fieldExpr, "value")
	methodNode := syntax.ChildByFieldName(fieldExpr, "field")
	if valueNode == nil || methodNode == nil {
		return core.UnsupportedTy()
	}
	recv := e.evalNode(valueNode, buf, origin).Deref()
	if recv.Kind != core.TyMatch || recv.Match == nil {
		return core.UnsupportedTy()
	}
	name := syntax.Text(methodNode, buf)
	candidates := e.R.MethodsOf(*recv.Match, name, core.ExactMatch)
	for _, m := range candidates {
		if !e.R.IsMethod(m) {
			continue
		}
		ty := e.typeOfFunctionReturn(m, origin)
		return e.substitute(ty, *recv.Match, origin)
	}
	return core.UnsupportedTy()
}

// evalReferenceExpression evaluates `&e`/`&mut e`: wrap the inner Ty
// in RefPtr.
func (e *Evaluator) evalReferenceExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	valueNode := syntax.ChildByFieldName(node, "value")
	if valueNode == nil {
		return core.UnsupportedTy()
	}
	return core.RefPtrTy(e.evalNode(valueNode, buf, origin))
}

// evalTryExpression evaluates `e?`: only a nominal `Result<T, _>`
// context type unwraps to T; any other shape is unresolvable.
func (e *Evaluator) evalTryExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	valueNode := firstNamedChild(node)
	if valueNode == nil {
		return core.UnsupportedTy()
	}
	inner := e.evalNode(valueNode, buf, origin)
	if inner.Kind != core.TyMatch || inner.Match == nil || inner.Match.Name != "Result" {
		return core.UnsupportedTy()
	}
	if len(inner.Match.GenericTypes) != 2 {
		return core.UnsupportedTy()
	}
	return e.evalPathSearch(inner.Match.GenericTypes[0])
}

// evalTupleExpression evaluates `(a, b, …)`.
func (e *Evaluator) evalTupleExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	var elems []core.Ty
	for i := 0; i < int(node.NamedChildCount()); i++ {
		elems = append(elems, e.evalNode(node.NamedChild(i), buf, origin))
	}
	return core.TupleTy(elems)
}

// evalStructExpression evaluates `P { … }`: P resolved as a type
// Match is the result, field initializers are not evaluated.
func (e *Evaluator) evalStructExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	nameNode := syntax.ChildByFieldName(node, "name")
	if nameNode == nil {
		return core.UnsupportedTy()
	}
	path := buildPath(syntax.Text(nameNode, buf))
	if len(path.Segments) == 0 {
		return core.UnsupportedTy()
	}
	var matches []core.Match
	if len(path.Segments) == 1 {
		matches = e.R.ResolveName(path.Segments[0].Name, origin, core.ExactMatch, core.Type)
	} else {
		matches = e.R.ResolvePath(path, origin, core.ExactMatch, core.Type)
	}
	if len(matches) == 0 {
		return core.UnsupportedTy()
	}
	return core.MatchTy(matches[0])
}

// evalIfExpression evaluates `if`/`if let`: the first branch that
// yields a type wins, trying the consequence block before the else
// branch.
func (e *Evaluator) evalIfExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	if cons := syntax.ChildByFieldName(node, "consequence"); cons != nil {
		if ty := e.evalNode(cons, buf, origin); !ty.IsUnsupported() {
			return ty
		}
	}
	alt := syntax.ChildByFieldName(node, "alternative")
	if alt == nil {
		return core.UnsupportedTy()
	}
	// `else_clause` wraps either a nested if_expression or a block.
	if inner := firstNamedChild(alt); inner != nil {
		return e.evalNode(inner, buf, origin)
	}
	return e.evalNode(alt, buf, origin)
}

// evalMatchExpression evaluates `match`: the first arm whose body
// yields a type wins.
func (e *Evaluator) evalMatchExpression(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	body := syntax.ChildByFieldName(node, "body")
	if body == nil {
		return core.UnsupportedTy()
	}
	for _, arm := range syntax.ChildrenOfType(body, "match_arm") {
		valueNode := syntax.ChildByFieldName(arm, "value")
		if valueNode == nil {
			continue
		}
		if ty := e.evalNode(valueNode, buf, origin); !ty.IsUnsupported() {
			return ty
		}
	}
	return core.UnsupportedTy()
}

// evalBlockTail evaluates a block's tail expression: its last named
// child, if that child is not itself an `expression_statement` (a
// trailing `;` means the block evaluates to unit, which this engine
// treats as Unsupported).
func (e *Evaluator) evalBlockTail(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	n := int(node.NamedChildCount())
	if n == 0 {
		return core.UnsupportedTy()
	}
	last := node.NamedChild(n - 1)
	if last.Type() == "expression_statement" {
		return core.UnsupportedTy()
	}
	return e.evalNode(last, buf, origin)
}
