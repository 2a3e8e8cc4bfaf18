// Package typeeval derives the type of an expression fragment given
// the scope it appears in, by walking the expression's tree-sitter
// parse tree one shape at a time and consulting the Name Resolver to
// look up whatever a sub-expression names. Grounded on ast.rs's
// typeinf module, adapted onto this engine's on-demand,
// no-persistent-AST parsing (syntax.Service.ParseExpr).
package typeeval

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/resolver"
	"github.com/phildawes/racer/syntax"
)

// Evaluator ties a Resolver to the expression-shape dispatch table
// below.
type Evaluator struct {
	R *resolver.Resolver
}

// New builds an Evaluator over r.
func New(r *resolver.Resolver) *Evaluator {
	return &Evaluator{R: r}
}

// Eval derives the Ty of expr in origin's scope: expr is parsed on
// demand (no AST is retained across calls) and walked node-by-node. A
// parse failure or an expression shape outside the table below yields
// Ty{Kind: Unsupported}, never an error. A panic is not recovered
// here; the query facade recovers it and reports no result.
func (e *Evaluator) Eval(expr string, origin core.Scope) core.Ty {
	node, buf, err := e.R.Sess.Syntax.ParseExpr(expr)
	if err != nil || node == nil || syntax.HasError(node) {
		return core.UnsupportedTy()
	}
	return e.evalNode(node, buf, origin)
}

func (e *Evaluator) evalNode(node *sitter.Node, buf []byte, origin core.Scope) core.Ty {
	if node == nil {
		return core.UnsupportedTy()
	}
	switch node.Type() {
	case "identifier":
		return e.evalIdentifier(syntax.Text(node, buf), origin)
	case "scoped_identifier", "scoped_type_identifier":
		return e.evalPath(node, buf, origin)
	case "field_expression":
		return e.evalFieldExpression(node, buf, origin)
	case "call_expression":
		return e.evalCallExpression(node, buf, origin)
	case "reference_expression":
		return e.evalReferenceExpression(node, buf, origin)
	case "unary_expression":
		return e.evalPassThroughChild(node, buf, origin, "argument")
	case "try_expression":
		return e.evalTryExpression(node, buf, origin)
	case "tuple_expression":
		return e.evalTupleExpression(node, buf, origin)
	case "parenthesized_expression":
		return e.evalPassThroughChild(node, buf, origin, "")
	case "struct_expression":
		return e.evalStructExpression(node, buf, origin)
	case "if_expression":
		return e.evalIfExpression(node, buf, origin)
	case "match_expression":
		return e.evalMatchExpression(node, buf, origin)
	case "block":
		return e.evalBlockTail(node, buf, origin)
	case "string_literal", "raw_string_literal":
		return e.evalBuiltinType("str", origin)
	default:
		return core.UnsupportedTy()
	}
}

// evalIdentifier resolves a bare name in Both namespaces — an
// identifier expression can denote a value binding or a unit-struct/
// const, so both are admitted and the first (closest) wins.
func (e *Evaluator) evalIdentifier(name string, origin core.Scope) core.Ty {
	matches := e.R.ResolveName(name, origin, core.ExactMatch, core.Both)
	if len(matches) == 0 {
		return core.UnsupportedTy()
	}
	return e.TypeOfMatch(matches[0], origin)
}

func (e *Evaluator) evalBuiltinType(name string, origin core.Scope) core.Ty {
	matches := e.R.ResolveName(name, origin, core.ExactMatch, core.Type)
	if len(matches) == 0 {
		return core.UnsupportedTy()
	}
	return core.MatchTy(matches[0])
}

// evalPassThroughChild evaluates the named field child (or, if
// fieldName is "", the first named child) and returns its Ty
// unchanged — `*e`, `!e`, `-e`, and `(e)` are all transparent for type
// purposes.
func (e *Evaluator) evalPassThroughChild(node *sitter.Node, buf []byte, origin core.Scope, fieldName string) core.Ty {
	var child *sitter.Node
	if fieldName != "" {
		child = syntax.ChildByFieldName(node, fieldName)
	}
	if child == nil {
		child = firstNamedChild(node)
	}
	if child == nil {
		return core.UnsupportedTy()
	}
	return e.evalNode(child, buf, origin)
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		return node.NamedChild(i)
	}
	return nil
}
