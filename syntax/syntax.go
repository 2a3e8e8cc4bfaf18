// Package syntax is the Syntax Service: a thin wrapper over
// github.com/smacker/go-tree-sitter's Rust grammar that parses just
// enough of a snippet to answer one shape question, then discards the
// tree, rather than holding a whole-file AST in memory. Grounded on
// api2spec-api2spec's internal/parser/rust.go, which shows the same
// parser.ParseCtx / node.Content / walkNodes idioms; this package
// narrows that to snippet-sized, throwaway parses instead of
// whole-file extraction.
package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Service holds one tree-sitter parser configured for Rust. It is not
// safe for concurrent use by multiple goroutines — callers that need
// concurrent parsing should use one Service per goroutine, or guard it
// with their own lock (session.Session does the latter).
type Service struct {
	parser *sitter.Parser
}

// New returns a Service ready to parse Rust source.
func New() *Service {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Service{parser: p}
}

// ParseFile parses a whole source file and returns its root node along
// with the exact byte buffer node offsets are relative to. Parse
// errors in the input do not surface as a Go error: tree-sitter's
// error-recovery always yields a tree, with malformed regions marked
// by ERROR nodes that callers should skip rather than fail on.
func (s *Service) ParseFile(src []byte) (*sitter.Node, []byte, error) {
	tree, err := s.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("syntax: parse file: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, nil, fmt.Errorf("syntax: parse file: no root node")
	}
	return root, src, nil
}

// ParseStatement parses a single statement or item fragment (e.g. one
// range yielded by chunker.Statements) by wrapping it in a throwaway
// function body so Rust's grammar, which only accepts a full item list
// at the top level, accepts it as a block statement. The returned node
// is the first statement inside that wrapper block, and buf is the
// wrapped buffer all byte offsets on the returned node are relative
// to — NOT the caller's original src.
func (s *Service) ParseStatement(stmt string) (*sitter.Node, []byte, error) {
	buf := []byte(wrapperPrefix + stmt + wrapperSuffix)
	root, _, err := s.ParseFile(buf)
	if err != nil {
		return nil, nil, err
	}
	block := FindChildOfType(FindChildOfType(root, "function_item"), "block")
	if block == nil {
		return nil, nil, fmt.Errorf("syntax: parse statement: wrapper block not found")
	}
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() != "ERROR" {
			return child, buf, nil
		}
	}
	return block, buf, nil
}

// ParseExpr parses a bare expression fragment the same way
// ParseStatement does, but unwraps one extra layer since an expression
// statement node wraps the expression node itself.
func (s *Service) ParseExpr(expr string) (*sitter.Node, []byte, error) {
	stmtNode, buf, err := s.ParseStatement(expr + ";")
	if err != nil {
		return nil, nil, err
	}
	if stmtNode.Type() == "expression_statement" && stmtNode.NamedChildCount() > 0 {
		return stmtNode.NamedChild(0), buf, nil
	}
	return stmtNode, buf, nil
}

const (
	wrapperPrefix = "fn __racer_snippet__() {\n"
	wrapperSuffix = "\n}"
)

// Text returns the source text spanned by node, taken out of buf (the
// buffer returned alongside node by whichever Parse* call produced it).
func Text(node *sitter.Node, buf []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(buf)
}

// Walk performs a preorder traversal of node's subtree, calling visit
// on every node. Returning false from visit stops descent into that
// node's children but does not stop the overall walk.
func Walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), visit)
	}
}

// ChildByFieldName returns node's child bound to fieldName in the Rust
// grammar (e.g. "function", "arguments", "value", "field"), or nil.
func ChildByFieldName(node *sitter.Node, fieldName string) *sitter.Node {
	if node == nil {
		return nil
	}
	return node.ChildByFieldName(fieldName)
}

// FindChildOfType returns the first direct child of node with the
// given tree-sitter node type, or nil.
func FindChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// ChildrenOfType returns every direct child of node with the given
// tree-sitter node type, in order.
func ChildrenOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == nodeType {
			out = append(out, child)
		}
	}
	return out
}

// FindDescendant returns the first node in node's subtree (node
// itself included) with the given type, in preorder.
func FindDescendant(node *sitter.Node, nodeType string) *sitter.Node {
	var found *sitter.Node
	Walk(node, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == nodeType {
			found = n
			return false
		}
		return true
	})
	return found
}

// HasError reports whether node's subtree contains a tree-sitter ERROR
// node, i.e. whether the fragment failed to parse cleanly. The Type
// Evaluator uses this to report Unsupported rather than trust a
// malformed parse: a parse error degrades to no match, never an abort.
func HasError(node *sitter.Node) bool {
	if node == nil {
		return true
	}
	return node.HasError()
}
