package syntax

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestParseExprCallExpression(t *testing.T) {
	s := New()
	node, buf, err := s.ParseExpr("foo(1, 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type() != "call_expression" {
		t.Errorf("expected call_expression, got %s (%s)", node.Type(), Text(node, buf))
	}
}

func TestParseExprFieldExpression(t *testing.T) {
	s := New()
	node, buf, err := s.ParseExpr("self.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type() != "field_expression" {
		t.Errorf("expected field_expression, got %s (%s)", node.Type(), Text(node, buf))
	}
}

func TestParseStatementLetDeclaration(t *testing.T) {
	s := New()
	node, buf, err := s.ParseStatement("let x = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type() != "let_declaration" {
		t.Errorf("expected let_declaration, got %s (%s)", node.Type(), Text(node, buf))
	}
}

func TestHasErrorOnMalformedSnippet(t *testing.T) {
	s := New()
	root, _, err := s.ParseFile([]byte("fn f( { garbage ### }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !HasError(root) {
		t.Error("expected malformed source to be reported as having a parse error")
	}
}

func TestWalkVisitsEveryDescendant(t *testing.T) {
	s := New()
	node, _, err := s.ParseExpr("foo(1, 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	Walk(node, func(n *sitter.Node) bool {
		count++
		return true
	})
	if count < 3 {
		t.Errorf("expected call_expression subtree to have at least 3 nodes, got %d", count)
	}
}
