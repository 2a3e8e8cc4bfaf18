package scopes

import "testing"

func TestFindStmtStartAfterSemicolon(t *testing.T) {
	src := "let a = 1; let b = 2;"
	start := FindStmtStart(src, len("let a = 1; let b = "))
	if src[start:] != " let b = 2;" {
		t.Errorf("expected statement start just after ';', got %q", src[start:])
	}
}

func TestFindStmtStartAfterBrace(t *testing.T) {
	src := "fn foo() {\n    let x = 1;\n}"
	point := len("fn foo() {\n    let x")
	start := FindStmtStart(src, point)
	if src[start:point] != "\n    let x" {
		t.Errorf("unexpected stmt start: %q", src[start:point])
	}
}

func TestScopeEndMatchesNestedBraces(t *testing.T) {
	src := "{ if true { a(); } b(); }"
	end := ScopeEnd(src, 1)
	if src[1:end] != " if true { a(); } b(); " {
		t.Errorf("unexpected scope body: %q", src[1:end])
	}
	if src[end] != '}' {
		t.Errorf("expected to land on closing brace, got %q", src[end])
	}
}

func TestEnclosingBlocksNested(t *testing.T) {
	src := "fn foo() {\n    if true {\n        bar();\n    }\n}"
	point := len("fn foo() {\n    if true {\n        bar")
	blocks := EnclosingBlocks(src, point)
	if len(blocks) != 3 {
		t.Fatalf("expected 2 nested blocks plus file scope, got %d: %v", len(blocks), blocks)
	}
	if src[blocks[0].BodyStart:blocks[0].BodyEnd] != "\n        bar();\n    " {
		t.Errorf("unexpected innermost block: %q", src[blocks[0].BodyStart:blocks[0].BodyEnd])
	}
	last := blocks[len(blocks)-1]
	if last.BodyStart != 0 || last.BodyEnd != len(src) {
		t.Errorf("expected outermost block to span the whole file, got %v", last)
	}
}

func TestClosureValidArgScope(t *testing.T) {
	sig := "move |x: i32, y: i32| "
	left, right, ok := ClosureArgScope(sig)
	if !ok {
		t.Fatal("expected closure arg scope to be recognized")
	}
	if sig[left:right+1] != "|x: i32, y: i32|" {
		t.Errorf("unexpected pipe span: %q", sig[left:right+1])
	}
}

func TestClosureValidArgScopeRejectsBitwiseOr(t *testing.T) {
	sig := "let mask = a | b; "
	_, _, ok := ClosureArgScope(sig)
	if ok {
		t.Error("expected bitwise-or expression to be rejected as a closure signature")
	}
}

func TestEnclosingFnParamLists(t *testing.T) {
	src := "fn foo(a: i32, b: i32) {\n    a + b\n}"
	point := len("fn foo(a: i32, b: i32) {\n    a")
	blocks := EnclosingBlocks(src, point)
	params := EnclosingFnParamLists(src, blocks[:1])
	if len(params) != 1 {
		t.Fatalf("expected 1 param list, got %d", len(params))
	}
	if src[params[0].Start:params[0].End] != "(a: i32, b: i32)" {
		t.Errorf("unexpected param list: %q", src[params[0].Start:params[0].End])
	}
}
