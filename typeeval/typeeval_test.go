package typeeval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/resolver"
	"github.com/phildawes/racer/session"
)

type noopManifest struct{}

func (noopManifest) CrateRoot(string, string) (string, bool) { return "", false }

func newTestEvaluator() (*Evaluator, *resolver.Resolver) {
	r := resolver.New(session.New(), noopManifest{}, nil, nil)
	return New(r), r
}

func writeSrc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTypeOfMatchFieldViaLiteral(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	writeSrc(t, file, `
struct Point {
    x: i32,
    y: i32,
}

fn main() {
    let p = Point { x: 1, y: 2 };
    p.x
}
`)
	ev, _ := newTestEvaluator()
	src := readFile(t, file)
	point := indexOf(src, "p.x")
	require.GreaterOrEqual(t, point, 0)
	origin := core.Scope{File: file, Point: point}
	ty := ev.Eval("p.x", origin)
	require.Equal(t, core.TyMatch, ty.Kind)
	assert.Equal(t, "i32", ty.Match.Name)
}

func TestTypeOfMatchChainedMethodOnGeneric(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	writeSrc(t, file, `
struct Wrapper<T> {
    inner: T,
}

struct Blah;

impl<T> Wrapper<T> {
    fn get(&self) -> T {
        self.inner
    }
}

fn main() {
    let w: Wrapper<Blah> = make();
    w.get()
}
`)
	ev, _ := newTestEvaluator()
	src := readFile(t, file)
	point := indexOf(src, "w.get()")
	require.GreaterOrEqual(t, point, 0)
	origin := core.Scope{File: file, Point: point}
	ty := ev.Eval("w.get()", origin)
	require.Equal(t, core.TyMatch, ty.Kind)
	assert.Equal(t, "Blah", ty.Match.Name)
}

func TestTypeOfMatchTupleDestructureTyped(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	writeSrc(t, file, `
struct Blah;

fn main() {
    let (a, b): (u32, Blah) = pair();
    b
}
`)
	ev, _ := newTestEvaluator()
	src := readFile(t, file)
	bPoint := indexOf(src, "b\n")
	require.GreaterOrEqual(t, bPoint, 0)
	origin := core.Scope{File: file, Point: bPoint}
	ty := ev.Eval("b", origin)
	require.Equal(t, core.TyMatch, ty.Kind)
	assert.Equal(t, "Blah", ty.Match.Name)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
