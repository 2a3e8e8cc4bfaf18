package query

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/resolver"
	"github.com/phildawes/racer/session"
	"github.com/phildawes/racer/typeeval"
)

type noopManifest struct{}

func (noopManifest) CrateRoot(string, string) (string, bool) { return "", false }

func newTestFacade() *Facade {
	r := resolver.New(session.New(), noopManifest{}, nil, nil)
	return New(r, typeeval.New(r), nil)
}

func writeSrc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// lineCol converts a byte offset into src to the 0-based (line,
// column) pair the facade's public API expects.
func lineCol(src string, point int) (line, column int) {
	line = strings.Count(src[:point], "\n")
	if nl := strings.LastIndexByte(src[:point], '\n'); nl != -1 {
		column = point - nl - 1
	} else {
		column = point
	}
	return line, column
}

func TestCompleteFromFileLocalLet(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	src := `fn main() { let apple = 35; let b = ap }`
	writeSrc(t, file, src)

	fac := newTestFacade()
	point := strings.Index(src, "ap }") + len("ap")
	line, col := lineCol(src, point)
	matches := fac.CompleteFromFile(file, line, col)

	var found bool
	for _, m := range matches {
		if m.Name == "apple" && m.Kind == core.KindLet {
			found = true
		}
	}
	assert.True(t, found, "expected a completion named apple of kind Let")
}

func TestFindDefinitionAcrossModule(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, filepath.Join(dir, "mymod.rs"), `pub fn myfn() {}`)
	mainFile := filepath.Join(dir, "main.rs")
	src := `mod mymod; use mymod::myfn; fn main(){ myfn() }`
	writeSrc(t, mainFile, src)

	fac := newTestFacade()
	point := strings.Index(src, "myfn()") + len("myfn")
	line, col := lineCol(src, point)
	def := fac.FindDefinition(mainFile, line, col)
	require.NotNil(t, def)
	assert.Equal(t, "myfn", def.Name)
	assert.Contains(t, def.File, "mymod.rs")
	assert.True(t, def.HasCoords)
}

func TestFindDefinitionCyclicUseTerminates(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, filepath.Join(dir, "a.rs"), `pub use b::X;`)
	writeSrc(t, filepath.Join(dir, "b.rs"), `pub use a::X;`)
	aFile := filepath.Join(dir, "a.rs")

	fac := newTestFacade()
	done := make(chan *core.Match, 1)
	go func() {
		raw, _ := os.ReadFile(aFile)
		src := string(raw)
		point := strings.Index(src, "X;")
		line, col := lineCol(src, point)
		done <- fac.FindDefinition(aFile, line, col)
	}()
	select {
	case def := <-done:
		assert.Nil(t, def)
	case <-busyWait():
		t.Fatal("find_definition did not terminate on cyclic use")
	}
}

func busyWait() <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		for i := 0; i < 20_000_000; i++ {
		}
		close(ch)
	}()
	return ch
}

func TestCompleteFromFileCursorAtEOF(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	src := `fn main() { let x = 1; }`
	writeSrc(t, file, src)

	fac := newTestFacade()
	matches := fac.CompleteFromFile(file, 0, len(src)+50)
	assert.NotNil(t, matches) // clamped, not a panic
}

func TestCompleteFromFileCursorAtZero(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	src := `fn main() {}`
	writeSrc(t, file, src)

	fac := newTestFacade()
	matches := fac.CompleteFromFile(file, 0, 0)

	// An empty prefix is free completion of every visible name.
	var found bool
	for _, m := range matches {
		if m.Name == "main" && m.Kind == core.KindFunction {
			found = true
		}
	}
	assert.True(t, found, "expected the empty-prefix completions to include fn main")
}
