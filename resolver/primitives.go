package resolver

import "github.com/phildawes/racer/core"

// primitiveNames are Rust's built-in scalar types, always resolvable
// regardless of scope.
var primitiveNames = []string{
	"str", "bool", "char",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"f32", "f64",
}

// builtinMatch synthesizes a Match for a primitive type. Its File is a
// sentinel rather than a real path: primitives have no declaration
// site in user source, only (optionally) a doc entry in the
// standard-library source tree that prelude/crate-root resolution may
// layer on top.
func builtinMatch(name string) core.Match {
	return core.Match{
		Name: name,
		File: "<builtin>",
		Kind: core.KindType,
	}
}

func searchPrimitives(name string, stype core.SearchType, ns core.Namespace) []core.Match {
	if !ns.Admits(core.Type) {
		return nil
	}
	var out []core.Match
	for _, p := range primitiveNames {
		if matchesName(stype, name, p) {
			out = append(out, builtinMatch(p))
		}
	}
	return out
}

func matchesName(stype core.SearchType, needle, candidate string) bool {
	if stype == core.ExactMatch {
		return needle == candidate
	}
	return len(candidate) >= len(needle) && candidate[:len(needle)] == needle
}
