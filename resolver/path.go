package resolver

import "github.com/phildawes/racer/core"

// ResolvePath resolves a possibly `::`-joined path: a single-segment
// path delegates straight to resolve_name; a multi-segment path
// resolves its head exactly, in the Type namespace, then dispatches on
// what kind of thing the head named to search the last segment inside
// it.
func (r *Resolver) ResolvePath(path core.Path, origin core.Scope, stype core.SearchType, ns core.Namespace) []core.Match {
	if len(path.Segments) == 0 {
		return nil
	}
	if len(path.Segments) == 1 {
		return r.ResolveName(path.Segments[0].Name, origin, stype, ns)
	}

	head := core.Path{Global: path.Global, Segments: path.Segments[:len(path.Segments)-1]}
	last := path.Segments[len(path.Segments)-1]

	if r.Sess.Enter(head, origin) {
		return nil
	}
	ctxMatches := r.ResolvePath(head, origin, core.ExactMatch, core.Type)
	r.Sess.Exit(head, origin)

	var out []core.Match
	for _, ctx := range ctxMatches {
		stage := r.searchContainer(ctx, last.Name, stype, ns)
		out = append(out, stage...)
		if stype == core.ExactMatch && len(stage) > 0 {
			return out
		}
	}
	return out
}

// searchContainer dispatches on ctx's kind to find last.Name among its
// members.
func (r *Resolver) searchContainer(ctx core.Match, name string, stype core.SearchType, ns core.Namespace) []core.Match {
	switch ctx.Kind {
	case core.KindModule:
		file, bodyStart, bodyEnd, _, ok := r.moduleBody(ctx)
		if !ok {
			return nil
		}
		if bodyStart == 0 && bodyEnd == 0 {
			return r.searchWholeFile(file, name, stype, ns)
		}
		masked := r.load(file).MaskedString()
		return r.searchBlockStatements(file, masked, bodyStart, bodyEnd, name, stype, ns)

	case core.KindCrate:
		root, ok := r.Manifest.CrateRoot(ctx.Name, ctx.File)
		if !ok {
			return nil
		}
		return r.searchWholeFile(root, name, stype, ns)

	case core.KindStruct, core.KindEnum, core.KindType:
		return r.searchImplsForName(ctx, name, stype, ns)

	case core.KindTrait:
		return r.searchTraitBody(ctx, name, stype, ns)

	case core.KindTraitBound:
		return r.searchTraitBody(ctx, name, stype, ns)

	default:
		return nil
	}
}
