package catalog

import "github.com/okian/gobu/internal/domain/model"

type morphKey struct{ baby, other string }

// buildMorphs returns the symmetric morph adjacency and the hybrid set.
// For every exception (other=O, baby=B) on pet P, O also gets (other=P, baby=B).
// Entries are keyed by (baby, other) so the result never holds duplicates
// and is independent of which parent listed the exception.
func buildMorphs(pets []*model.Pet) (map[string][]model.MorphException, map[string]struct{}) {
	morphs := make(map[string][]model.MorphException, len(pets))
	seen := make(map[string]map[morphKey]struct{}, len(pets))

	add := func(owner string, m model.MorphException) {
		keys, ok := seen[owner]
		if !ok {
			keys = make(map[morphKey]struct{})
			seen[owner] = keys
		}
		k := morphKey{baby: m.Baby, other: m.Other}
		if _, dup := keys[k]; dup {
			return
		}
		keys[k] = struct{}{}
		morphs[owner] = append(morphs[owner], m)
	}

	for _, p := range pets {
		for _, m := range p.MorphingExceptions {
			add(p.InternalName, m)
			add(m.Other, model.MorphException{Other: p.InternalName, Baby: m.Baby})
		}
	}

	hybrids := make(map[string]struct{})
	for _, list := range morphs {
		for _, m := range list {
			hybrids[m.Baby] = struct{}{}
		}
	}
	return morphs, hybrids
}
