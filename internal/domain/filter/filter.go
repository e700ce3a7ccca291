// Package filter narrows pet lists by an ANDed set of optional predicates.
package filter

import (
	"strings"

	"github.com/okian/gobu/internal/domain/model"
)

// HybridChecker reports hybrid membership. *catalog.Catalog satisfies it.
type HybridChecker interface {
	IsHybrid(internalName string) bool
}

// PetFilter holds the optional predicates. A nil pointer or empty slice
// means no constraint.
type PetFilter struct {
	WowFactor *int
	Rarity    *model.Rarity
	School    *string
	Egg       *string
	Tradeable *bool
	Exclusive *bool
	Hybrid    *bool
	// Spells must each appear as a substring of at least one spell.
	Spells []string
	// Talents must each be in the pet's combined talent and ability pool.
	Talents []*model.Talent
}

// Empty reports whether no predicate is set.
func (f PetFilter) Empty() bool {
	return f.WowFactor == nil && f.Rarity == nil && f.School == nil && f.Egg == nil &&
		f.Tradeable == nil && f.Exclusive == nil && f.Hybrid == nil &&
		len(f.Spells) == 0 && len(f.Talents) == 0
}

// Apply returns the pets matching every predicate, in input order. An empty
// result is not an error.
func (f PetFilter) Apply(pets []*model.Pet, hybrids HybridChecker) []*model.Pet {
	out := make([]*model.Pet, 0, len(pets))
	for _, p := range pets {
		if f.Match(p, hybrids) {
			out = append(out, p)
		}
	}
	return out
}

// Match evaluates the filter against one pet.
func (f PetFilter) Match(p *model.Pet, hybrids HybridChecker) bool {
	if f.WowFactor != nil && p.WowFactor != *f.WowFactor {
		return false
	}
	if f.Rarity != nil && p.Rarity != *f.Rarity {
		return false
	}
	if f.School != nil && !strings.EqualFold(p.School, *f.School) {
		return false
	}
	if f.Egg != nil && !strings.EqualFold(p.Egg, *f.Egg) {
		return false
	}
	if f.Tradeable != nil && p.Tradeable != *f.Tradeable {
		return false
	}
	if f.Exclusive != nil && p.Exclusive != *f.Exclusive {
		return false
	}
	if f.Hybrid != nil && (hybrids != nil && hybrids.IsHybrid(p.InternalName)) != *f.Hybrid {
		return false
	}
	if len(f.Spells) > 0 && !hasSpells(p, f.Spells) {
		return false
	}
	if len(f.Talents) > 0 && !hasTalents(p, f.Talents) {
		return false
	}
	return true
}

func hasSpells(p *model.Pet, want []string) bool {
	spells := make([]string, len(p.Spells))
	for i, s := range p.Spells {
		spells[i] = strings.ToLower(s)
	}
	for _, w := range want {
		w = strings.ToLower(w)
		found := false
		for _, s := range spells {
			if strings.Contains(s, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasTalents(p *model.Pet, want []*model.Talent) bool {
	pool := make(map[string]struct{}, len(p.Talents)+len(p.Abilities))
	for _, t := range p.Talents {
		pool[strings.ToLower(t)] = struct{}{}
	}
	for _, a := range p.Abilities {
		pool[strings.ToLower(a)] = struct{}{}
	}
	for _, t := range want {
		if _, ok := pool[strings.ToLower(t.Name)]; !ok {
			return false
		}
	}
	return true
}
