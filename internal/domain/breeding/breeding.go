// Package breeding computes hatch chances and hybrid offspring.
package breeding

import (
	"math"
	"sort"

	"github.com/okian/gobu/internal/domain/model"
)

// Index is the read-only view breeding needs. *catalog.Catalog satisfies it.
type Index interface {
	Morphs(internalName string) []model.MorphException
	PetByInternalName(name string) (*model.Pet, bool)
}

// HatchChance is the percentage chance that a hatch between wow factors a
// and b yields the a-side pet, rounded to two decimals. It is asymmetric:
// call it with swapped operands for the other side.
func HatchChance(a, b int) float64 {
	n := float64(11-a) / float64(22-(a+b))
	return math.Round(n*100*100) / 100
}

// Side is one parent's outcome in a hatch.
type Side struct {
	Pet    *model.Pet
	Chance float64
}

// Result is the outcome of hatching two pets.
type Result struct {
	First  Side
	Second Side
	// Hybrids holds the possible morph offspring, one per display name,
	// in first-seen order.
	Hybrids []*model.Pet
}

// Hatch computes both directions and the hybrid offspring of a and b.
func Hatch(idx Index, a, b *model.Pet) Result {
	return Result{
		First:   Side{Pet: a, Chance: HatchChance(a.WowFactor, b.WowFactor)},
		Second:  Side{Pet: b, Chance: HatchChance(b.WowFactor, a.WowFactor)},
		Hybrids: offspring(idx, a, b),
	}
}

func offspring(idx Index, a, b *model.Pet) []*model.Pet {
	var out []*model.Pet
	seen := make(map[string]struct{})
	for _, m := range idx.Morphs(a.InternalName) {
		if m.Other != b.InternalName {
			continue
		}
		baby, ok := idx.PetByInternalName(m.Baby)
		if !ok {
			continue
		}
		if _, dup := seen[baby.Name]; dup {
			continue
		}
		seen[baby.Name] = struct{}{}
		out = append(out, baby)
	}
	return out
}

// Pair is one hybrid a pet can produce and the partner it needs.
type Pair struct {
	Baby  *model.Pet
	Other *model.Pet
}

// Hybrids lists every (baby, partner) pair for pet, one per pair of display
// names, sorted by baby name then partner name.
func Hybrids(idx Index, pet *model.Pet) []Pair {
	type names struct{ baby, other string }
	seen := make(map[names]struct{})
	var out []Pair
	for _, m := range idx.Morphs(pet.InternalName) {
		baby, ok := idx.PetByInternalName(m.Baby)
		if !ok {
			continue
		}
		other, ok := idx.PetByInternalName(m.Other)
		if !ok {
			continue
		}
		k := names{baby.Name, other.Name}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, Pair{Baby: baby, Other: other})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Baby.Name != out[j].Baby.Name {
			return out[i].Baby.Name < out[j].Baby.Name
		}
		return out[i].Other.Name < out[j].Other.Name
	})
	return out
}
