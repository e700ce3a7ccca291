// Package types contains the JSON shapes served by the HTTP API.
package types

import (
	"github.com/okian/gobu/internal/domain/breeding"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/internal/domain/priority"
)

// PetRef names a pet without its details.
type PetRef struct {
	Name         string `json:"name"`
	InternalName string `json:"internal_name"`
	URL          string `json:"url"`
}

// Pet is the full view of one pet.
type Pet struct {
	PetRef
	WowFactor  int      `json:"wow_factor"`
	Exclusive  bool     `json:"exclusive"`
	Rarity     string   `json:"rarity"`
	School     string   `json:"school"`
	SchoolOnly bool     `json:"school_only"`
	Egg        string   `json:"egg"`
	Talents    []string `json:"talents"`
	Abilities  []string `json:"abilities"`
	Tradeable  bool     `json:"tradeable"`
	Spells     []string `json:"spells"`
	Hybrid     bool     `json:"hybrid"`
}

// Talent is the full view of one talent. Lock is empty for talents
// without a locked/unlocked variant.
type Talent struct {
	Name             string `json:"name"`
	InternalName     string `json:"internal_name"`
	URL              string `json:"url"`
	Priority         int    `json:"priority"`
	AbsolutePriority int    `json:"absolute_priority"`
	Rarity           string `json:"rarity"`
	Lock             string `json:"lock,omitempty"`
}

// TalentSearch is the result of a priority-range query.
type TalentSearch struct {
	Format  string   `json:"format"`
	Found   int      `json:"found"`
	Talents []Talent `json:"talents"`
}

// HatchSide is one parent's chance.
type HatchSide struct {
	Pet    PetRef  `json:"pet"`
	Chance float64 `json:"chance"`
}

// Hatch is the outcome of hatching two pets.
type Hatch struct {
	First   HatchSide `json:"first"`
	Second  HatchSide `json:"second"`
	Hybrids []PetRef  `json:"hybrids"`
}

// Hybrid is one offspring a pet can produce with a partner.
type Hybrid struct {
	Baby  PetRef `json:"baby"`
	Other PetRef `json:"other"`
}

// Hybrids lists a pet's hybrid offspring.
type Hybrids struct {
	Pet     PetRef   `json:"pet"`
	Hybrids []Hybrid `json:"hybrids"`
}

// RefOf builds a PetRef.
func RefOf(p *model.Pet) PetRef {
	return PetRef{Name: p.Name, InternalName: p.InternalName, URL: model.PetURL(p.Name)}
}

// PetOf builds the full view of p.
func PetOf(p *model.Pet, hybrid bool) Pet {
	return Pet{
		PetRef:     RefOf(p),
		WowFactor:  p.WowFactor,
		Exclusive:  p.Exclusive,
		Rarity:     p.Rarity.String(),
		School:     p.School,
		SchoolOnly: p.SchoolOnly,
		Egg:        p.Egg,
		Talents:    nonNil(p.Talents),
		Abilities:  nonNil(p.Abilities),
		Tradeable:  p.Tradeable,
		Spells:     nonNil(p.Spells),
		Hybrid:     hybrid,
	}
}

// TalentOf builds the view of t.
func TalentOf(t *model.Talent) Talent {
	return Talent{
		Name:             t.Name,
		InternalName:     t.InternalName,
		URL:              model.TalentURL(t.Name),
		Priority:         t.Priority,
		AbsolutePriority: t.AbsolutePriority,
		Rarity:           t.Rarity.String(),
		Lock:             t.Unlocked.Word(),
	}
}

// TalentSearchOf converts a range result.
func TalentSearchOf(res priority.Result, key priority.Key) TalentSearch {
	out := TalentSearch{Format: key.String(), Found: res.Found, Talents: make([]Talent, len(res.Talents))}
	for i, t := range res.Talents {
		out.Talents[i] = TalentOf(t)
	}
	return out
}

// HatchOf converts a hatch result.
func HatchOf(r breeding.Result) Hatch {
	out := Hatch{
		First:   HatchSide{Pet: RefOf(r.First.Pet), Chance: r.First.Chance},
		Second:  HatchSide{Pet: RefOf(r.Second.Pet), Chance: r.Second.Chance},
		Hybrids: make([]PetRef, len(r.Hybrids)),
	}
	for i, p := range r.Hybrids {
		out.Hybrids[i] = RefOf(p)
	}
	return out
}

// HybridsOf converts a pet's hybrid pairs.
func HybridsOf(p *model.Pet, pairs []breeding.Pair) Hybrids {
	out := Hybrids{Pet: RefOf(p), Hybrids: make([]Hybrid, len(pairs))}
	for i, pair := range pairs {
		out.Hybrids[i] = Hybrid{Baby: RefOf(pair.Baby), Other: RefOf(pair.Other)}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
