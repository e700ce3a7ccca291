// Package catalog holds the process-wide, read-only indices derived from the
// pet and talent dataset. A Catalog is built once at startup and shared by
// pointer with every query; nothing in it is mutated afterwards, so it is
// safe for concurrent use without locking.
package catalog

import (
	"sort"
	"strings"

	"github.com/okian/gobu/internal/domain/model"
)

// SpellDefyingInternalName is the talent that gets extra hand-written aliases.
const SpellDefyingInternalName = "Talent-Resist-All01"

var spellDefyingAliases = []string{"spelldefy", "spell defy", "spell-defy"}

// Dataset is the raw record collections as loaded from storage.
type Dataset struct {
	Pets    []model.Pet
	Talents []model.Talent
}

// Catalog is the immutable query context.
type Catalog struct {
	pets    []*model.Pet
	talents []*model.Talent

	petsByInternal    map[string]*model.Pet
	petsByAlias       map[string]*model.Pet
	talentsByInternal map[string]*model.Talent
	talentsByAlias    map[string]*model.Talent

	morphs  map[string][]model.MorphException
	hybrids map[string]struct{}
	eggs    map[string]struct{}

	byPriority         []*model.Talent
	byAbsolutePriority []*model.Talent
}

// New builds every index from ds. Building is infallible; the loader is
// responsible for rejecting malformed data.
func New(ds Dataset) *Catalog {
	c := &Catalog{
		pets:              make([]*model.Pet, len(ds.Pets)),
		talents:           make([]*model.Talent, len(ds.Talents)),
		petsByInternal:    make(map[string]*model.Pet, len(ds.Pets)),
		talentsByInternal: make(map[string]*model.Talent, len(ds.Talents)),
		eggs:              make(map[string]struct{}),
	}

	for i := range ds.Pets {
		p := ds.Pets[i]
		c.pets[i] = &p
		c.petsByInternal[p.InternalName] = &p
		c.eggs[strings.ToLower(p.Egg)] = struct{}{}
	}
	for i := range ds.Talents {
		t := ds.Talents[i]
		c.talents[i] = &t
		c.talentsByInternal[t.InternalName] = &t
	}

	c.petsByAlias = petAliases(c.pets)
	c.talentsByAlias = talentAliases(c.talents, c.talentsByInternal)
	c.morphs, c.hybrids = buildMorphs(c.pets)
	c.byPriority = sortTalents(c.talents, func(t *model.Talent) int { return t.Priority })
	c.byAbsolutePriority = sortTalents(c.talents, func(t *model.Talent) int { return t.AbsolutePriority })
	return c
}

func sortTalents(in []*model.Talent, key func(*model.Talent) int) []*model.Talent {
	out := make([]*model.Talent, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// Pets returns every pet in dataset order. Callers must not modify the slice.
func (c *Catalog) Pets() []*model.Pet { return c.pets }

// Talents returns every talent in dataset order. Callers must not modify the slice.
func (c *Catalog) Talents() []*model.Talent { return c.talents }

// PetByInternalName is the case-sensitive exact lookup.
func (c *Catalog) PetByInternalName(name string) (*model.Pet, bool) {
	p, ok := c.petsByInternal[name]
	return p, ok
}

// PetByAlias looks up an already-lowercased alias.
func (c *Catalog) PetByAlias(alias string) (*model.Pet, bool) {
	p, ok := c.petsByAlias[alias]
	return p, ok
}

// TalentByInternalName is the case-sensitive exact lookup.
func (c *Catalog) TalentByInternalName(name string) (*model.Talent, bool) {
	t, ok := c.talentsByInternal[name]
	return t, ok
}

// TalentByAlias looks up an already-lowercased alias.
func (c *Catalog) TalentByAlias(alias string) (*model.Talent, bool) {
	t, ok := c.talentsByAlias[alias]
	return t, ok
}

// PetAliases calls fn for every pet alias. Iteration order is unspecified.
func (c *Catalog) PetAliases(fn func(alias string, p *model.Pet)) {
	for a, p := range c.petsByAlias {
		fn(a, p)
	}
}

// TalentAliases calls fn for every talent alias. Iteration order is unspecified.
func (c *Catalog) TalentAliases(fn func(alias string, t *model.Talent)) {
	for a, t := range c.talentsByAlias {
		fn(a, t)
	}
}

// Morphs returns the symmetric morph exceptions of a pet.
func (c *Catalog) Morphs(internalName string) []model.MorphException {
	return c.morphs[internalName]
}

// IsHybrid reports whether the pet is the baby of any morph exception.
func (c *Catalog) IsHybrid(internalName string) bool {
	_, ok := c.hybrids[internalName]
	return ok
}

// HasEgg reports whether any pet hatches from egg (case-insensitive).
func (c *Catalog) HasEgg(egg string) bool {
	_, ok := c.eggs[strings.ToLower(egg)]
	return ok
}

// TalentsByPriority is sorted ascending by priority.
func (c *Catalog) TalentsByPriority() []*model.Talent { return c.byPriority }

// TalentsByAbsolutePriority is sorted ascending by absolute priority.
func (c *Catalog) TalentsByAbsolutePriority() []*model.Talent { return c.byAbsolutePriority }

// Stats summarises the catalog sizes.
type Stats struct {
	Pets          int `json:"pets"`
	Talents       int `json:"talents"`
	PetAliases    int `json:"pet_aliases"`
	TalentAliases int `json:"talent_aliases"`
	Hybrids       int `json:"hybrids"`
	Eggs          int `json:"eggs"`
}

func (c *Catalog) Stats() Stats {
	return Stats{
		Pets:          len(c.pets),
		Talents:       len(c.talents),
		PetAliases:    len(c.petsByAlias),
		TalentAliases: len(c.talentsByAlias),
		Hybrids:       len(c.hybrids),
		Eggs:          len(c.eggs),
	}
}
