// Package lookup resolves user-typed names to catalog records.
package lookup

import (
	"strings"

	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Resolver performs name lookups against one catalog. It only reads, so a
// single Resolver can serve concurrent queries.
type Resolver struct {
	cat        *catalog.Catalog
	petTrie    *patricia.Trie
	talentTrie *patricia.Trie
}

// New builds a resolver and its suggestion tries.
func New(c *catalog.Catalog) *Resolver {
	r := &Resolver{
		cat:        c,
		petTrie:    patricia.NewTrie(),
		talentTrie: patricia.NewTrie(),
	}
	c.PetAliases(func(alias string, p *model.Pet) {
		r.petTrie.Insert(patricia.Prefix(alias), p.InternalName)
	})
	c.TalentAliases(func(alias string, t *model.Talent) {
		r.talentTrie.Insert(patricia.Prefix(alias), t.InternalName)
	})
	return r
}

// Catalog returns the underlying catalog.
func (r *Resolver) Catalog() *catalog.Catalog { return r.cat }

// Pet resolves one pet: exact internal name first, then lowercase alias.
func (r *Resolver) Pet(input string) (*model.Pet, error) {
	if p, ok := r.cat.PetByInternalName(input); ok {
		return p, nil
	}
	if p, ok := r.cat.PetByAlias(strings.ToLower(input)); ok {
		return p, nil
	}
	return nil, failure.NotFound(failure.EntityPet, input)
}

// Talent resolves one talent: exact internal name first, then lowercase alias.
func (r *Resolver) Talent(input string) (*model.Talent, error) {
	if t, ok := r.cat.TalentByInternalName(input); ok {
		return t, nil
	}
	if t, ok := r.cat.TalentByAlias(strings.ToLower(input)); ok {
		return t, nil
	}
	return nil, failure.NotFound(failure.EntityTalent, input)
}

// Pets resolves a delimited list of pets. Duplicates are dropped unless
// WithDuplicates is given.
func (r *Resolver) Pets(input string, opts ...ListOption) ([]*model.Pet, error) {
	o := listOptions{delimiter: ",", dedupe: true}
	for _, opt := range opts {
		opt(&o)
	}
	segments, err := o.segments(failure.EntityPet, input)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Pet, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		p, err := r.Pet(s)
		if err != nil {
			return nil, err
		}
		if o.dedupe {
			if _, dup := seen[p.InternalName]; dup {
				continue
			}
			seen[p.InternalName] = struct{}{}
		}
		out = append(out, p)
	}
	return out, nil
}

// Talents resolves a delimited list of talents, always dropping duplicates.
func (r *Resolver) Talents(input string, opts ...ListOption) ([]*model.Talent, error) {
	o := listOptions{delimiter: ","}
	for _, opt := range opts {
		opt(&o)
	}
	segments, err := o.segments(failure.EntityTalent, input)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Talent, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		t, err := r.Talent(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t.InternalName]; dup {
			continue
		}
		seen[t.InternalName] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// PetsContaining returns every pet whose lowercased display name contains
// the lowercased input, in dataset order.
func (r *Resolver) PetsContaining(input string) ([]*model.Pet, error) {
	needle := strings.ToLower(input)
	var out []*model.Pet
	for _, p := range r.cat.Pets() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, failure.NoneFound(failure.EntityPet, input)
	}
	return out, nil
}
