package service

import (
	"context"
	"strings"

	"github.com/okian/gobu/internal/domain/breeding"
	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/filter"
	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/internal/domain/lookup"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/internal/domain/priority"
)

// Pet resolves one pet by internal name or display name.
func (s *Service) Pet(_ context.Context, name string) (*model.Pet, error) {
	r, err := s.ready()
	if err != nil {
		return nil, err
	}
	return r.Pet(name)
}

// Talent resolves one talent by internal name or alias.
func (s *Service) Talent(_ context.Context, name string) (*model.Talent, error) {
	r, err := s.ready()
	if err != nil {
		return nil, err
	}
	return r.Talent(name)
}

// SearchPets narrows the pets whose name contains query (all pets when
// query is blank) by the flags in bag. No match under flags is an empty
// slice, not an error.
func (s *Service) SearchPets(_ context.Context, query string, bag flags.Bag) ([]*model.Pet, error) {
	r, err := s.ready()
	if err != nil {
		return nil, err
	}
	pets := r.Catalog().Pets()
	if query = strings.TrimSpace(query); query != "" {
		if pets, err = r.PetsContaining(query); err != nil {
			return nil, err
		}
	}
	if len(bag) == 0 {
		return pets, nil
	}
	f, err := petFilter(r, bag)
	if err != nil {
		return nil, err
	}
	return f.Apply(pets, r.Catalog()), nil
}

func petFilter(r *lookup.Resolver, bag flags.Bag) (filter.PetFilter, error) {
	var f filter.PetFilter
	f.Spells = bag.All("spell")
	for _, name := range bag.All("talent") {
		t, err := r.Talent(name)
		if err != nil {
			return f, err
		}
		f.Talents = append(f.Talents, t)
	}
	if v, ok := bag.First("wow-factor"); ok {
		n, err := flags.WowFactor(v)
		if err != nil {
			return f, err
		}
		f.WowFactor = &n
	}
	if v, ok := bag.First("rarity"); ok {
		rarity, err := flags.Rarity(v)
		if err != nil {
			return f, err
		}
		f.Rarity = &rarity
	}
	if v, ok := bag.First("school"); ok {
		school, err := flags.School(v)
		if err != nil {
			return f, err
		}
		f.School = &school
	}
	if v, ok := bag.First("egg"); ok {
		egg, err := flags.Egg(v, r.Catalog().HasEgg)
		if err != nil {
			return f, err
		}
		f.Egg = &egg
	}
	for _, bf := range []struct {
		name string
		dst  **bool
	}{
		{"exclusive", &f.Exclusive},
		{"tradeable", &f.Tradeable},
		{"hybrid", &f.Hybrid},
	} {
		v, ok := bag.First(bf.name)
		if !ok {
			continue
		}
		b, err := flags.Bool(bf.name, v)
		if err != nil {
			return f, err
		}
		*bf.dst = &b
	}
	return f, nil
}

// SearchTalents runs a priority-range query described by bag. The
// returned key is the ordering the result is sorted and labelled in.
func (s *Service) SearchTalents(_ context.Context, bag flags.Bag) (priority.Result, priority.Key, error) {
	r, err := s.ready()
	if err != nil {
		return priority.Result{}, priority.Relative, err
	}
	if bag.Empty(flags.TalentSearch) {
		return priority.Result{}, priority.Relative, failure.NoFlags()
	}
	q, err := talentQuery(r, bag, s.listDelimiter)
	if err != nil {
		return priority.Result{}, q.Key, err
	}
	sorted := r.Catalog().TalentsByPriority()
	if q.Key == priority.Absolute {
		sorted = r.Catalog().TalentsByAbsolutePriority()
	}
	res, err := priority.Range(sorted, q)
	return res, q.Key, err
}

func talentQuery(r *lookup.Resolver, bag flags.Bag, delim string) (priority.Query, error) {
	var q priority.Query
	if v, ok := bag.First("format"); ok {
		key, err := flags.Format(v)
		if err != nil {
			return q, err
		}
		q.Key = key
	}
	// "above" a talent means a smaller priority number.
	if v, ok := bag.First("above"); ok {
		t, err := r.Talent(v)
		if err != nil {
			return q, err
		}
		q.Upper = t
	}
	if v, ok := bag.First("below"); ok {
		t, err := r.Talent(v)
		if err != nil {
			return q, err
		}
		q.Lower = t
	}
	if v, ok := bag.First("between"); ok {
		ts, err := r.Talents(v, lookup.WithBound(2), lookup.WithDelimiter(delim))
		if err != nil {
			return q, err
		}
		q.Between = ts
	}
	for _, v := range bag.All("rarity") {
		rarity, err := flags.Rarity(v)
		if err != nil {
			return q, err
		}
		q.Rarities = append(q.Rarities, rarity)
	}
	if v, ok := bag.First("unlockable"); ok {
		b, err := flags.Bool("unlockable", v)
		if err != nil {
			return q, err
		}
		q.Lock = priority.NotLockable
		if b {
			q.Lock = priority.LockableOnly
		}
	}
	return q, nil
}

// FirstGen returns the pet whose first generation pools are wanted.
func (s *Service) FirstGen(ctx context.Context, name string) (*model.Pet, error) {
	return s.Pet(ctx, name)
}

// Prioritise resolves a delimited talent list and orders it by priority.
func (s *Service) Prioritise(_ context.Context, list string) ([]*model.Talent, error) {
	r, err := s.ready()
	if err != nil {
		return nil, err
	}
	ts, err := r.Talents(list, lookup.WithDelimiter(s.listDelimiter))
	if err != nil {
		return nil, err
	}
	return priority.Sort(ts, priority.Relative), nil
}

// Hatch resolves exactly two pets, duplicates allowed, and computes the
// hatch between them.
func (s *Service) Hatch(_ context.Context, list string) (breeding.Result, error) {
	r, err := s.ready()
	if err != nil {
		return breeding.Result{}, err
	}
	pets, err := r.Pets(list, lookup.WithBound(2), lookup.WithDuplicates(), lookup.WithDelimiter(s.listDelimiter))
	if err != nil {
		return breeding.Result{}, err
	}
	return breeding.Hatch(r.Catalog(), pets[0], pets[1]), nil
}

// Hybrids resolves a pet and lists the hybrids it can produce.
func (s *Service) Hybrids(_ context.Context, name string) (*model.Pet, []breeding.Pair, error) {
	r, err := s.ready()
	if err != nil {
		return nil, nil, err
	}
	pet, err := r.Pet(name)
	if err != nil {
		return nil, nil, err
	}
	return pet, breeding.Hybrids(r.Catalog(), pet), nil
}

// Suggest completes a pet or talent name prefix.
func (s *Service) Suggest(_ context.Context, entity failure.Entity, prefix string, limit int) ([]lookup.Suggestion, error) {
	r, err := s.ready()
	if err != nil {
		return nil, err
	}
	return r.Suggest(entity, prefix, limit), nil
}

// CatalogStats returns the loaded dataset's sizes.
func (s *Service) CatalogStats() (catalog.Stats, error) {
	r, err := s.ready()
	if err != nil {
		return catalog.Stats{}, err
	}
	return r.Catalog().Stats(), nil
}

// IsHybrid reports whether p is the baby of some morph. False before Start.
func (s *Service) IsHybrid(p *model.Pet) bool {
	r := s.resolver()
	return r != nil && r.Catalog().IsHybrid(p.InternalName)
}
