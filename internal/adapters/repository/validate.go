package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/flags"
)

// Validate checks the loader preconditions the catalog relies on. Every
// violation is reported, joined under ErrInvalidDataset.
func Validate(ds catalog.Dataset) error {
	var errs []error

	pets := make(map[string]struct{}, len(ds.Pets))
	for i, p := range ds.Pets {
		where := fmt.Sprintf("pet %d (%s)", i, p.InternalName)
		if p.InternalName == "" {
			errs = append(errs, fmt.Errorf("%s: empty internal name", where))
		} else if _, dup := pets[p.InternalName]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate internal name", where))
		}
		pets[p.InternalName] = struct{}{}

		if !p.Rarity.Valid() {
			errs = append(errs, fmt.Errorf("%s: rarity %d out of range", where, p.Rarity))
		}
		if p.WowFactor < flags.MinWowFactor || p.WowFactor > flags.MaxWowFactor {
			errs = append(errs, fmt.Errorf("%s: wow factor %d out of range", where, p.WowFactor))
		}
		if !strings.HasSuffix(strings.ToLower(p.Egg), "egg") {
			errs = append(errs, fmt.Errorf("%s: egg %q does not end in egg", where, p.Egg))
		}
	}

	for _, p := range ds.Pets {
		for _, m := range p.MorphingExceptions {
			if _, ok := pets[m.Other]; !ok {
				errs = append(errs, fmt.Errorf("pet %s: morph partner %q unknown", p.InternalName, m.Other))
			}
			if _, ok := pets[m.Baby]; !ok {
				errs = append(errs, fmt.Errorf("pet %s: morph baby %q unknown", p.InternalName, m.Baby))
			}
		}
	}

	talents := make(map[string]struct{}, len(ds.Talents))
	for i, t := range ds.Talents {
		where := fmt.Sprintf("talent %d (%s)", i, t.InternalName)
		if t.InternalName == "" {
			errs = append(errs, fmt.Errorf("%s: empty internal name", where))
		} else if _, dup := talents[t.InternalName]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate internal name", where))
		}
		talents[t.InternalName] = struct{}{}

		if !t.Rarity.Valid() {
			errs = append(errs, fmt.Errorf("%s: rarity %d out of range", where, t.Rarity))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
}
