// Package priority selects talents by their position in a priority order.
package priority

import (
	"sort"

	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/model"
)

// Key selects which ordering space a query sorts and compares in.
type Key int

const (
	Relative Key = iota
	Absolute
)

// ParseKey accepts rel/relative and abs/absolute/actual.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "rel", "relative":
		return Relative, true
	case "abs", "absolute", "actual":
		return Absolute, true
	default:
		return Relative, false
	}
}

func (k Key) String() string {
	if k == Absolute {
		return "absolute"
	}
	return "relative"
}

// Of returns t's position in the key's ordering space.
func (k Key) Of(t *model.Talent) int {
	if k == Absolute {
		return t.AbsolutePriority
	}
	return t.Priority
}

// LockFilter is the tri-state lock-state constraint.
type LockFilter int

const (
	LockAny LockFilter = iota
	// LockableOnly drops talents without a locked/unlocked variant.
	LockableOnly
	// NotLockable drops talents that have a locked/unlocked variant.
	NotLockable
)

func (l LockFilter) allows(t *model.Talent) bool {
	switch l {
	case LockableOnly:
		return t.Unlocked.Lockable()
	case NotLockable:
		return !t.Unlocked.Lockable()
	default:
		return true
	}
}

// Query describes one range selection. Between is mutually exclusive with
// Lower and Upper.
type Query struct {
	Lower    *model.Talent
	Upper    *model.Talent
	Between  []*model.Talent
	Rarities []model.Rarity
	Lock     LockFilter
	Key      Key
}

// Result is a successful selection. Found counts the non-boundary matches.
type Result struct {
	Talents []*model.Talent
	Found   int
	// StartFromLast asks the renderer to open on the last page; set when
	// only an upper bound was given.
	StartFromLast bool
}

// Empty reports that nothing but the boundaries matched.
func (r Result) Empty() bool { return r.Found < 1 }

// Range walks sorted once, ascending in q.Key, and returns the inclusive
// window. Boundary records are always included. sorted must already be
// ordered by q.Key.
func Range(sorted []*model.Talent, q Query) (Result, error) {
	lower, upper := q.Lower, q.Upper

	if len(q.Between) > 0 {
		if lower != nil || upper != nil {
			return Result{}, failure.MutuallyExclusiveBounds()
		}
		switch len(q.Between) {
		case 2:
			lower, upper = q.Between[0], q.Between[1]
			if q.Key.Of(lower) > q.Key.Of(upper) {
				lower, upper = upper, lower
			}
		case 1:
			return Result{}, failure.BoundsIdentical()
		default:
			return Result{}, failure.CountMismatch(failure.EntityTalent, 2, len(q.Between))
		}
	}

	if lower != nil && upper != nil {
		if lower.InternalName == upper.InternalName {
			return Result{}, failure.BoundsIdentical()
		}
		if q.Key.Of(lower) > q.Key.Of(upper) {
			return Result{}, failure.BoundsOutOfOrder()
		}
	}

	rarities := make(map[model.Rarity]struct{}, len(q.Rarities))
	for _, r := range q.Rarities {
		rarities[r] = struct{}{}
	}

	isBoundary := func(t *model.Talent) bool {
		return (lower != nil && t.InternalName == lower.InternalName) ||
			(upper != nil && t.InternalName == upper.InternalName)
	}

	var res Result
	for _, t := range sorted {
		if isBoundary(t) {
			res.Talents = append(res.Talents, t)
			continue
		}
		if len(rarities) > 0 {
			if _, ok := rarities[t.Rarity]; !ok {
				continue
			}
		}
		if !q.Lock.allows(t) {
			continue
		}
		pos := q.Key.Of(t)
		if lower != nil && pos < q.Key.Of(lower) {
			continue
		}
		if upper != nil && pos > q.Key.Of(upper) {
			continue
		}
		res.Talents = append(res.Talents, t)
		res.Found++
	}
	res.StartFromLast = upper != nil && lower == nil
	return res, nil
}

// Sort returns a copy of talents ordered ascending by key. Equal keys keep
// their input order.
func Sort(talents []*model.Talent, key Key) []*model.Talent {
	out := make([]*model.Talent, len(talents))
	copy(out, talents)
	sort.SliceStable(out, func(i, j int) bool { return key.Of(out[i]) < key.Of(out[j]) })
	return out
}
