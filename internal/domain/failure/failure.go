// Package failure defines the typed errors raised by query resolution.
//
// Every failure reflects a user-input or query-construction problem, so
// nothing in the core recovers from them: they travel unchanged to the
// command boundary, which turns them into reply text.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Each kind has a sentinel usable with errors.Is.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindNoneFound
	KindCountMismatch
	KindMutuallyExclusiveBounds
	KindBoundsOutOfOrder
	KindBoundsIdentical
	KindInvalidEnumValue
	KindInvalidBoolean
	KindOutOfRange
	KindMissingFlagValue
	KindTooManyFlagValues
	KindNoFlags
)

// Sentinel kinds for errors.Is checks.
var (
	ErrNotFound                = &Error{Kind: KindNotFound}
	ErrNoneFound               = &Error{Kind: KindNoneFound}
	ErrCountMismatch           = &Error{Kind: KindCountMismatch}
	ErrMutuallyExclusiveBounds = &Error{Kind: KindMutuallyExclusiveBounds}
	ErrBoundsOutOfOrder        = &Error{Kind: KindBoundsOutOfOrder}
	ErrBoundsIdentical         = &Error{Kind: KindBoundsIdentical}
	ErrInvalidEnumValue        = &Error{Kind: KindInvalidEnumValue}
	ErrInvalidBoolean          = &Error{Kind: KindInvalidBoolean}
	ErrOutOfRange              = &Error{Kind: KindOutOfRange}
	ErrMissingFlagValue        = &Error{Kind: KindMissingFlagValue}
	ErrTooManyFlagValues       = &Error{Kind: KindTooManyFlagValues}
	ErrNoFlags                 = &Error{Kind: KindNoFlags}
)

var kindNames = map[Kind]string{
	KindNotFound:                "not_found",
	KindNoneFound:               "none_found",
	KindCountMismatch:           "count_mismatch",
	KindMutuallyExclusiveBounds: "mutually_exclusive_bounds",
	KindBoundsOutOfOrder:        "bounds_out_of_order",
	KindBoundsIdentical:         "bounds_identical",
	KindInvalidEnumValue:        "invalid_enum_value",
	KindInvalidBoolean:          "invalid_boolean",
	KindOutOfRange:              "out_of_range",
	KindMissingFlagValue:        "missing_flag_value",
	KindTooManyFlagValues:       "too_many_flag_values",
	KindNoFlags:                 "no_flags",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Entity names what kind of record a lookup was for.
type Entity string

const (
	EntityPet    Entity = "pet"
	EntityTalent Entity = "talent"
)

// Plural returns "pet"/"pets" style wording for n records.
func (e Entity) Plural(n int) string {
	if n == 1 {
		return string(e)
	}
	return string(e) + "s"
}

// Enum names the closed value set an InvalidEnumValue failure refers to.
type Enum string

const (
	EnumRarity Enum = "rarity"
	EnumSchool Enum = "school"
	EnumEgg    Enum = "egg"
	EnumFormat Enum = "format"
)

// Direction tells whether a delimited list had too many or too few items.
type Direction int

const (
	TooFew Direction = iota + 1
	TooMany
)

// Error is a typed failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind      Kind
	Entity    Entity
	Enum      Enum
	Input     string
	Flag      string
	Bound     int
	Actual    int
	Min, Max  int
	Direction Direction
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found: %q", e.Entity, e.Input)
	case KindNoneFound:
		return fmt.Sprintf("no %s matching %q", e.Entity.Plural(0), e.Input)
	case KindCountMismatch:
		if e.Direction == TooMany {
			return fmt.Sprintf("too many %s: want %d, got %d", e.Entity.Plural(0), e.Bound, e.Actual)
		}
		return fmt.Sprintf("not enough %s: want %d, got %d", e.Entity.Plural(0), e.Bound, e.Actual)
	case KindMutuallyExclusiveBounds:
		return "between is mutually exclusive with above and below"
	case KindBoundsOutOfOrder:
		return "bounds out of order"
	case KindBoundsIdentical:
		return "bounds are the same record"
	case KindInvalidEnumValue:
		return fmt.Sprintf("invalid %s: %q", e.Enum, e.Input)
	case KindInvalidBoolean:
		return fmt.Sprintf("invalid boolean for %s: %q", e.Flag, e.Input)
	case KindOutOfRange:
		return fmt.Sprintf("%s must be between %d and %d, got %q", e.Flag, e.Min, e.Max, e.Input)
	case KindMissingFlagValue:
		return fmt.Sprintf("flag %s is missing a value", e.Flag)
	case KindTooManyFlagValues:
		return fmt.Sprintf("flag %s given %d times, limit %d", e.Flag, e.Actual, e.Bound)
	case KindNoFlags:
		return "no usable flags"
	default:
		return "unknown failure"
	}
}

// Is matches on Kind so callers can compare against the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// ShowHelp reports whether the caller should offer the command's help.
// Lookups that simply missed don't; malformed queries do.
func (e *Error) ShowHelp() bool {
	switch e.Kind {
	case KindInvalidEnumValue:
		// A bad format is a malformed query, the other sets are lookups.
		return e.Enum == EnumFormat
	case KindNotFound, KindNoneFound, KindMissingFlagValue,
		KindMutuallyExclusiveBounds, KindBoundsIdentical, KindBoundsOutOfOrder, KindOutOfRange:
		return false
	default:
		return true
	}
}

// As extracts a *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Constructors.

func NotFound(entity Entity, input string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Input: input}
}

func NoneFound(entity Entity, input string) *Error {
	return &Error{Kind: KindNoneFound, Entity: entity, Input: input}
}

// CountMismatch builds a too-many or too-few failure from the bound and the actual count.
func CountMismatch(entity Entity, bound, actual int) *Error {
	dir := TooFew
	if actual > bound {
		dir = TooMany
	}
	return &Error{Kind: KindCountMismatch, Entity: entity, Bound: bound, Actual: actual, Direction: dir}
}

func MutuallyExclusiveBounds() *Error { return &Error{Kind: KindMutuallyExclusiveBounds} }
func BoundsOutOfOrder() *Error        { return &Error{Kind: KindBoundsOutOfOrder} }
func BoundsIdentical() *Error         { return &Error{Kind: KindBoundsIdentical} }

func InvalidEnumValue(enum Enum, input string) *Error {
	return &Error{Kind: KindInvalidEnumValue, Enum: enum, Input: input}
}

func InvalidBoolean(flag, input string) *Error {
	return &Error{Kind: KindInvalidBoolean, Flag: flag, Input: input}
}

func OutOfRange(flag, input string, min, max int) *Error {
	return &Error{Kind: KindOutOfRange, Flag: flag, Input: input, Min: min, Max: max}
}

func MissingFlagValue(flag string) *Error {
	return &Error{Kind: KindMissingFlagValue, Flag: flag}
}

func TooManyFlagValues(flag string, limit, got int) *Error {
	return &Error{Kind: KindTooManyFlagValues, Flag: flag, Bound: limit, Actual: got}
}

func NoFlags() *Error { return &Error{Kind: KindNoFlags} }
