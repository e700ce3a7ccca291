package flags

import (
	"strconv"
	"strings"

	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/internal/domain/priority"
)

// Wow factor bounds.
const (
	MinWowFactor = 0
	MaxWowFactor = 10
)

// Bool accepts true/y/yes and false/n/no.
func Bool(flag, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "y", "yes":
		return true, nil
	case "false", "n", "no":
		return false, nil
	default:
		return false, failure.InvalidBoolean(flag, s)
	}
}

// Rarity parses a rarity name, alias or short code.
func Rarity(s string) (model.Rarity, error) {
	r, ok := model.ParseRarity(s)
	if !ok {
		return 0, failure.InvalidEnumValue(failure.EnumRarity, s)
	}
	return r, nil
}

// School returns the lowercased school.
func School(s string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !model.IsSchool(lower) {
		return "", failure.InvalidEnumValue(failure.EnumSchool, s)
	}
	return lower, nil
}

// Egg lowercases s, appends " egg" when missing and checks it with known.
func Egg(s string, known func(string) bool) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasSuffix(lower, " egg") {
		lower += " egg"
	}
	if known != nil && !known(lower) {
		return "", failure.InvalidEnumValue(failure.EnumEgg, s)
	}
	return lower, nil
}

// Format parses rel/relative or abs/absolute/actual.
func Format(s string) (priority.Key, error) {
	k, ok := priority.ParseKey(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return priority.Relative, failure.InvalidEnumValue(failure.EnumFormat, s)
	}
	return k, nil
}

// WowFactor parses an integer in [MinWowFactor, MaxWowFactor].
func WowFactor(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < MinWowFactor || n > MaxWowFactor {
		return 0, failure.OutOfRange("wow-factor", s, MinWowFactor, MaxWowFactor)
	}
	return n, nil
}
