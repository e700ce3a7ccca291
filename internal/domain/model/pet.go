// Package model contains domain models passed between layers.
package model

// MorphException ties a pair of parents to a non-default offspring.
// Other is the second parent's internal name, Baby the offspring's.
type MorphException struct {
	Other string `json:"other"`
	Baby  string `json:"baby"`
}

// Pet is one hatchable pet from the static dataset.
type Pet struct {
	Name               string           `json:"name"`
	InternalName       string           `json:"internal_name"`
	WowFactor          int              `json:"wow_factor"`
	Exclusive          bool             `json:"exclusive"`
	Rarity             Rarity           `json:"rarity"`
	School             string           `json:"school"`
	SchoolOnly         bool             `json:"school_only"`
	Egg                string           `json:"egg"`
	Talents            []string         `json:"talents"`
	Abilities          []string         `json:"abilities"`
	Tradeable          bool             `json:"tradeable"`
	Spells             []string         `json:"spells"`
	MorphingExceptions []MorphException `json:"morphing_exceptions"`
}

// Talent is one pet talent (or derby ability).
// Lower Priority takes precedence in-game.
type Talent struct {
	Name             string    `json:"name"`
	InternalName     string    `json:"internal_name"`
	Priority         int       `json:"priority"`
	AbsolutePriority int       `json:"absolute_priority"`
	Rarity           Rarity    `json:"rarity"`
	Unlocked         LockState `json:"unlocked"`
}
