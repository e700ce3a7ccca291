// Package catalogtest provides a small, hand-built dataset for tests.
package catalogtest

import (
	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/model"
)

// Dataset returns a fresh copy of the fixture records.
//
// Priorities (ascending): Fairy Friend 5, Mighty 10, Mighty (unlocked) 11,
// Spell-Proof 20, Spell-Defying 30, No Pain, No Gain 40, Storm-Giver 50,
// Death-Dealer 60, Frozen Kraken Trained 70.
func Dataset() catalog.Dataset {
	return catalog.Dataset{
		Pets: []model.Pet{
			{
				Name: "Rain Core", InternalName: "Pet-RainCore", WowFactor: 3,
				Rarity: model.Common, School: "storm", Egg: "Rain Core Egg",
				Talents: []string{"Spell-Proof", "Mighty"}, Abilities: []string{"Quickstep"},
				Tradeable: true, Spells: []string{"Storm Shark", "Thunder Snake"},
				MorphingExceptions: []model.MorphException{
					{Other: "Pet-Ghulture", Baby: "Pet-ClamoringGhulture"},
					{Other: "Pet-Ghulture", Baby: "Pet-ClamoringGhulture2"},
				},
			},
			{
				Name: "Ghulture", InternalName: "Pet-Ghulture", WowFactor: 5,
				Rarity: model.Uncommon, School: "death", Egg: "Ghulture Egg",
				Talents: []string{"Death-Dealer", "Fairy Friend"}, Tradeable: true,
				Spells: []string{"Ghoul", "Vampire"},
			},
			{
				Name: "Clamoring Ghulture", InternalName: "Pet-ClamoringGhulture", WowFactor: 8,
				Exclusive: true, Rarity: model.Rare, School: "death", SchoolOnly: true,
				Egg: "Clamoring Ghulture Egg", Talents: []string{"Storm-Giver"},
			},
			{
				Name: "Clamoring Ghulture", InternalName: "Pet-ClamoringGhulture2", WowFactor: 8,
				Exclusive: true, Rarity: model.Rare, School: "death",
				Egg: "Clamoring Ghulture Egg", Talents: []string{"No Pain, No Gain"},
			},
			{
				Name: "Fire Cat", InternalName: "Pet-FireCat", WowFactor: 10,
				Rarity: model.Epic, School: "fire", Egg: "Fire Cat Egg",
				Talents: []string{"Mighty", "Spell-Defying"}, Tradeable: true,
				Spells: []string{"Fire Cat", "Meteor"},
			},
		},
		Talents: []model.Talent{
			{Name: "Mighty", InternalName: "Talent-Mighty", Priority: 10, AbsolutePriority: 100, Rarity: model.Common, Unlocked: model.Locked},
			{Name: "Mighty", InternalName: "Talent-Mighty-Unlocked", Priority: 11, AbsolutePriority: 101, Rarity: model.Common, Unlocked: model.Unlocked},
			{Name: "Spell-Proof", InternalName: "Talent-SpellProof", Priority: 20, AbsolutePriority: 90, Rarity: model.Uncommon},
			{Name: "Spell-Defying", InternalName: "Talent-Resist-All01", Priority: 30, AbsolutePriority: 50, Rarity: model.Rare},
			{Name: "No Pain, No Gain", InternalName: "Talent-NoPain", Priority: 40, AbsolutePriority: 40, Rarity: model.UltraRare},
			{Name: "Storm-Giver", InternalName: "Talent-StormGiver", Priority: 50, AbsolutePriority: 10, Rarity: model.Epic},
			{Name: "Death-Dealer", InternalName: "Talent-DeathDealer", Priority: 60, AbsolutePriority: 60, Rarity: model.Uncommon},
			{Name: "Frozen Kraken Trained", InternalName: "Talent-FKT-Unlocked", Priority: 70, AbsolutePriority: 70, Rarity: model.Rare, Unlocked: model.Unlocked},
			{Name: "Fairy Friend", InternalName: "Talent-FairyFriend", Priority: 5, AbsolutePriority: 200, Rarity: model.Common},
		},
	}
}

// Catalog builds a catalog over Dataset.
func Catalog() *catalog.Catalog {
	return catalog.New(Dataset())
}
