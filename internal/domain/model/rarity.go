package model

import "strings"

// Rarity is the closed ordinal classification shared by pets and talents.
// Ordering follows the ordinal, never the name.
type Rarity int

// Rarity values as they appear in the dataset.
const (
	Common    Rarity = 1
	Uncommon  Rarity = 2
	Rare      Rarity = 3
	UltraRare Rarity = 4
	Epic      Rarity = 5
)

// Rarities lists every rarity in ordinal order.
var Rarities = []Rarity{Common, Uncommon, Rare, UltraRare, Epic}

var rarityNames = map[Rarity]string{
	Common:    "common",
	Uncommon:  "uncommon",
	Rare:      "rare",
	UltraRare: "ultra-rare",
	Epic:      "epic",
}

var rarityShort = map[Rarity]string{
	Common:    "C",
	Uncommon:  "UC",
	Rare:      "R",
	UltraRare: "UR",
	Epic:      "E",
}

// rarityAliases maps every accepted spelling to its rarity.
var rarityAliases = func() map[string]Rarity {
	out := make(map[string]Rarity, len(rarityNames)*2+2)
	for r, name := range rarityNames {
		out[name] = r
	}
	out["ultrarare"] = UltraRare
	out["ultra rare"] = UltraRare
	for r, short := range rarityShort {
		out[strings.ToLower(short)] = r
	}
	return out
}()

// Valid reports whether r is one of the five known rarities.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Epic
}

// String returns the long lowercase name, e.g. "ultra-rare".
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "unknown"
}

// Short returns the abbreviated code used in listings, e.g. "UR".
func (r Rarity) Short() string {
	if short, ok := rarityShort[r]; ok {
		return short
	}
	return "?"
}

// ParseRarity resolves a case-insensitive rarity spelling.
func ParseRarity(s string) (Rarity, bool) {
	r, ok := rarityAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// RarityNames returns the long names in ordinal order.
func RarityNames() []string {
	out := make([]string, len(Rarities))
	for i, r := range Rarities {
		out[i] = r.String()
	}
	return out
}
