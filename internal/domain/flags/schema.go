// Package flags describes, parses and converts the "name: value" flags
// accepted by search commands.
package flags

import "strings"

// Kind is the value type a flag converts to.
type Kind int

const (
	KindText Kind = iota
	KindTalent
	KindTalentList
	KindWowFactor
	KindRarity
	KindSchool
	KindEgg
	KindBool
	KindFormat
)

// Variadic marks a flag that may be repeated without limit.
const Variadic = -1

// Flag is a static descriptor of one flag.
type Flag struct {
	Name        string
	Aliases     []string
	Kind        Kind
	Description string
	// MaxArgs is how many times the flag may be given; Variadic for no limit.
	MaxArgs int
	// NoHint hides the "true/false." prefix in help for boolean flags.
	NoHint bool
	// StoreTrue flags given without a value read as "true".
	StoreTrue bool
}

// Names returns the canonical name followed by the aliases.
func (f Flag) Names() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// Schema is the ordered flag set of one command.
type Schema struct {
	Flags []Flag
	// Ignored flags do not count when deciding whether anything was given.
	Ignored []string
}

// Lookup finds a flag by name or alias, case-insensitively.
func (s Schema) Lookup(name string) (Flag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range s.Flags {
		for _, n := range f.Names() {
			if n == name {
				return f, true
			}
		}
	}
	return Flag{}, false
}

func (s Schema) ignored(name string) bool {
	for _, n := range s.Ignored {
		if n == name {
			return true
		}
	}
	return false
}

// PetSearch is the flag set of the pets command.
var PetSearch = Schema{
	Flags: []Flag{
		{Name: "spell", Kind: KindText, MaxArgs: Variadic, Description: "searches pet item cards (inaccurate)."},
		{Name: "talent", Kind: KindTalent, MaxArgs: Variadic, Description: "searches first gen talent/derby pool."},
		{Name: "wow-factor", Kind: KindWowFactor, MaxArgs: 1, Description: "needs to be this wow factor."},
		{Name: "rarity", Kind: KindRarity, MaxArgs: 1, Description: "needs to be this rarity."},
		{Name: "school", Kind: KindSchool, MaxArgs: 1, Description: "needs to belong to this school."},
		{Name: "egg", Kind: KindEgg, MaxArgs: 1, Description: "needs to be hatched from this egg."},
		{Name: "exclusive", Kind: KindBool, MaxArgs: 1, Description: "whether the pet is exclusive."},
		{Name: "tradeable", Kind: KindBool, MaxArgs: 1, Description: "whether the pet is tradeable between wizards."},
		{Name: "hybrid", Kind: KindBool, MaxArgs: 1, Description: "whether the pet is a hybrid"},
	},
}

// TalentSearch is the flag set of the talents command.
var TalentSearch = Schema{
	Flags: []Flag{
		{Name: "above", Kind: KindTalent, MaxArgs: 1, Description: "needs to be above this talent."},
		{Name: "below", Kind: KindTalent, MaxArgs: 1, Description: "needs to be below this talent."},
		{Name: "between", Kind: KindTalentList, MaxArgs: 1, Description: "only include talents between 2 others.\nmutually exclusive with `above` and `below` flags."},
		{Name: "rarity", Kind: KindRarity, MaxArgs: Variadic, Description: "only include talents of this rarity."},
		{Name: "unlockable", Aliases: []string{"lockable"}, Kind: KindBool, MaxArgs: 1, NoHint: true, StoreTrue: true, Description: "pass `false` to filter out locked/unlocked talents."},
		{Name: "format", Kind: KindFormat, MaxArgs: 1, Description: "relative or absolute"},
	},
	Ignored: []string{"format"},
}
