package catalog

import (
	"strings"

	"github.com/okian/gobu/internal/domain/model"
)

// petAliases maps lowercased display names to pets; later records win.
func petAliases(pets []*model.Pet) map[string]*model.Pet {
	out := make(map[string]*model.Pet, len(pets))
	for _, p := range pets {
		out[strings.ToLower(p.Name)] = p
	}
	return out
}

// talentAliases builds the talent alias table.
//
// Lockable talents get "{name} {state}", "{name} ({state})" and
// "{state} {name}". Otherwise hyphenated names get the hyphen removed and
// replaced by a space, and comma names get the commas dropped. The bare
// name belongs to the locked or not-applicable record; an unlocked talent
// only claims it when nothing else did.
func talentAliases(talents []*model.Talent, byInternal map[string]*model.Talent) map[string]*model.Talent {
	out := make(map[string]*model.Talent, len(talents)*3)
	var unlockedBare []*model.Talent

	for _, t := range talents {
		name := strings.ToLower(t.Name)

		switch {
		case t.Unlocked.Lockable():
			state := t.Unlocked.Word()
			out[name+" "+state] = t
			out[name+" ("+state+")"] = t
			out[state+" "+name] = t
		case strings.Contains(name, "-"):
			out[strings.ReplaceAll(name, "-", "")] = t
			out[strings.ReplaceAll(name, "-", " ")] = t
		case strings.Contains(name, ","):
			out[strings.ReplaceAll(name, ",", "")] = t
		}

		if t.Unlocked == model.Unlocked {
			unlockedBare = append(unlockedBare, t)
			continue
		}
		out[name] = t
	}

	for _, t := range unlockedBare {
		name := strings.ToLower(t.Name)
		if _, taken := out[name]; !taken {
			out[name] = t
		}
	}

	if t, ok := byInternal[SpellDefyingInternalName]; ok {
		for _, a := range spellDefyingAliases {
			out[a] = t
		}
	}
	return out
}
