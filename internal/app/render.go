package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/gobu/internal/domain/breeding"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/internal/domain/priority"
)

const (
	lockedEmoji   = "\U0001F512\uFE0F"
	unlockedEmoji = "\U0001F513\uFE0F"
)

// Echoed user input is escaped and cut to this width.
const (
	echoWidth  = 45
	echoSuffix = " [...]"
)

var markdown = regexp.MustCompile("(?m)[_\\\\~|*`]|^>(?:>>)?\\s|^#{1,3}|^\\s*-")

// escape neutralises chat markdown in s and truncates it for echoing.
func escape(s string) string {
	out := markdown.ReplaceAllStringFunc(s, func(m string) string {
		return `\` + m
	})
	if utf8.RuneCountInString(out) > echoWidth {
		out = string([]rune(out)[:echoWidth-utf8.RuneCountInString(echoSuffix)]) + echoSuffix
	}
	return out
}

// petPages renders one line per pet.
func petPages(pets []*model.Pet) []string {
	pg := newPaginator()
	width := len(fmt.Sprint(len(pets)))
	for i, p := range pets {
		pg.add(petLine(i+1, width, p))
	}
	return pg.Pages()
}

func petLine(index, width int, p *model.Pet) string {
	name := p.Name
	if p.Exclusive {
		name = "`[exclusive]` " + name
	}
	egg := strings.TrimSuffix(strings.ToLower(p.Egg), " egg")
	line := fmt.Sprintf("[__`%-*d`__](%s): `%-2d` `%-2s` %s :: %s",
		width, index, model.PetURL(p.Name), p.WowFactor, p.Rarity.Short(), name, egg)

	var extras []string
	if !p.Tradeable {
		extras = append(extras, "untradeable")
	}
	if p.SchoolOnly {
		extras = append(extras, p.School+" school only")
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, " + ") + ")"
	}
	return line
}

// talentPages renders one line per talent, labelled with its position
// under key. The label width comes from the last talent.
func talentPages(talents []*model.Talent, key priority.Key) []string {
	pg := newPaginator()
	if len(talents) == 0 {
		return pg.Pages()
	}
	width := len(fmt.Sprint(key.Of(talents[len(talents)-1])))
	for _, t := range talents {
		pg.add(talentLine(t, key, width))
	}
	return pg.Pages()
}

func talentLine(t *model.Talent, key priority.Key, width int) string {
	name := t.Name
	switch t.Unlocked {
	case model.Locked:
		name += " `" + lockedEmoji + "`"
	case model.Unlocked:
		name += " `" + unlockedEmoji + "`"
	}
	return fmt.Sprintf("[__`%-*d`__](%s): `%-2s` %s",
		width, key.Of(t), model.TalentURL(t.Name), t.Rarity.Short(), name)
}

// hybridPages renders the hybrids a pet produces.
func hybridPages(pairs []breeding.Pair) []string {
	pg := newPaginator()
	for _, p := range pairs {
		pg.add(fmt.Sprintf("[%s](%s) (hatched with [%s](%s))",
			p.Baby.Name, model.PetURL(p.Baby.Name), p.Other.Name, model.PetURL(p.Other.Name)))
	}
	return pg.Pages()
}

func describe(p *model.Pet) string {
	d := fmt.Sprintf("%s [%d]", p.Name, p.WowFactor)
	if p.Exclusive {
		d = "[EXCLUSIVE] " + d
	}
	return d
}

// hatchPages renders both hatch directions and the possible hybrids.
func hatchPages(r breeding.Result) []string {
	pg := newPaginator()
	for _, side := range []breeding.Side{r.First, r.Second} {
		pg.add(fmt.Sprintf("%s: %s%% (%s)", describe(side.Pet), percent(side.Chance), side.Pet.Egg))
	}
	switch n := len(r.Hybrids); {
	case n == 1:
		pg.add("")
		pg.add(fmt.Sprintf("chance to get a %s from this hatch", r.Hybrids[0].Name))
	case n > 1:
		pg.add("")
		pg.add(fmt.Sprintf("chance to get any of these %d pets from this hatch:", n))
		for _, p := range r.Hybrids {
			pg.add("- " + p.Name)
		}
	}
	return pg.Pages()
}

// percent prints a chance the short way: 50, 8.33, 72.7.
func percent(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// firstGenPages lists a pet's first generation pools.
func firstGenPages(p *model.Pet) []string {
	pg := newPaginator()
	pg.add("**talents**")
	for _, t := range p.Talents {
		pg.add(t)
	}
	pg.add("")
	pg.add("**abilities (derby talents)**")
	for _, a := range p.Abilities {
		pg.add(a)
	}
	return pg.Pages()
}
