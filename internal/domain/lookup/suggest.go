package lookup

import (
	"sort"
	"strings"

	"github.com/okian/gobu/internal/domain/failure"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultSuggestLimit caps Suggest when the caller passes a non-positive limit.
const DefaultSuggestLimit = 10

// Suggestion is one completion candidate.
type Suggestion struct {
	Alias        string `json:"alias"`
	Name         string `json:"name"`
	InternalName string `json:"internal_name"`
}

// Suggest completes prefix against the alias table of entity. Each record
// appears once, under its shortest matching alias; results are ordered by
// alias length then alphabetically.
func (r *Resolver) Suggest(entity failure.Entity, prefix string, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	trie := r.petTrie
	if entity == failure.EntityTalent {
		trie = r.talentTrie
	}

	best := make(map[string]string)
	_ = trie.VisitSubtree(patricia.Prefix(strings.ToLower(strings.TrimSpace(prefix))), func(p patricia.Prefix, item patricia.Item) error {
		internal, ok := item.(string)
		if !ok {
			return nil
		}
		alias := string(p)
		if cur, seen := best[internal]; !seen || shorter(alias, cur) {
			best[internal] = alias
		}
		return nil
	})

	out := make([]Suggestion, 0, len(best))
	for internal, alias := range best {
		out = append(out, Suggestion{Alias: alias, Name: r.displayName(entity, internal), InternalName: internal})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Alias != out[j].Alias {
			return shorter(out[i].Alias, out[j].Alias)
		}
		return out[i].InternalName < out[j].InternalName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func shorter(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (r *Resolver) displayName(entity failure.Entity, internal string) string {
	if entity == failure.EntityTalent {
		if t, ok := r.cat.TalentByInternalName(internal); ok {
			return t.Name
		}
		return internal
	}
	if p, ok := r.cat.PetByInternalName(internal); ok {
		return p.Name
	}
	return internal
}
