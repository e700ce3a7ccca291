package flags

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/okian/gobu/internal/domain/failure"
)

// Bag holds raw flag values keyed by canonical flag name, in the order
// they were given.
type Bag map[string][]string

// Has reports whether the flag was given at least once.
func (b Bag) Has(name string) bool { return len(b[name]) > 0 }

// First returns the first value of a flag.
func (b Bag) First(name string) (string, bool) {
	if v := b[name]; len(v) > 0 {
		return v[0], true
	}
	return "", false
}

// All returns every value of a flag.
func (b Bag) All(name string) []string { return b[name] }

// Empty reports whether nothing but ignored flags was given.
func (b Bag) Empty(s Schema) bool {
	for name, vals := range b {
		if len(vals) > 0 && !s.ignored(name) {
			return false
		}
	}
	return true
}

// Pattern builds the regexp that finds "name:" markers for s.
func (s Schema) Pattern() *regexp.Regexp {
	var names []string
	for _, f := range s.Flags {
		for _, n := range f.Names() {
			names = append(names, regexp.QuoteMeta(n))
		}
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return regexp.MustCompile(`(?i)(?:^|\s)(` + strings.Join(names, "|") + `)\s*:`)
}

// Parse splits raw into the positional text before the first flag and the
// flag bag. A flag with nothing after its colon is a MissingFlagValue
// failure unless it is StoreTrue; exceeding MaxArgs is TooManyFlagValues.
func Parse(s Schema, raw string) (string, Bag, error) {
	matches := s.Pattern().FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(raw), Bag{}, nil
	}

	positional := strings.TrimSpace(raw[:matches[0][0]])
	bag := Bag{}
	for i, m := range matches {
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		f, _ := s.Lookup(raw[m[2]:m[3]])
		value := strings.TrimSpace(raw[m[1]:end])
		if value == "" {
			if !f.StoreTrue {
				return "", nil, failure.MissingFlagValue(f.Name)
			}
			value = "true"
		}
		bag[f.Name] = append(bag[f.Name], value)
	}
	if err := s.checkCounts(bag); err != nil {
		return "", nil, err
	}
	return positional, bag, nil
}

// FromValues builds a bag from URL query values, matching keys against
// flag names and aliases. Unknown keys are skipped; blank values are
// skipped too, except for StoreTrue flags where they read as "true".
func FromValues(s Schema, values url.Values) (Bag, error) {
	bag := Bag{}
	for key, vals := range values {
		f, ok := s.Lookup(key)
		if !ok {
			continue
		}
		for _, v := range vals {
			v = strings.TrimSpace(v)
			if v == "" && f.StoreTrue {
				v = "true"
			}
			if v != "" {
				bag[f.Name] = append(bag[f.Name], v)
			}
		}
	}
	if err := s.checkCounts(bag); err != nil {
		return nil, err
	}
	return bag, nil
}

func (s Schema) checkCounts(bag Bag) error {
	for _, f := range s.Flags {
		if n := len(bag[f.Name]); f.MaxArgs != Variadic && n > f.MaxArgs {
			return failure.TooManyFlagValues(f.Name, f.MaxArgs, n)
		}
	}
	return nil
}
