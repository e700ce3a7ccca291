package model

import "strings"

// Elementals and Spirits list the schools in the order they are shown to users.
var (
	Elementals = []string{"fire", "ice", "storm"}
	Spirits    = []string{"life", "death", "myth"}
)

// Schools returns every school, elementals first.
func Schools() []string {
	out := make([]string, 0, len(Elementals)+len(Spirits))
	out = append(out, Elementals...)
	return append(out, Spirits...)
}

// IsSchool reports whether s names a school (case-insensitive).
func IsSchool(s string) bool {
	lower := strings.ToLower(s)
	for _, school := range Schools() {
		if school == lower {
			return true
		}
	}
	return false
}
