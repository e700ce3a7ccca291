package model

import "strings"

// Wiki bases. Hybrid pages suffixed "_(Hybrid)" on the wiki are not
// detectable from the dataset, so those links can miss.
const (
	petWikiBase    = "https://www.wizard101central.com/wiki/Pet:"
	talentWikiBase = "https://www.wizard101central.com/wiki/PetAbility:"
)

// PetURL links a pet's wiki page.
func PetURL(name string) string {
	return petWikiBase + strings.Join(strings.Fields(name), "_")
}

// TalentURL links a talent's wiki page.
func TalentURL(name string) string {
	return talentWikiBase + strings.Join(strings.Fields(name), "_")
}
