package filter_test

import (
	"testing"

	"github.com/okian/gobu/internal/domain/catalog/catalogtest"
	"github.com/okian/gobu/internal/domain/filter"
	"github.com/okian/gobu/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr[T any](v T) *T { return &v }

func internals(pets []*model.Pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.InternalName
	}
	return out
}

func TestPetFilter(t *testing.T) {
	Convey("Given the fixture pets", t, func() {
		c := catalogtest.Catalog()
		pets := c.Pets()

		Convey("When no predicate is set", func() {
			f := filter.PetFilter{}
			So(f.Empty(), ShouldBeTrue)
			So(len(f.Apply(pets, c)), ShouldEqual, len(pets))
		})

		Convey("When filtering by school and exclusivity", func() {
			f := filter.PetFilter{School: ptr("DEATH"), Exclusive: ptr(true)}
			So(f.Empty(), ShouldBeFalse)
			So(internals(f.Apply(pets, c)), ShouldResemble, []string{"Pet-ClamoringGhulture", "Pet-ClamoringGhulture2"})
		})

		Convey("When filtering by wow factor and rarity", func() {
			f := filter.PetFilter{WowFactor: ptr(10), Rarity: ptr(model.Epic)}
			So(internals(f.Apply(pets, c)), ShouldResemble, []string{"Pet-FireCat"})
		})

		Convey("When filtering by egg case-insensitively", func() {
			f := filter.PetFilter{Egg: ptr("rain core egg")}
			So(internals(f.Apply(pets, c)), ShouldResemble, []string{"Pet-RainCore"})
		})

		Convey("When filtering by hybrid membership", func() {
			So(internals(filter.PetFilter{Hybrid: ptr(true)}.Apply(pets, c)), ShouldResemble,
				[]string{"Pet-ClamoringGhulture", "Pet-ClamoringGhulture2"})
			So(len(filter.PetFilter{Hybrid: ptr(false)}.Apply(pets, c)), ShouldEqual, 3)
		})

		Convey("When every spell substring must be present", func() {
			f := filter.PetFilter{Spells: []string{"shark", "SNAKE"}}
			So(internals(f.Apply(pets, c)), ShouldResemble, []string{"Pet-RainCore"})

			f = filter.PetFilter{Spells: []string{"shark", "meteor"}}
			So(f.Apply(pets, c), ShouldBeEmpty)
		})

		Convey("When talents are checked against talents and abilities", func() {
			mighty, _ := c.TalentByInternalName("Talent-Mighty")
			f := filter.PetFilter{Talents: []*model.Talent{mighty}}
			So(internals(f.Apply(pets, c)), ShouldResemble, []string{"Pet-RainCore", "Pet-FireCat"})

			f.Tradeable = ptr(false)
			So(f.Apply(pets, c), ShouldBeEmpty)
		})
	})
}
