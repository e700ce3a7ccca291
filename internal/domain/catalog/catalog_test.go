package catalog_test

import (
	"testing"

	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/catalog/catalogtest"
	"github.com/okian/gobu/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTalentAliases(t *testing.T) {
	Convey("Given the fixture catalog", t, func() {
		c := catalogtest.Catalog()

		resolve := func(alias string) string {
			tal, ok := c.TalentByAlias(alias)
			if !ok {
				return ""
			}
			return tal.InternalName
		}

		Convey("Then the bare name of a locked/unlocked pair is the locked variant", func() {
			So(resolve("mighty"), ShouldEqual, "Talent-Mighty")
		})

		Convey("And lock-state spellings pick the matching variant", func() {
			So(resolve("mighty unlocked"), ShouldEqual, "Talent-Mighty-Unlocked")
			So(resolve("mighty (unlocked)"), ShouldEqual, "Talent-Mighty-Unlocked")
			So(resolve("unlocked mighty"), ShouldEqual, "Talent-Mighty-Unlocked")
			So(resolve("locked mighty"), ShouldEqual, "Talent-Mighty")
			So(resolve("mighty (locked)"), ShouldEqual, "Talent-Mighty")
		})

		Convey("And an unlocked talent without a twin keeps its bare name", func() {
			So(resolve("frozen kraken trained"), ShouldEqual, "Talent-FKT-Unlocked")
		})

		Convey("And hyphens can be dropped or spaced", func() {
			So(resolve("death-dealer"), ShouldEqual, "Talent-DeathDealer")
			So(resolve("deathdealer"), ShouldEqual, "Talent-DeathDealer")
			So(resolve("death dealer"), ShouldEqual, "Talent-DeathDealer")
		})

		Convey("And commas can be dropped", func() {
			So(resolve("no pain no gain"), ShouldEqual, "Talent-NoPain")
			So(resolve("no pain, no gain"), ShouldEqual, "Talent-NoPain")
		})

		Convey("And spell defy spellings reach spell-defying", func() {
			for _, a := range []string{"spelldefy", "spell defy", "spell-defy", "spell-defying"} {
				So(resolve(a), ShouldEqual, catalog.SpellDefyingInternalName)
			}
		})

		Convey("And every alias maps to exactly one record", func() {
			seen := map[string]string{}
			c.TalentAliases(func(alias string, tal *model.Talent) {
				prev, ok := seen[alias]
				So(!ok || prev == tal.InternalName, ShouldBeTrue)
				seen[alias] = tal.InternalName
			})
			So(len(seen), ShouldEqual, c.Stats().TalentAliases)
		})
	})

	Convey("Given a dataset without the spell defying talent", t, func() {
		ds := catalogtest.Dataset()
		ds.Talents = ds.Talents[:1]

		Convey("Then building still succeeds", func() {
			c := catalog.New(ds)
			_, ok := c.TalentByAlias("spell defy")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMorphs(t *testing.T) {
	Convey("Given exceptions listed only on Rain Core", t, func() {
		c := catalogtest.Catalog()

		Convey("Then Ghulture gets the mirrored entries", func() {
			So(c.Morphs("Pet-Ghulture"), ShouldResemble, []model.MorphException{
				{Other: "Pet-RainCore", Baby: "Pet-ClamoringGhulture"},
				{Other: "Pet-RainCore", Baby: "Pet-ClamoringGhulture2"},
			})
		})

		Convey("And the relation is symmetric for every pet", func() {
			for _, p := range c.Pets() {
				for _, m := range c.Morphs(p.InternalName) {
					So(c.Morphs(m.Other), ShouldContain, model.MorphException{Other: p.InternalName, Baby: m.Baby})
				}
			}
		})

		Convey("And babies form the hybrid set", func() {
			So(c.IsHybrid("Pet-ClamoringGhulture"), ShouldBeTrue)
			So(c.IsHybrid("Pet-ClamoringGhulture2"), ShouldBeTrue)
			So(c.IsHybrid("Pet-RainCore"), ShouldBeFalse)
			So(c.Stats().Hybrids, ShouldEqual, 2)
		})
	})

	Convey("Given both parents list the same exception", t, func() {
		ds := catalogtest.Dataset()
		ds.Pets[1].MorphingExceptions = []model.MorphException{
			{Other: "Pet-RainCore", Baby: "Pet-ClamoringGhulture"},
		}
		c := catalog.New(ds)

		Convey("Then no entry is duplicated", func() {
			So(len(c.Morphs("Pet-Ghulture")), ShouldEqual, 2)
			So(len(c.Morphs("Pet-RainCore")), ShouldEqual, 2)
		})
	})

	Convey("Given a pet that morphs with itself", t, func() {
		ds := catalogtest.Dataset()
		ds.Pets[4].MorphingExceptions = []model.MorphException{
			{Other: "Pet-FireCat", Baby: "Pet-Ghulture"},
		}
		c := catalog.New(ds)

		Convey("Then the exception appears once", func() {
			So(c.Morphs("Pet-FireCat"), ShouldResemble, []model.MorphException{
				{Other: "Pet-FireCat", Baby: "Pet-Ghulture"},
			})
		})
	})
}

func TestCatalogIndices(t *testing.T) {
	Convey("Given the fixture catalog", t, func() {
		c := catalogtest.Catalog()

		Convey("Then internal names are case-sensitive", func() {
			_, ok := c.PetByInternalName("Pet-RainCore")
			So(ok, ShouldBeTrue)
			_, ok = c.PetByInternalName("pet-raincore")
			So(ok, ShouldBeFalse)
		})

		Convey("And the later duplicate display name wins the pet alias", func() {
			p, ok := c.PetByAlias("clamoring ghulture")
			So(ok, ShouldBeTrue)
			So(p.InternalName, ShouldEqual, "Pet-ClamoringGhulture2")
		})

		Convey("And talents are sorted by each priority key", func() {
			byPrio := c.TalentsByPriority()
			So(byPrio[0].Name, ShouldEqual, "Fairy Friend")
			So(byPrio[len(byPrio)-1].Name, ShouldEqual, "Frozen Kraken Trained")
			byAbs := c.TalentsByAbsolutePriority()
			So(byAbs[0].Name, ShouldEqual, "Storm-Giver")
			So(byAbs[len(byAbs)-1].Name, ShouldEqual, "Fairy Friend")
		})

		Convey("And eggs are matched case-insensitively", func() {
			So(c.HasEgg("rain core egg"), ShouldBeTrue)
			So(c.HasEgg("Dragon Egg"), ShouldBeFalse)
			So(c.Stats().Eggs, ShouldEqual, 4)
		})
	})
}
