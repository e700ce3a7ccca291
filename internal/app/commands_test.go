package service_test

import (
	"context"
	"strings"
	"testing"

	service "github.com/okian/gobu/internal/app"
	"github.com/okian/gobu/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	lock   = "\U0001F512\uFE0F"
	unlock = "\U0001F513\uFE0F"
)

func TestExecute_Hatch(t *testing.T) {
	ctx := context.Background()
	svc := started()
	defer func() { _ = svc.Stop(ctx) }()

	Convey("Given two pets with a hybrid between them", t, func() {
		reply := svc.Execute(ctx, "hatch rain core, ghulture")

		Convey("Then both chances and the single hybrid name are shown", func() {
			So(reply.Command, ShouldEqual, "hatch")
			So(reply.Outcome, ShouldEqual, metrics.OutcomeOK)
			So(reply.Pages, ShouldResemble, []string{
				"Rain Core [3]: 57.14% (Rain Core Egg)\n" +
					"Ghulture [5]: 42.86% (Ghulture Egg)\n" +
					"\n" +
					"chance to get a Clamoring Ghulture from this hatch",
			})
		})
	})

	Convey("Given the same pet twice", t, func() {
		reply := svc.Execute(ctx, "hatch rain core, rain core")

		Convey("Then it is an even split", func() {
			So(reply.Pages, ShouldResemble, []string{
				"Rain Core [3]: 50.0% (Rain Core Egg)\nRain Core [3]: 50.0% (Rain Core Egg)",
			})
		})
	})

	Convey("Given an exclusive pet", t, func() {
		reply := svc.Execute(ctx, "hatch fire cat\nclamoring ghulture")

		Convey("Then it is tagged", func() {
			So(reply.Pages[0], ShouldContainSubstring, "[EXCLUSIVE] Clamoring Ghulture [8]: ")
		})
	})

	Convey("Given the wrong number of pets", t, func() {
		few := svc.Execute(ctx, "hatch rain core")
		many := svc.Execute(ctx, "hatch rain core, ghulture, fire cat")

		Convey("Then the bound is reported and help offered", func() {
			So(few.Text, ShouldEqual, "need at least 2 pets")
			So(many.Text, ShouldEqual, "only need 2 pets")
			So(few.ShowHelp, ShouldBeTrue)
			So(many.Outcome, ShouldEqual, metrics.OutcomeFailure)
		})
	})

	Convey("Given a service splitting lists on semicolons", t, func() {
		semi := started(service.WithListDelimiter(";"))
		defer func() { _ = semi.Stop(ctx) }()

		Convey("Then hatch pairs and prioritise lists use it", func() {
			So(semi.Execute(ctx, "hatch rain core; ghulture").Pages[0], ShouldStartWith, "Rain Core [3]: 57.14%")
			So(semi.Execute(ctx, "hatch rain core, ghulture").Text, ShouldEqual, "need at least 2 pets")

			ts, err := semi.Prioritise(ctx, "storm-giver; mighty")
			So(err, ShouldBeNil)
			So(ts, ShouldHaveLength, 2)
		})
	})

	Convey("Given an unknown pet", t, func() {
		reply := svc.Execute(ctx, "hatch rain core, rain")

		Convey("Then the miss is echoed with completions and no help", func() {
			So(reply.Text, ShouldStartWith, `dont know a pet like "rain"`)
			So(reply.Text, ShouldContainSubstring, "did you mean `rain core`?")
			So(reply.ShowHelp, ShouldBeFalse)
		})
	})
}

func TestExecute_Pets(t *testing.T) {
	ctx := context.Background()
	svc := started()
	defer func() { _ = svc.Stop(ctx) }()

	Convey("Given a name fragment", t, func() {
		reply := svc.Execute(ctx, "pets rain")

		Convey("Then matching pets are listed one per line", func() {
			So(reply.Pages, ShouldResemble, []string{
				"[__`1`__](https://www.wizard101central.com/wiki/Pet:Rain_Core): `3 ` `C ` Rain Core :: rain core",
			})
		})
	})

	Convey("Given a fragment matching several records", t, func() {
		reply := svc.Execute(ctx, "pet GHULTURE")
		lines := strings.Split(reply.Pages[0], "\n")

		Convey("Then every record is listed with its tags", func() {
			So(lines, ShouldHaveLength, 3)
			So(lines[1], ShouldEqual, "[__`2`__](https://www.wizard101central.com/wiki/Pet:Clamoring_Ghulture): "+
				"`8 ` `R ` `[exclusive]` Clamoring Ghulture :: clamoring ghulture (untradeable + death school only)")
			So(lines[2], ShouldEndWith, ":: clamoring ghulture (untradeable)")
		})
	})

	Convey("Given only flags", t, func() {
		reply := svc.Execute(ctx, "pets school: death exclusive: no")

		Convey("Then all pets are filtered", func() {
			So(reply.Pages, ShouldHaveLength, 1)
			So(reply.Pages[0], ShouldContainSubstring, " Ghulture :: ghulture")
			So(strings.Count(reply.Pages[0], "\n"), ShouldEqual, 0)
		})
	})

	Convey("Given flags that match nothing", t, func() {
		reply := svc.Execute(ctx, "pets rain school: fire")

		Convey("Then it is a soft empty", func() {
			So(reply.Text, ShouldEqual, "no pets found with those flags")
			So(reply.Outcome, ShouldEqual, metrics.OutcomeEmpty)
		})
	})

	Convey("Given bad flag values", t, func() {
		So(svc.Execute(ctx, "pets wow-factor: 11").Text, ShouldEqual, "wow factors are between 0 and 10")
		So(svc.Execute(ctx, "pets school: water").Text, ShouldEqual,
			"dont know a school like \"water\"\ncan be any of this: fire, ice, storm, life, death, myth")
		So(svc.Execute(ctx, "pets egg: dragon").Text, ShouldEqual, `dont know an egg like "dragon"`)

		hybrid := svc.Execute(ctx, "pets hybrid: maybe")
		So(hybrid.Text, ShouldEqual, "type true/false for the `hybrid` flag.")
		So(hybrid.ShowHelp, ShouldBeTrue)

		twice := svc.Execute(ctx, "pets wow-factor: 3 wow-factor: 4")
		So(twice.Text, ShouldEqual, "`wow-factor` can only be specified once")
		So(twice.ShowHelp, ShouldBeTrue)

		missing := svc.Execute(ctx, "pets egg:")
		So(missing.Text, ShouldEqual, "`egg` is missing a value")
		So(missing.ShowHelp, ShouldBeFalse)
	})

	Convey("Given a fragment that matches nothing", t, func() {
		reply := svc.Execute(ctx, "pets a_b")

		Convey("Then the escaped input is echoed", func() {
			So(reply.Text, ShouldEqual, `no pets found for "a\_b"`)
		})
	})

	Convey("Given no argument", t, func() {
		reply := svc.Execute(ctx, "pets")

		Convey("Then the command help is shown", func() {
			So(reply.Pages, ShouldHaveLength, 1)
			So(reply.Pages[0], ShouldStartWith, "**>?pets [pets] [flags]**")
		})
	})
}

func TestExecute_Talents(t *testing.T) {
	ctx := context.Background()
	svc := started()
	defer func() { _ = svc.Stop(ctx) }()

	Convey("Given an upper bound only", t, func() {
		reply := svc.Execute(ctx, "talents above: spell-proof")

		Convey("Then everything up to it is listed, opening on the last page", func() {
			So(reply.Pages, ShouldResemble, []string{
				"[__`5 `__](https://www.wizard101central.com/wiki/PetAbility:Fairy_Friend): `C ` Fairy Friend\n" +
					"[__`10`__](https://www.wizard101central.com/wiki/PetAbility:Mighty): `C ` Mighty `" + lock + "`\n" +
					"[__`11`__](https://www.wizard101central.com/wiki/PetAbility:Mighty): `C ` Mighty `" + unlock + "`\n" +
					"[__`20`__](https://www.wizard101central.com/wiki/PetAbility:Spell-Proof): `UC` Spell-Proof",
			})
			So(reply.Start, ShouldEqual, len(reply.Pages)-1)
		})
	})

	Convey("Given the absolute format", t, func() {
		reply := svc.Execute(ctx, "ta below: no pain, no gain format: abs")

		Convey("Then positions are absolute priorities", func() {
			lines := strings.Split(reply.Pages[0], "\n")
			So(lines[0], ShouldStartWith, "[__`40 `__]")
			So(lines[len(lines)-1], ShouldStartWith, "[__`200`__]")
			So(reply.Start, ShouldEqual, 0)
		})
	})

	Convey("Given no usable flags", t, func() {
		for _, text := range []string{"talents", "talents format: abs", "talents whatever"} {
			reply := svc.Execute(ctx, text)
			So(reply.Text, ShouldEqual, "i dont know any of those flag or i didnt get enough.")
			So(reply.ShowHelp, ShouldBeTrue)
		}
	})

	Convey("Given bad bounds", t, func() {
		So(svc.Execute(ctx, "talents between: mighty, mighty").Text, ShouldEqual,
			"um those are the same talent so there's nothing between them")
		So(svc.Execute(ctx, "talents between: mighty, storm-giver above: spell-proof").Text, ShouldEqual,
			"between is mutually exclusive with above and below")
		So(svc.Execute(ctx, "talents below: storm-giver above: mighty").Text, ShouldEqual,
			"both talents have to be in-range of each other")
		So(svc.Execute(ctx, "talents between: mighty").Text, ShouldEqual, "need at least 2 talents")
	})

	Convey("Given filters that leave only the boundaries", t, func() {
		reply := svc.Execute(ctx, "talents between: spell-proof, death-dealer rarity: uncommon")

		Convey("Then nothing is found", func() {
			So(reply.Text, ShouldEqual, "no talents found")
		})
	})

	Convey("Given a lock filter", t, func() {
		no := svc.Execute(ctx, "talents between: fairy friend, spell-proof unlockable: no")
		yes := svc.Execute(ctx, "talents between: fairy friend, spell-proof lockable: yes")

		So(no.Text, ShouldEqual, "no talents found")
		So(strings.Count(yes.Pages[0], "\n"), ShouldEqual, 3)
	})

	Convey("Given a bad format", t, func() {
		reply := svc.Execute(ctx, "talents above: mighty format: sideways")

		So(reply.Text, ShouldEqual, `put "relative" or "absolute" for the format.`)
		So(reply.ShowHelp, ShouldBeTrue)
	})

	Convey("Given a partial talent name", t, func() {
		reply := svc.Execute(ctx, "talents above: migh")

		So(reply.Text, ShouldStartWith, `dont know a talent like "migh"`)
		So(reply.Text, ShouldContainSubstring, "did you mean `mighty`")
	})
}

func TestExecute_Subcommands(t *testing.T) {
	ctx := context.Background()
	svc := started()
	defer func() { _ = svc.Stop(ctx) }()

	Convey("Given prioritise", t, func() {
		reply := svc.Execute(ctx, "talents p storm-giver, mighty, spell-proof, mighty")

		Convey("Then the talents are deduplicated and ordered", func() {
			So(reply.Command, ShouldEqual, "talents prioritise")
			lines := strings.Split(reply.Pages[0], "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldStartWith, "[__`10`__]")
			So(lines[2], ShouldEqual, "[__`50`__](https://www.wizard101central.com/wiki/PetAbility:Storm-Giver): `E ` Storm-Giver")
		})
	})

	Convey("Given firstgen", t, func() {
		reply := svc.Execute(ctx, "talents fg rain core")

		So(reply.Command, ShouldEqual, "talents firstgen")
		So(reply.Pages, ShouldResemble, []string{
			"**talents**\nSpell-Proof\nMighty\n\n**abilities (derby talents)**\nQuickstep",
		})
	})

	Convey("Given hybrids", t, func() {
		reply := svc.Execute(ctx, "hybrids rain core")

		So(reply.Pages, ShouldResemble, []string{
			"[Clamoring Ghulture](https://www.wizard101central.com/wiki/Pet:Clamoring_Ghulture) " +
				"(hatched with [Ghulture](https://www.wizard101central.com/wiki/Pet:Ghulture))",
		})
		So(svc.Execute(ctx, "hybrids fire cat").Text, ShouldEqual, "no hybrids for this pet")
	})

	Convey("Given an unknown command", t, func() {
		reply := svc.Execute(ctx, "dance please")

		So(reply.Silent(), ShouldBeTrue)
		So(reply.Outcome, ShouldEqual, metrics.OutcomeUnknown)
	})
}

func TestExecute_Help(t *testing.T) {
	ctx := context.Background()
	svc := started(service.WithPrefix("!"))
	defer func() { _ = svc.Stop(ctx) }()

	Convey("Given help without a topic", t, func() {
		reply := svc.Execute(ctx, "help")

		Convey("Then every category and command has a page", func() {
			So(reply.Pages, ShouldHaveLength, 7)
			So(reply.Pages[0], ShouldStartWith, "**Pets**\npet commands.")
			So(reply.Pages[0], ShouldContainSubstring, "├`talents firstgen`: show a pet's first gen pool.")
			So(reply.Pages[0], ShouldContainSubstring, "└`talents prioritise`: sort a given list of talents by priority.")
			So(reply.Pages[0], ShouldEndWith, "type !help <command> for more information on a specific command.")
		})
	})

	Convey("Given a command topic", t, func() {
		page := svc.Help("pets").Pages[0]

		Convey("Then flags render with their hints", func() {
			So(page, ShouldContainSubstring, "`spell:` searches pet item cards (inaccurate). (variadic)")
			So(page, ShouldContainSubstring, "`exclusive:` true/false. whether the pet is exclusive.")
			So(page, ShouldContainSubstring, "**Examples**\n!pets rain core")
		})
	})

	Convey("Given a group topic", t, func() {
		page := svc.Help("talents").Pages[0]

		So(page, ShouldContainSubstring, "`unlockable:` pass `false` to filter out locked/unlocked talents.")
		So(page, ShouldContainSubstring, "`rarity:` only include talents of this rarity. (variadic)")
		So(page, ShouldContainSubstring, "**Aliases**\n`talent` & `ta`")
		So(page, ShouldContainSubstring, "!talents prioritise death-dealer, spell-proof, mighty")
		So(page, ShouldContainSubstring, "**Subcommands**\n`talents firstgen`: show a pet's first gen pool.")
	})

	Convey("Given a subcommand topic", t, func() {
		page := svc.Help("talents pool").Pages[0]

		So(page, ShouldStartWith, "**!talents firstgen <pet>**")
		So(page, ShouldContainSubstring, "`fg` & `pool`")
	})

	Convey("Given an unknown topic", t, func() {
		So(svc.Execute(ctx, "help dance").Text, ShouldEqual, "dont have a command like that")
	})

	Convey("Given a mention", t, func() {
		So(service.MentionText(svc.Prefix()), ShouldEqual, "my prefix is `!` or you can mention me")
	})
}
