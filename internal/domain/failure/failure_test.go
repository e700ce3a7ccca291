package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/gobu/internal/domain/failure"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFailureKinds(t *testing.T) {
	Convey("Given a not-found failure", t, func() {
		err := failure.NotFound(failure.EntityPet, "rain cor")

		Convey("Then it matches its sentinel and no other", func() {
			So(errors.Is(err, failure.ErrNotFound), ShouldBeTrue)
			So(errors.Is(err, failure.ErrNoneFound), ShouldBeFalse)
		})

		Convey("And it survives wrapping", func() {
			wrapped := fmt.Errorf("resolve hatch: %w", err)
			got, ok := failure.As(wrapped)
			So(ok, ShouldBeTrue)
			So(got.Input, ShouldEqual, "rain cor")
			So(got.Entity, ShouldEqual, failure.EntityPet)
		})

		Convey("And it does not offer help", func() {
			So(err.ShowHelp(), ShouldBeFalse)
		})
	})

	Convey("Given count mismatches", t, func() {
		tooMany := failure.CountMismatch(failure.EntityPet, 2, 3)
		tooFew := failure.CountMismatch(failure.EntityTalent, 2, 1)

		Convey("Then the direction follows the actual count", func() {
			So(tooMany.Direction, ShouldEqual, failure.TooMany)
			So(tooFew.Direction, ShouldEqual, failure.TooFew)
			So(tooMany.Error(), ShouldContainSubstring, "too many pets")
			So(tooFew.Error(), ShouldContainSubstring, "not enough talents")
		})

		Convey("And both offer help", func() {
			So(tooMany.ShowHelp(), ShouldBeTrue)
			So(tooFew.ShowHelp(), ShouldBeTrue)
		})
	})

	Convey("Given flag failures", t, func() {
		Convey("Then a bad format offers help but an unknown rarity does not", func() {
			So(failure.InvalidEnumValue(failure.EnumFormat, "x").ShowHelp(), ShouldBeTrue)
			So(failure.InvalidEnumValue(failure.EnumRarity, "x").ShowHelp(), ShouldBeFalse)
		})

		Convey("Then a missing value does not offer help but a repeated flag does", func() {
			So(failure.MissingFlagValue("egg").ShowHelp(), ShouldBeFalse)
			So(failure.TooManyFlagValues("egg", 1, 2).ShowHelp(), ShouldBeTrue)
			So(failure.InvalidBoolean("hybrid", "maybe").ShowHelp(), ShouldBeTrue)
		})
	})

	Convey("Given an unknown error", t, func() {
		_, ok := failure.As(errors.New("boom"))

		Convey("Then it is not a failure", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given entity wording", t, func() {
		So(failure.EntityPet.Plural(1), ShouldEqual, "pet")
		So(failure.EntityTalent.Plural(2), ShouldEqual, "talents")
		So(failure.KindBoundsIdentical.String(), ShouldEqual, "bounds_identical")
	})
}
