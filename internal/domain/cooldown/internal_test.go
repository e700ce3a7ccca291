package cooldown

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBucketCache(t *testing.T) {
	Convey("Given non-positive key limits", t, func() {
		Convey("Then options keep the default size", func() {
			l := New(WithMaxKeys(0), WithMaxKeys(-3)).(*inMemoryLimiter)
			So(l.maxKeys, ShouldEqual, 10000)
			So(l.buckets, ShouldNotBeNil)
		})

		Convey("Then building the cache directly panics", func() {
			l := &inMemoryLimiter{}
			So(func() { l.mustBuckets(0) }, ShouldPanic)
		})
	})
}
