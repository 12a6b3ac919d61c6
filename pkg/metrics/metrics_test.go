package metrics_test

import (
	"testing"

	"github.com/okian/mealmax/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager with a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("arena"),
			metrics.WithPrometheusRegistry(reg),
		)

		Convey("Then it should be constructed", func() {
			So(m, ShouldNotBeNil)
		})

		Convey("And the registry should gather registered metrics", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given the global record helpers", t, func() {
		Convey("Then recording should not panic", func() {
			So(func() {
				metrics.RecordBattle(false)
				metrics.RecordBattle(true)
				metrics.ObserveBattleScore(42.5)
				metrics.RecordBattleError("insufficient_combatants")
				metrics.UpdateCombatantsStaged(2)
				metrics.UpdateMealsActive(10)
				metrics.RecordLeaderboardRead("wins")
				metrics.RecordLeaderboardError()
				metrics.RecordRandomnessDraw(12.0)
				metrics.RecordRandomnessError()
				metrics.RecordStorageQuery("create")
				metrics.RecordStorageError("create")
				metrics.RecordHTTPRequest("battle", "POST", "200")
				metrics.RecordHTTPRequestDuration("battle", "POST", "200", 3.2)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("And the global registry should be available", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
