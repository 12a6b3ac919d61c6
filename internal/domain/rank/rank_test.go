package rank_test

import (
	"errors"
	"testing"

	meal "github.com/okian/mealmax/internal/domain/meal"
	rank "github.com/okian/mealmax/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleCatalog() []meal.Meal {
	return []meal.Meal{
		{ID: 1, Name: "Spaghetti", Cuisine: "Italian", Price: 14.5, Difficulty: meal.DifficultyMed, Battles: 4, Wins: 3},
		{ID: 2, Name: "Burrito", Cuisine: "Mexican", Price: 9.75, Difficulty: meal.DifficultyLow, Battles: 10, Wins: 5},
		{ID: 3, Name: "Ramen", Cuisine: "Japanese", Price: 12, Difficulty: meal.DifficultyHigh, Battles: 0, Wins: 0},
		{ID: 4, Name: "Lost Dish", Cuisine: "Fusion", Price: 20, Difficulty: meal.DifficultyMed, Battles: 2, Wins: 0, Deleted: true},
		{ID: 5, Name: "Pad Thai", Cuisine: "Thai", Price: 11, Difficulty: meal.DifficultyLow, Battles: 4, Wins: 3},
	}
}

func TestParseMetric(t *testing.T) {
	Convey("Given metric names", t, func() {
		Convey("Then known metrics should parse", func() {
			m, err := rank.ParseMetric("wins")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rank.MetricWins)

			m, err = rank.ParseMetric("WIN_PCT")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rank.MetricWinPct)
		})

		Convey("And an empty metric should default to wins", func() {
			m, err := rank.ParseMetric("")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rank.MetricWins)
		})

		Convey("And unknown metrics should fail", func() {
			_, err := rank.ParseMetric("losses")
			So(errors.Is(err, rank.ErrInvalidMetric), ShouldBeTrue)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	Convey("Given a catalog with active and deleted meals", t, func() {
		catalog := sampleCatalog()

		Convey("When ranking by wins", func() {
			entries := rank.Leaderboard(catalog, rank.MetricWins)

			Convey("Then deleted meals should be excluded", func() {
				So(entries, ShouldHaveLength, 4)
				for _, e := range entries {
					So(e.ID, ShouldNotEqual, 4)
				}
			})

			Convey("And output should be descending with ties broken by ascending id", func() {
				So(entries[0].ID, ShouldEqual, 2) // 5 wins
				So(entries[1].ID, ShouldEqual, 1) // 3 wins, lower id
				So(entries[2].ID, ShouldEqual, 5) // 3 wins
				So(entries[3].ID, ShouldEqual, 3) // 0 wins
			})

			Convey("And ranks should be sequential from 1", func() {
				for i, e := range entries {
					So(e.Rank, ShouldEqual, i+1)
				}
			})
		})

		Convey("When ranking by win percentage", func() {
			entries := rank.Leaderboard(catalog, rank.MetricWinPct)

			Convey("Then the order should follow the ratio", func() {
				So(entries[0].ID, ShouldEqual, 1) // 0.75, lower id
				So(entries[1].ID, ShouldEqual, 5) // 0.75
				So(entries[2].ID, ShouldEqual, 2) // 0.5
				So(entries[3].ID, ShouldEqual, 3) // 0
			})

			Convey("And win_pct should stay in [0,1], 0 when unfought", func() {
				for _, e := range entries {
					So(e.WinPct, ShouldBeGreaterThanOrEqualTo, 0)
					So(e.WinPct, ShouldBeLessThanOrEqualTo, 1)
				}
				So(entries[3].Battles, ShouldEqual, 0)
				So(entries[3].WinPct, ShouldEqual, 0)
			})
		})

		Convey("When the catalog is empty", func() {
			So(rank.Leaderboard(nil, rank.MetricWins), ShouldBeEmpty)
		})

		Convey("Then the input slice should not be reordered", func() {
			_ = rank.Leaderboard(catalog, rank.MetricWins)
			So(catalog[0].ID, ShouldEqual, 1)
			So(catalog[4].ID, ShouldEqual, 5)
		})
	})
}
