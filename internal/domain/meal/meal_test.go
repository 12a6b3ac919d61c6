package meal_test

import (
	"errors"
	"testing"

	meal "github.com/okian/mealmax/internal/domain/meal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDifficulty(t *testing.T) {
	Convey("Given difficulty strings", t, func() {
		Convey("When parsing recognized tiers", func() {
			for in, want := range map[string]meal.Difficulty{
				"LOW":   meal.DifficultyLow,
				"med":   meal.DifficultyMed,
				" High": meal.DifficultyHigh,
			} {
				d, err := meal.ParseDifficulty(in)
				So(err, ShouldBeNil)
				So(d, ShouldEqual, want)
			}
		})

		Convey("When parsing an unknown tier", func() {
			_, err := meal.ParseDifficulty("EXTREME")

			Convey("Then it should fail with the invalid state kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, meal.ErrInvalidState), ShouldBeTrue)
			})
		})
	})
}

func TestMealValidate(t *testing.T) {
	Convey("Given a meal", t, func() {
		m := meal.Meal{ID: 1, Name: "Bean Burrito", Cuisine: "Mexican", Price: 9.75, Difficulty: meal.DifficultyLow}

		Convey("When its attributes are valid", func() {
			So(m.Validate(), ShouldBeNil)
		})

		Convey("When the price is not positive", func() {
			m.Price = 0

			Convey("Then validation should fail with the invalid state kind", func() {
				So(errors.Is(m.Validate(), meal.ErrInvalidState), ShouldBeTrue)
			})
		})

		Convey("When the difficulty is unrecognized", func() {
			m.Difficulty = "EXTREME"

			Convey("Then validation should fail with the invalid state kind", func() {
				So(errors.Is(m.Validate(), meal.ErrInvalidState), ShouldBeTrue)
			})
		})
	})
}

func TestWinPct(t *testing.T) {
	Convey("Given battle counters", t, func() {
		Convey("When no battles were fought", func() {
			m := meal.Meal{}
			So(m.WinPct(), ShouldEqual, 0)
		})

		Convey("When some battles were fought", func() {
			m := meal.Meal{Battles: 4, Wins: 3}
			So(m.WinPct(), ShouldEqual, 0.75)
		})

		Convey("Then the ratio should stay within [0,1]", func() {
			m := meal.Meal{Battles: 7, Wins: 7}
			So(m.WinPct(), ShouldBeLessThanOrEqualTo, 1)
			So(m.WinPct(), ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}
