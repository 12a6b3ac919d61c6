package scoring_test

import (
	"errors"
	"testing"

	meal "github.com/okian/mealmax/internal/domain/meal"
	scoring "github.com/okian/mealmax/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScorer(t *testing.T) {
	Convey("Given a scorer with the default policy", t, func() {
		s := scoring.New()

		Convey("When scoring a known meal", func() {
			m := meal.Meal{ID: 1, Name: "Spaghetti Bolognese", Cuisine: "Italian", Price: 14.5, Difficulty: meal.DifficultyMed}

			Convey("Then it should match price * len(cuisine) minus the tier penalty", func() {
				got, err := s.Score(m)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 14.5*float64(len("Italian"))-2)
			})
		})

		Convey("When holding price and cuisine fixed across tiers", func() {
			base := meal.Meal{ID: 1, Name: "x", Cuisine: "Japanese", Price: 12}

			low := base
			low.Difficulty = meal.DifficultyLow
			med := base
			med.Difficulty = meal.DifficultyMed
			high := base
			high.Difficulty = meal.DifficultyHigh

			sLow, errLow := s.Score(low)
			sMed, errMed := s.Score(med)
			sHigh, errHigh := s.Score(high)

			Convey("Then scores should be strictly ordered LOW > MED > HIGH", func() {
				So(errLow, ShouldBeNil)
				So(errMed, ShouldBeNil)
				So(errHigh, ShouldBeNil)
				So(sLow, ShouldBeGreaterThan, sMed)
				So(sMed, ShouldBeGreaterThan, sHigh)
			})
		})

		Convey("When raising the price with other fields fixed", func() {
			cheap := meal.Meal{Cuisine: "Thai", Price: 5, Difficulty: meal.DifficultyLow}
			dear := cheap
			dear.Price = 50

			sCheap, _ := s.Score(cheap)
			sDear, _ := s.Score(dear)

			Convey("Then the score should not decrease", func() {
				So(sDear, ShouldBeGreaterThanOrEqualTo, sCheap)
			})
		})

		Convey("When the meal state is invalid", func() {
			Convey("And the price is not positive", func() {
				_, err := s.Score(meal.Meal{Cuisine: "Greek", Price: -1, Difficulty: meal.DifficultyLow})
				So(errors.Is(err, meal.ErrInvalidState), ShouldBeTrue)
			})

			Convey("And the difficulty is unrecognized", func() {
				_, err := s.Score(meal.Meal{Cuisine: "Greek", Price: 10, Difficulty: "EXTREME"})
				So(errors.Is(err, meal.ErrInvalidState), ShouldBeTrue)
			})
		})
	})

	Convey("Given a scorer with a custom policy", t, func() {
		Convey("When valid penalties are supplied", func() {
			s := scoring.New(scoring.WithDifficultyPenalties(map[string]float64{
				"LOW": 0, "MED": 5, "HIGH": 10,
			}))

			m := meal.Meal{Cuisine: "Peru", Price: 10, Difficulty: meal.DifficultyHigh}
			got, err := s.Score(m)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 10*4-10)
		})

		Convey("When penalties break the tier ordering they are ignored", func() {
			s := scoring.New(scoring.WithDifficultyPenalties(map[string]float64{
				"LOW": 9, "MED": 5, "HIGH": 1,
			}))

			low, _ := s.Score(meal.Meal{Cuisine: "Peru", Price: 10, Difficulty: meal.DifficultyLow})
			high, _ := s.Score(meal.Meal{Cuisine: "Peru", Price: 10, Difficulty: meal.DifficultyHigh})
			So(low, ShouldBeGreaterThan, high)
		})

		Convey("When a cuisine weight is supplied", func() {
			s := scoring.New(scoring.WithCuisineWeight(2))

			got, err := s.Score(meal.Meal{Cuisine: "Thai", Price: 10, Difficulty: meal.DifficultyLow})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 10*2*4-1)
		})
	})
}
