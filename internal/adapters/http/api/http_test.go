package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/mealmax/internal/adapters/http/api"
	"github.com/okian/mealmax/internal/adapters/randomness"
	"github.com/okian/mealmax/internal/adapters/storage"
	battle "github.com/okian/mealmax/internal/domain/battle"
	meal "github.com/okian/mealmax/internal/domain/meal"
	rank "github.com/okian/mealmax/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

// mockService implements api.Dependencies for handler tests.
type mockService struct {
	meals       map[string]meal.Meal
	staged      []meal.Meal
	battleRes   battle.Result
	battleErr   error
	prepErr     error
	rankErr     error
	cleared     bool
	leaderboard []rank.Entry
}

func (m *mockService) CreateMeal(_ context.Context, name, cuisine string, price float64, difficulty string) (meal.Meal, error) {
	tier, err := meal.ParseDifficulty(difficulty)
	if err != nil {
		return meal.Meal{}, err
	}
	if _, ok := m.meals[name]; ok {
		return meal.Meal{}, storage.ErrDuplicateName
	}
	created := meal.Meal{ID: int64(len(m.meals) + 1), Name: name, Cuisine: cuisine, Price: price, Difficulty: tier}
	if err := created.Validate(); err != nil {
		return meal.Meal{}, err
	}
	if m.meals == nil {
		m.meals = make(map[string]meal.Meal)
	}
	m.meals[name] = created
	return created, nil
}

func (m *mockService) Meal(_ context.Context, id int64) (meal.Meal, error) {
	for _, v := range m.meals {
		if v.ID == id {
			return v, nil
		}
	}
	return meal.Meal{}, storage.ErrNotFound
}

func (m *mockService) MealByName(_ context.Context, name string) (meal.Meal, error) {
	if v, ok := m.meals[name]; ok {
		return v, nil
	}
	return meal.Meal{}, storage.ErrNotFound
}

func (m *mockService) DeleteMeal(_ context.Context, id int64) error {
	for k, v := range m.meals {
		if v.ID == id {
			delete(m.meals, k)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *mockService) PrepCombatant(_ context.Context, name string) ([]meal.Meal, error) {
	if m.prepErr != nil {
		return nil, m.prepErr
	}
	v, ok := m.meals[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	m.staged = append(m.staged, v)
	return m.staged, nil
}

func (m *mockService) Combatants(_ context.Context) []meal.Meal { return m.staged }

func (m *mockService) ClearCombatants(_ context.Context) {
	m.cleared = true
	m.staged = nil
}

func (m *mockService) Battle(_ context.Context) (battle.Result, error) {
	return m.battleRes, m.battleErr
}

func (m *mockService) Leaderboard(_ context.Context, _ rank.Metric) ([]rank.Entry, error) {
	return m.leaderboard, m.rankErr
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"combatantsStaged": len(m.staged)}
}

func newTestServer(svc *mockService) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestMealHandlers(t *testing.T) {
	Convey("Given the API server", t, func() {
		svc := &mockService{meals: map[string]meal.Meal{}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When creating a meal", func() {
			resp, err := http.Post(srv.URL+"/meals", "application/json",
				strings.NewReader(`{"meal":"Burrito","cuisine":"Mexican","price":9.75,"difficulty":"LOW"}`))
			So(err, ShouldBeNil)

			Convey("Then it should be created", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["meal"], ShouldEqual, "Burrito")
			})
		})

		Convey("When creating a meal with a bad payload", func() {
			resp, err := http.Post(srv.URL+"/meals", "application/json", strings.NewReader(`{`))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When creating a duplicate meal", func() {
			_, err := svc.CreateMeal(context.Background(), "Taken", "Thai", 10, "LOW")
			So(err, ShouldBeNil)

			resp, err := http.Post(srv.URL+"/meals", "application/json",
				strings.NewReader(`{"meal":"Taken","cuisine":"Thai","price":10,"difficulty":"LOW"}`))
			So(err, ShouldBeNil)

			Convey("Then it should conflict with a stable code", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusConflict)
				var body map[string]string
				decodeBody(t, resp, &body)
				So(body["code"], ShouldEqual, "duplicate_meal")
			})
		})

		Convey("When creating a meal with invalid difficulty", func() {
			resp, err := http.Post(srv.URL+"/meals", "application/json",
				strings.NewReader(`{"meal":"X","cuisine":"Thai","price":10,"difficulty":"EXTREME"}`))
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "invalid_meal_state")
		})

		Convey("When fetching a meal by id and by name", func() {
			created, err := svc.CreateMeal(context.Background(), "Ramen", "Japanese", 12, "HIGH")
			So(err, ShouldBeNil)

			resp, err := http.Get(srv.URL + "/meals/1")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var byID map[string]any
			decodeBody(t, resp, &byID)
			So(byID["meal"], ShouldEqual, created.Name)

			resp, err = http.Get(srv.URL + "/meals/by-name/Ramen")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When fetching a missing meal", func() {
			resp, err := http.Get(srv.URL + "/meals/404")
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			So(body["code"], ShouldEqual, "not_found")
		})

		Convey("When deleting a meal", func() {
			_, err := svc.CreateMeal(context.Background(), "Doomed", "Greek", 8, "MED")
			So(err, ShouldBeNil)

			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/meals/1", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}

func TestCombatantHandlers(t *testing.T) {
	Convey("Given the API server with catalog meals", t, func() {
		svc := &mockService{meals: map[string]meal.Meal{
			"A": {ID: 1, Name: "A", Cuisine: "Fusion", Price: 10, Difficulty: meal.DifficultyLow},
		}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When prepping a combatant", func() {
			resp, err := http.Post(srv.URL+"/prep-combatant", "application/json",
				strings.NewReader(`{"meal":"A"}`))
			So(err, ShouldBeNil)

			Convey("Then the roster after insertion is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string][]map[string]any
				decodeBody(t, resp, &body)
				So(body["combatants"], ShouldHaveLength, 1)
				So(body["combatants"][0]["meal"], ShouldEqual, "A")
			})
		})

		Convey("When prepping an unknown meal", func() {
			resp, err := http.Post(srv.URL+"/prep-combatant", "application/json",
				strings.NewReader(`{"meal":"Missing"}`))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When prepping into a full roster", func() {
			svc.prepErr = battle.ErrRosterFull
			resp, err := http.Post(srv.URL+"/prep-combatant", "application/json",
				strings.NewReader(`{"meal":"A"}`))
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "roster_full")
		})

		Convey("When prepping a duplicate combatant", func() {
			svc.prepErr = battle.ErrDuplicateCombatant
			resp, err := http.Post(srv.URL+"/prep-combatant", "application/json",
				strings.NewReader(`{"meal":"A"}`))
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "duplicate_combatant")
		})

		Convey("When listing and clearing combatants", func() {
			svc.staged = []meal.Meal{svc.meals["A"]}

			resp, err := http.Get(srv.URL + "/combatants")
			So(err, ShouldBeNil)
			var body map[string][]map[string]any
			decodeBody(t, resp, &body)
			So(body["combatants"], ShouldHaveLength, 1)

			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/clear-combatants", nil)
			So(err, ShouldBeNil)
			clearResp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer func() { _ = clearResp.Body.Close() }()
			So(clearResp.StatusCode, ShouldEqual, http.StatusOK)
			So(svc.cleared, ShouldBeTrue)
		})
	})
}

func TestBattleHandler(t *testing.T) {
	Convey("Given the API server", t, func() {
		svc := &mockService{}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When the battle resolves", func() {
			svc.battleRes = battle.Result{
				ID:          "battle-1",
				Winner:      meal.Meal{ID: 1, Name: "A"},
				Loser:       meal.Meal{ID: 2, Name: "B"},
				WinnerScore: 59,
				LoserScore:  57,
			}
			resp, err := http.Post(srv.URL+"/battle", "application/json", nil)
			So(err, ShouldBeNil)

			Convey("Then winner, loser and scores are returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["winner"], ShouldEqual, "A")
				So(body["loser"], ShouldEqual, "B")
				So(body["winner_score"], ShouldEqual, 59.0)
				So(body["battle_id"], ShouldEqual, "battle-1")
			})
		})

		Convey("When there are not enough combatants", func() {
			svc.battleErr = battle.ErrInsufficientCombatants
			resp, err := http.Post(srv.URL+"/battle", "application/json", nil)
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "insufficient_combatants")
		})

		Convey("When the randomness source is down", func() {
			svc.battleErr = randomness.ErrUnavailable
			resp, err := http.Post(srv.URL+"/battle", "application/json", nil)
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
			So(body["code"], ShouldEqual, "resolution_unavailable")
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/battle")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestLeaderboardHandler(t *testing.T) {
	Convey("Given the API server", t, func() {
		svc := &mockService{leaderboard: []rank.Entry{
			{Rank: 1, ID: 1, Name: "Champ", Wins: 5, WinPct: 1},
			{Rank: 2, ID: 2, Name: "Runner-up", Wins: 2, WinPct: 0.5},
		}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When requesting the leaderboard by wins", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?sort=wins")
			So(err, ShouldBeNil)

			Convey("Then entries are returned in order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string][]map[string]any
				decodeBody(t, resp, &body)
				So(body["leaderboard"], ShouldHaveLength, 2)
				So(body["leaderboard"][0]["meal"], ShouldEqual, "Champ")
			})
		})

		Convey("When requesting an unknown sort metric", func() {
			resp, err := http.Get(srv.URL + "/leaderboard?sort=losses")
			So(err, ShouldBeNil)

			var body map[string]string
			decodeBody(t, resp, &body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "invalid_metric")
		})

		Convey("When requesting stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var body map[string]any
			decodeBody(t, resp, &body)
			So(body, ShouldContainKey, "combatantsStaged")
		})

		Convey("When scraping healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
