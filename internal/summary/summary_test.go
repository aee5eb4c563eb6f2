package summary

import (
	"DietTracker/internal/models"
	"DietTracker/internal/repository"
	"DietTracker/internal/store"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	foods  *repository.FoodRepository
	meals  *repository.MealRepository
	goals  *repository.GoalStore
	engine *Engine
}

func newFixture() fixture {
	s := store.NewMemoryStore()
	log := zap.NewNop()
	f := fixture{
		foods: repository.NewFoodRepository(s, log),
		meals: repository.NewMealRepository(s, log),
		goals: repository.NewGoalStore(s, log),
	}
	f.engine = NewEngine(f.meals, f.goals).WithClock(func() time.Time {
		return time.Date(2025, 10, 25, 21, 30, 0, 0, time.UTC)
	})
	return f
}

func TestDailySummaryEndToEnd(t *testing.T) {
	f := newFixture()
	rice, err := f.foods.AddOrUpdate(models.Food{Name: "Rice", Unit: "100 g", Kcal: 200, Protein: 4, Carbs: 45, Fat: 1})
	require.NoError(t, err)

	_, err = f.meals.Upsert(models.MealInput{Date: "2025-10-25", Time: "12:00", Items: []models.MealItem{models.NewMealItem(rice, 2)}})
	require.NoError(t, err)

	s, err := f.engine.DailySummary("2025-10-25")
	require.NoError(t, err)
	assert.Equal(t, 400.0, s.TotalKcal)
	assert.Equal(t, 8.0, s.TotalProtein)
	assert.Equal(t, 90.0, s.TotalCarbs)
	assert.Equal(t, 2.0, s.TotalFat)
	assert.Equal(t, models.StatusNoGoal, s.Status)
	assert.Nil(t, s.GoalKcal)
	assert.Nil(t, s.Difference)

	require.NoError(t, f.goals.Set("2025-10-25", 500))
	s, err = f.engine.DailySummary("2025-10-25")
	require.NoError(t, err)
	require.NotNil(t, s.Difference)
	assert.Equal(t, -100.0, *s.Difference)
	assert.Equal(t, models.StatusUnder, s.Status)
	assert.Equal(t, 80, s.GoalProgress())
}

func TestDailySummaryStatus(t *testing.T) {
	f := newFixture()
	_, err := f.meals.Upsert(models.MealInput{Date: "2025-01-01", Time: "08:00", Totals: &models.Totals{Kcal: 300.4}})
	require.NoError(t, err)

	table := []struct {
		name string
		goal float64
		want models.SummaryStatus
	}{
		{"over", 299, models.StatusOver},
		{"under", 301, models.StatusUnder},
		{"on", 300, models.StatusOn},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, f.goals.Set("2025-01-01", tc.goal))
			s, err := f.engine.DailySummary("2025-01-01")
			require.NoError(t, err)
			assert.Equal(t, 300.0, s.TotalKcal)
			assert.Equal(t, tc.want, s.Status)
		})
	}
}

func TestDailySummaryEmptyDay(t *testing.T) {
	f := newFixture()
	s, err := f.engine.DailySummary("2030-01-01")
	require.NoError(t, err)
	assert.Zero(t, s.TotalKcal)
	assert.Equal(t, models.StatusNoGoal, s.Status)
	assert.Zero(t, s.GoalProgress())
}

func TestDailyTotalsSumsMealTotals(t *testing.T) {
	f := newFixture()
	_, _ = f.meals.Upsert(models.MealInput{Date: "2025-02-02", Time: "08:00", Totals: &models.Totals{Kcal: 100.4, Protein: 1.04}})
	_, _ = f.meals.Upsert(models.MealInput{Date: "2025-02-02", Time: "19:00", Totals: &models.Totals{Kcal: 100.4, Protein: 1.04}})
	_, _ = f.meals.Upsert(models.MealInput{Date: "2025-02-03", Time: "08:00", Totals: &models.Totals{Kcal: 999}})

	totals, err := f.engine.DailyTotals("2025-02-02")
	require.NoError(t, err)
	assert.InDelta(t, 200.8, totals.Kcal, 1e-9)

	s, err := f.engine.DailySummary("2025-02-02")
	require.NoError(t, err)
	assert.Equal(t, 201.0, s.TotalKcal)
	assert.Equal(t, 2.1, s.TotalProtein)
}

func TestWeeklySummary(t *testing.T) {
	f := newFixture()
	_, _ = f.meals.Upsert(models.MealInput{Date: "2025-03-01", Time: "10:00", Totals: &models.Totals{Kcal: 500}})
	require.NoError(t, f.goals.Set("2025-02-26", 2000))

	week, err := f.engine.WeeklySummary("2025-03-02", 7)
	require.NoError(t, err)
	require.Len(t, week, 7)

	var dates []string
	for _, s := range week {
		dates = append(dates, s.Date)
	}
	assert.Equal(t, []string{"2025-02-24", "2025-02-25", "2025-02-26", "2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, dates)
	assert.Equal(t, 500.0, week[5].TotalKcal)
	assert.Equal(t, models.StatusUnder, week[2].Status)
	assert.Equal(t, models.StatusNoGoal, week[6].Status)
}

func TestWeeklySummaryEdgeCases(t *testing.T) {
	f := newFixture()

	t.Run("invalid-end", func(t *testing.T) {
		for _, end := range []string{"not-a-date", "2025-02-30", "25-01-01"} {
			_, err := f.engine.WeeklySummary(end, 7)
			assert.ErrorIs(t, err, ErrInvalidDate, end)
		}
	})
	t.Run("empty-end-is-today", func(t *testing.T) {
		week, err := f.engine.WeeklySummary("", 3)
		require.NoError(t, err)
		require.Len(t, week, 3)
		assert.Equal(t, "2025-10-25", week[2].Date)
	})
	t.Run("non-positive-days", func(t *testing.T) {
		week, err := f.engine.WeeklySummary("2025-01-01", 0)
		require.NoError(t, err)
		assert.Empty(t, week)
	})
	t.Run("period-limit", func(t *testing.T) {
		week, err := f.engine.WeeklySummary("2025-01-01", MaxDays)
		require.NoError(t, err)
		assert.Len(t, week, MaxDays)
		_, err = f.engine.WeeklySummary("2025-01-01", MaxDays+1)
		assert.ErrorIs(t, err, ErrTooManyDays)
		_, err = f.engine.WeeklySummary("2025-01-01", 9000000000000000000)
		assert.ErrorIs(t, err, ErrTooManyDays)
	})
	t.Run("crosses-year", func(t *testing.T) {
		week, err := f.engine.WeeklySummary("2025-01-02", 3)
		require.NoError(t, err)
		assert.Equal(t, "2024-12-31", week[0].Date)
	})
}

type failingMeals struct{}

func (failingMeals) ListByDate(string) ([]models.Meal, error) {
	return nil, repository.ErrCorruptCollection
}

type noGoals struct{}

func (noGoals) Get(string) (float64, bool, error) { return 0, false, nil }

func TestSummaryPropagatesErrors(t *testing.T) {
	e := NewEngine(failingMeals{}, noGoals{})
	_, err := e.DailySummary("2025-01-01")
	assert.True(t, errors.Is(err, repository.ErrCorruptCollection))
	_, err = e.WeeklySummary("2025-01-01", 7)
	assert.ErrorIs(t, err, repository.ErrCorruptCollection)
}

func TestMacroBreakdown(t *testing.T) {
	t.Run("shares", func(t *testing.T) {
		shares := MacroBreakdown([]models.DailySummary{
			{TotalProtein: 50, TotalCarbs: 100, TotalFat: 25},
			{TotalProtein: 50, TotalCarbs: 100, TotalFat: 25},
		})
		assert.Equal(t, []models.MacroShare{
			{Name: "protein", Grams: 100, Percent: 29},
			{Name: "carbs", Grams: 200, Percent: 57},
			{Name: "fat", Grams: 50, Percent: 14},
		}, shares)
	})
	t.Run("no-grams", func(t *testing.T) {
		for _, s := range MacroBreakdown(nil) {
			assert.Zero(t, s.Percent)
			assert.Zero(t, s.Grams)
		}
	})
}
