package tracker

import (
	"DietTracker/internal/metrics"
	"DietTracker/internal/models"
	"DietTracker/internal/repository"
	"DietTracker/internal/store"
	"DietTracker/internal/summary"
	"DietTracker/internal/undo"
	"DietTracker/internal/undo/undotest"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const window = 8 * time.Second

func newTracker() (*Tracker, *undotest.Manual) {
	clock := &undotest.Manual{}
	tr := New(store.NewMemoryStore(), undo.NewBuffer(window, clock.Schedule), zap.NewNop()).
		WithClock(func() time.Time { return time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC) })
	return tr, clock
}

func TestClockDrivesNowAndToday(t *testing.T) {
	tr, _ := newTracker()
	assert.Equal(t, time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC), tr.Now())
	assert.Equal(t, "2025-10-25", tr.Today())

	s, err := tr.DailySummary("")
	require.NoError(t, err)
	assert.Equal(t, tr.Today(), s.Date)
}

func TestFoodDeleteUndo(t *testing.T) {
	tr, clock := newTracker()
	apple, err := tr.SaveFood(models.Food{Name: "Apple", Unit: "1 medium", Kcal: 95, Protein: 0.5, Carbs: 25, Fat: 0.3})
	require.NoError(t, err)

	deleted, ok, err := tr.DeleteFood(apple.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, apple, deleted)
	foods, _ := tr.Foods()
	assert.Empty(t, foods)

	clock.Advance(window / 2)
	restored, ok, err := tr.UndoFoodDelete("")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, apple, restored)

	foods, _ = tr.Foods()
	require.Len(t, foods, 1)
	assert.Equal(t, apple, foods[0])

	_, ok, err = tr.UndoFoodDelete("")
	require.NoError(t, err)
	assert.False(t, ok, "undo twice is a no-op")
}

func TestFoodUndoAfterWindow(t *testing.T) {
	tr, clock := newTracker()
	apple, _ := tr.SaveFood(models.Food{Name: "Apple", Kcal: 95})
	_, _, err := tr.DeleteFood(apple.ID)
	require.NoError(t, err)

	clock.Advance(window)
	_, ok, err := tr.UndoFoodDelete("")
	require.NoError(t, err)
	assert.False(t, ok)
	foods, _ := tr.Foods()
	assert.Empty(t, foods)
}

func TestFoodUndoOnlyLastDeletion(t *testing.T) {
	tr, _ := newTracker()
	a, _ := tr.SaveFood(models.Food{Name: "A", Kcal: 1})
	b, _ := tr.SaveFood(models.Food{Name: "B", Kcal: 1})
	_, _, _ = tr.DeleteFood(a.ID)
	_, _, _ = tr.DeleteFood(b.ID)

	restored, ok, err := tr.UndoFoodDelete("")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.ID, restored.ID)
	_, ok, _ = tr.UndoFoodDelete("")
	assert.False(t, ok, "first deletion was forfeited")
}

func TestUndoTargetsHeldRecord(t *testing.T) {
	tr, _ := newTracker()
	a, _ := tr.SaveFood(models.Food{Name: "A", Kcal: 1})
	b, _ := tr.SaveFood(models.Food{Name: "B", Kcal: 1})
	_, _, _ = tr.DeleteFood(a.ID)
	_, _, _ = tr.DeleteFood(b.ID)

	_, ok, err := tr.UndoFoodDelete(a.ID)
	require.NoError(t, err)
	assert.False(t, ok, "A is no longer undoable")
	foods, _ := tr.Foods()
	assert.Empty(t, foods, "B stays deleted")

	restored, ok, err := tr.UndoFoodDelete(b.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.ID, restored.ID)

	m1, _ := tr.SaveMeal(models.MealInput{Date: "2025-10-25", Time: "08:00", Items: []models.MealItem{}})
	m2, _ := tr.SaveMeal(models.MealInput{Date: "2025-10-25", Time: "13:00", Items: []models.MealItem{}})
	_, _, _ = tr.DeleteMeal(m1.ID)
	_, _, _ = tr.DeleteMeal(m2.ID)
	_, ok, err = tr.UndoMealDelete(m1.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	meals, _ := tr.Meals()
	assert.Empty(t, meals)
}

func TestFoodUndoNameTaken(t *testing.T) {
	tr, _ := newTracker()
	a, _ := tr.SaveFood(models.Food{Name: "Tea", Kcal: 1})
	_, _, _ = tr.DeleteFood(a.ID)
	_, err := tr.SaveFood(models.Food{Name: "TEA", Kcal: 2})
	require.NoError(t, err)

	_, ok, err := tr.UndoFoodDelete("")
	assert.False(t, ok)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	tr, clock := newTracker()
	_, ok, err := tr.DeleteFood("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = tr.DeleteMeal("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, clock.Pending())
}

func TestMealDeleteUndo(t *testing.T) {
	tr, clock := newTracker()
	rice, _ := tr.SaveFood(models.Food{Name: "Rice", Kcal: 200, Protein: 4, Carbs: 45, Fat: 1})
	items, err := tr.BuildItems([]ItemRequest{{FoodID: rice.ID, Quantity: 2}})
	require.NoError(t, err)
	meal, err := tr.SaveMeal(models.MealInput{Date: "2025-10-25", Time: "12:00", Items: items})
	require.NoError(t, err)

	_, ok, err := tr.DeleteMeal(meal.ID)
	require.NoError(t, err)
	require.True(t, ok)
	clock.Advance(time.Second)

	restored, ok, err := tr.UndoMealDelete("")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, meal, restored)

	meals, _ := tr.MealsByDate("2025-10-25")
	require.Len(t, meals, 1)
	assert.Equal(t, meal, meals[0])
}

func TestMealsKeepSnapshotAfterFoodEdit(t *testing.T) {
	tr, _ := newTracker()
	oats, _ := tr.SaveFood(models.Food{Name: "Oats", Kcal: 190, Protein: 6.7})
	items, _ := tr.BuildItems([]ItemRequest{{FoodID: oats.ID, Quantity: 1}})
	meal, err := tr.SaveMeal(models.MealInput{Date: "2025-10-25", Time: "08:00", Items: items})
	require.NoError(t, err)

	oats.Kcal = 400
	_, err = tr.SaveFood(oats)
	require.NoError(t, err)
	_, _, err = tr.DeleteFood(oats.ID)
	require.NoError(t, err)

	got, ok, err := tr.Meal(meal.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 190.0, got.TotalKcal)
	assert.Equal(t, "Oats", got.Items[0].FoodName)
}

func TestBuildItems(t *testing.T) {
	tr, _ := newTracker()
	rice, _ := tr.SaveFood(models.Food{Name: "Rice", Unit: "100 g", Kcal: 130, Protein: 2.7, Carbs: 28, Fat: 0.3})

	t.Run("live-food", func(t *testing.T) {
		items, err := tr.BuildItems([]ItemRequest{{FoodID: rice.ID, Quantity: 1.5}})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Rice", items[0].FoodName)
		assert.Equal(t, 195.0, items[0].ItemKcal)
		assert.Equal(t, 130.0, items[0].KcalPerUnit)
	})
	t.Run("archived-snapshot", func(t *testing.T) {
		snap := models.MealItem{FoodID: "gone", FoodName: "Old bread", Unit: "slice", KcalPerUnit: 80, CarbsPerUnit: 15}
		items, err := tr.BuildItems([]ItemRequest{{FoodID: "gone", Quantity: 3, Snapshot: &snap}})
		require.NoError(t, err)
		assert.Equal(t, "Old bread", items[0].FoodName)
		assert.Equal(t, 240.0, items[0].ItemKcal)
		assert.Equal(t, 45.0, items[0].ItemCarbs)
	})
	t.Run("unknown-food", func(t *testing.T) {
		_, err := tr.BuildItems([]ItemRequest{{FoodID: "gone", Quantity: 1}})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
	t.Run("bad-quantity", func(t *testing.T) {
		for _, q := range []float64{0, -1} {
			_, err := tr.BuildItems([]ItemRequest{{FoodID: rice.ID, Quantity: q}})
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		}
	})
}

func TestSummariesAndExport(t *testing.T) {
	tr, _ := newTracker()
	rice, _ := tr.SaveFood(models.Food{Name: "Rice", Kcal: 200, Protein: 4, Carbs: 45, Fat: 1})
	items, _ := tr.BuildItems([]ItemRequest{{FoodID: rice.ID, Quantity: 2}})
	_, err := tr.SaveMeal(models.MealInput{Date: "2025-10-25", Time: "12:00", Items: items})
	require.NoError(t, err)
	require.NoError(t, tr.SetGoal("2025-10-25", 500))

	today, err := tr.DailySummary("")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-25", today.Date)
	assert.Equal(t, models.StatusUnder, today.Status)
	require.NotNil(t, today.Difference)
	assert.Equal(t, -100.0, *today.Difference)

	goal, ok, err := tr.Goal("2025-10-25")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 500.0, goal)

	macros, err := tr.MacroBreakdown("2025-10-25", WeekDays)
	require.NoError(t, err)
	assert.Equal(t, 8.0, macros[0].Grams)
	assert.Equal(t, 90.0, macros[1].Grams)

	var buf bytes.Buffer
	name, err := tr.ExportWeeklyCSV(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, "weekly-summary-2025-10-25.csv", name)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, WeekDays+1)
	assert.Equal(t, "2025-10-19,0,,,no-goal,0,0,0", lines[1])
	assert.Equal(t, "2025-10-25,400,500,-100,under,8,90,2", lines[7])

	_, err = tr.ExportWeeklyCSV(&buf, "25.10.2025")
	assert.ErrorIs(t, err, summary.ErrInvalidDate)
}

func TestMetricsCounters(t *testing.T) {
	tr, clock := newTracker()
	deletes := metrics.Deletes.WithLabelValues(metrics.KindFood)
	restores := metrics.UndoRestores.WithLabelValues(metrics.KindFood)
	expiries := metrics.UndoExpiries.WithLabelValues(metrics.KindFood)
	d0, r0, e0 := testutil.ToFloat64(deletes), testutil.ToFloat64(restores), testutil.ToFloat64(expiries)

	a, _ := tr.SaveFood(models.Food{Name: "A", Kcal: 1})
	_, _, _ = tr.DeleteFood(a.ID)
	_, _, _ = tr.UndoFoodDelete("")
	_, _, _ = tr.DeleteFood(a.ID)
	clock.Advance(window)

	assert.Equal(t, d0+2, testutil.ToFloat64(deletes))
	assert.Equal(t, r0+1, testutil.ToFloat64(restores))
	assert.Equal(t, e0+1, testutil.ToFloat64(expiries))
}
