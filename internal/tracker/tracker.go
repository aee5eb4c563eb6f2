// Package tracker связывает репозитории, сводки и буфер отмены в действия,
// которые вызывают интерфейсы (REST API и Telegram-бот).
package tracker

import (
	"DietTracker/internal/metrics"
	"DietTracker/internal/models"
	"DietTracker/internal/repository"
	"DietTracker/internal/store"
	"DietTracker/internal/summary"
	"DietTracker/internal/undo"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidQuantity — количество в позиции должно быть больше нуля
var ErrInvalidQuantity = errors.New("invalid-quantity")

// WeekDays — длина недельной сводки по умолчанию
const WeekDays = 7

// ItemRequest — позиция приёма пищи, как её присылает интерфейс.
// Snapshot передаётся при редактировании, если продукт уже удалён из справочника.
type ItemRequest struct {
	FoodID   string           `json:"foodId"`
	Quantity float64          `json:"quantity"`
	Snapshot *models.MealItem `json:"snapshot,omitempty"`
}

type Tracker struct {
	// репозитории делают read-modify-write всей коллекции, поэтому вызовы сериализуются
	mu sync.Mutex

	foods   *repository.FoodRepository
	meals   *repository.MealRepository
	goals   *repository.GoalStore
	summary *summary.Engine
	undo    *undo.Buffer
	log     *zap.Logger
}

func New(s store.Store, buf *undo.Buffer, log *zap.Logger) *Tracker {
	t := &Tracker{
		foods: repository.NewFoodRepository(s, log),
		meals: repository.NewMealRepository(s, log),
		goals: repository.NewGoalStore(s, log),
		undo:  buf,
		log:   log,
	}
	t.summary = summary.NewEngine(t.meals, t.goals)

	buf.Foods.OnExpire(func(f models.Food) {
		metrics.UndoExpiries.WithLabelValues(metrics.KindFood).Inc()
		log.Debug("Окно отмены удаления продукта истекло", zap.String("id", f.ID))
	})
	buf.Meals.OnExpire(func(m models.Meal) {
		metrics.UndoExpiries.WithLabelValues(metrics.KindMeal).Inc()
		log.Debug("Окно отмены удаления приёма пищи истекло", zap.String("id", m.ID))
	})
	return t
}

// WithClock подменяет часы для «сегодня» в сводках
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.summary.WithClock(now)
	return t
}

// Now — текущее время по часам трекера, от него считаются «сегодня» и время записи
func (t *Tracker) Now() time.Time {
	return t.summary.Now()
}

func (t *Tracker) Today() string {
	return t.summary.Today()
}

// ---- продукты ----

func (t *Tracker) Foods() ([]models.Food, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.foods.List()
}

func (t *Tracker) Food(id string) (models.Food, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.foods.GetByID(id)
}

func (t *Tracker) SaveFood(food models.Food) (models.Food, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	saved, err := t.foods.AddOrUpdate(food)
	if err != nil {
		return models.Food{}, err
	}
	metrics.Writes.WithLabelValues(metrics.KindFood).Inc()
	return saved, nil
}

// DeleteFood удаляет продукт и кладёт его снимок в буфер отмены.
// false — такого продукта не было.
func (t *Tracker) DeleteFood(id string) (models.Food, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	food, ok, err := t.foods.GetByID(id)
	if err != nil || !ok {
		return models.Food{}, false, err
	}
	if err := t.foods.Delete(id); err != nil {
		return models.Food{}, false, err
	}
	t.undo.Foods.Hold(food)
	metrics.Deletes.WithLabelValues(metrics.KindFood).Inc()
	t.log.Info("Продукт удалён", zap.String("id", food.ID), zap.String("name", food.Name))
	return food, true, nil
}

// UndoFoodDelete возвращает последний удалённый продукт, если окно ещё открыто.
// Непустой id должен совпадать с продуктом в буфере, иначе отменять нечего.
// Если имя за это время занял другой продукт, снимок теряется и возвращается ErrDuplicateName.
func (t *Tracker) UndoFoodDelete(id string) (models.Food, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if held, ok := t.undo.Foods.Peek(); !ok || (id != "" && held.ID != id) {
		return models.Food{}, false, nil
	}
	food, ok := t.undo.Foods.Take()
	if !ok {
		return models.Food{}, false, nil
	}
	if err := t.foods.Restore(food); err != nil {
		t.log.Warn("Не удалось восстановить продукт", zap.String("id", food.ID), zap.Error(err))
		return models.Food{}, false, err
	}
	metrics.UndoRestores.WithLabelValues(metrics.KindFood).Inc()
	return food, true, nil
}

// ---- приёмы пищи ----

func (t *Tracker) Meals() ([]models.Meal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.meals.List()
}

func (t *Tracker) MealsByDate(date string) ([]models.Meal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.meals.ListByDate(date)
}

func (t *Tracker) Meal(id string) (models.Meal, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.meals.GetByID(id)
}

func (t *Tracker) SaveMeal(in models.MealInput) (models.Meal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	saved, err := t.meals.Upsert(in)
	if err != nil {
		return models.Meal{}, err
	}
	metrics.Writes.WithLabelValues(metrics.KindMeal).Inc()
	return saved, nil
}

func (t *Tracker) DeleteMeal(id string) (models.Meal, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	meal, ok, err := t.meals.GetByID(id)
	if err != nil || !ok {
		return models.Meal{}, false, err
	}
	if err := t.meals.Delete(id); err != nil {
		return models.Meal{}, false, err
	}
	t.undo.Meals.Hold(meal)
	metrics.Deletes.WithLabelValues(metrics.KindMeal).Inc()
	t.log.Info("Приём пищи удалён", zap.String("id", meal.ID), zap.String("date", meal.Date))
	return meal, true, nil
}

// UndoMealDelete — то же для приёма пищи
func (t *Tracker) UndoMealDelete(id string) (models.Meal, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if held, ok := t.undo.Meals.Peek(); !ok || (id != "" && held.ID != id) {
		return models.Meal{}, false, nil
	}
	meal, ok := t.undo.Meals.Take()
	if !ok {
		return models.Meal{}, false, nil
	}
	if err := t.meals.Restore(meal); err != nil {
		return models.Meal{}, false, err
	}
	metrics.UndoRestores.WithLabelValues(metrics.KindMeal).Inc()
	return meal, true, nil
}

// BuildItems снимает пищевую ценность с текущих продуктов справочника.
// Для удалённого продукта используется снимок из запроса, если он есть.
func (t *Tracker) BuildItems(reqs []ItemRequest) ([]models.MealItem, error) {
	foods, err := t.Foods()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	items := make([]models.MealItem, 0, len(reqs))
	for i, req := range reqs {
		if !(req.Quantity > 0) || math.IsInf(req.Quantity, 0) {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrInvalidQuantity)
		}
		if food, ok := byID[req.FoodID]; ok {
			items = append(items, models.NewMealItem(food, req.Quantity))
			continue
		}
		if req.Snapshot == nil {
			return nil, fmt.Errorf("food %s: %w", req.FoodID, repository.ErrNotFound)
		}
		s := req.Snapshot
		archived := models.Food{
			ID:      req.FoodID,
			Name:    s.FoodName,
			Unit:    s.Unit,
			Kcal:    s.KcalPerUnit,
			Protein: s.ProteinPerUnit,
			Carbs:   s.CarbsPerUnit,
			Fat:     s.FatPerUnit,
		}
		if archived.ID == "" {
			archived.ID = s.FoodID
		}
		items = append(items, models.NewMealItem(archived, req.Quantity))
	}
	return items, nil
}

// ---- цели и сводки ----

func (t *Tracker) SetGoal(date string, kcal float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.goals.Set(date, kcal); err != nil {
		return err
	}
	metrics.Writes.WithLabelValues(metrics.KindGoal).Inc()
	return nil
}

func (t *Tracker) Goal(date string) (float64, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goals.Get(date)
}

func (t *Tracker) Goals() ([]models.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goals.List()
}

// DailySummary — сводка за дату, пустая дата означает сегодня
func (t *Tracker) DailySummary(date string) (models.DailySummary, error) {
	if date == "" {
		date = t.Today()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary.DailySummary(date)
}

func (t *Tracker) WeeklySummary(end string, days int) ([]models.DailySummary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary.WeeklySummary(end, days)
}

// MacroBreakdown — распределение БЖУ за days дней, заканчивая end
func (t *Tracker) MacroBreakdown(end string, days int) ([]models.MacroShare, error) {
	week, err := t.WeeklySummary(end, days)
	if err != nil {
		return nil, err
	}
	return summary.MacroBreakdown(week), nil
}

// ExportWeeklyCSV пишет недельную сводку в CSV и возвращает имя файла
func (t *Tracker) ExportWeeklyCSV(w io.Writer, end string) (string, error) {
	if end == "" {
		end = t.Today()
	}
	week, err := t.WeeklySummary(end, WeekDays)
	if err != nil {
		return "", err
	}
	if err := summary.WriteWeeklyCSV(w, week); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	metrics.Exports.Inc()
	return summary.ExportFileName(end), nil
}
