// Package summary считает дневные и недельные сводки по приёмам пищи и целям.
// Ничего не хранит: каждый вызов заново читает репозитории.
package summary

import (
	"DietTracker/internal/models"
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// MaxDays — самый длинный период сводки
const MaxDays = 366

var (
	// ErrInvalidDate — конечная дата недели не является датой YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid-end-date")
	// ErrTooManyDays — запрошен период длиннее MaxDays
	ErrTooManyDays = errors.New("too-many-days")
)

type MealSource interface {
	ListByDate(date string) ([]models.Meal, error)
}

type GoalSource interface {
	Get(date string) (float64, bool, error)
}

type Engine struct {
	meals MealSource
	goals GoalSource
	now   func() time.Time
}

func NewEngine(meals MealSource, goals GoalSource) *Engine {
	return &Engine{meals: meals, goals: goals, now: time.Now}
}

// WithClock подменяет часы, от которых считается «сегодня»
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Today — текущая дата по часам движка
func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) Today() string {
	return e.now().Format(DateLayout)
}

// DailyTotals складывает итоги всех приёмов пищи за дату без округления
func (e *Engine) DailyTotals(date string) (models.Totals, error) {
	meals, err := e.meals.ListByDate(date)
	if err != nil {
		return models.Totals{}, err
	}
	var t models.Totals
	for _, m := range meals {
		t.Kcal += m.TotalKcal
		t.Protein += m.TotalProtein
		t.Carbs += m.TotalCarbs
		t.Fat += m.TotalFat
	}
	return t, nil
}

func (e *Engine) DailySummary(date string) (models.DailySummary, error) {
	totals, err := e.DailyTotals(date)
	if err != nil {
		return models.DailySummary{}, err
	}
	s := models.DailySummary{
		Date:         date,
		TotalKcal:    models.RoundKcal(totals.Kcal),
		Status:       models.StatusNoGoal,
		TotalProtein: models.RoundMacro(totals.Protein),
		TotalCarbs:   models.RoundMacro(totals.Carbs),
		TotalFat:     models.RoundMacro(totals.Fat),
	}
	goal, ok, err := e.goals.Get(date)
	if err != nil {
		return models.DailySummary{}, err
	}
	if !ok {
		return s, nil
	}
	diff := s.TotalKcal - goal
	s.GoalKcal = &goal
	s.Difference = &diff
	switch {
	case diff > 0:
		s.Status = models.StatusOver
	case diff < 0:
		s.Status = models.StatusUnder
	default:
		s.Status = models.StatusOn
	}
	return s, nil
}

// WeeklySummary возвращает days сводок по подряд идущим датам, заканчивая end
// (включительно), от старых к новым. Пустой end — сегодня.
func (e *Engine) WeeklySummary(end string, days int) ([]models.DailySummary, error) {
	var endDate time.Time
	if end == "" {
		now := e.now()
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse(DateLayout, end)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", end, ErrInvalidDate)
		}
		endDate = parsed
	}
	if days <= 0 {
		return []models.DailySummary{}, nil
	}
	if days > MaxDays {
		return nil, fmt.Errorf("%d: %w", days, ErrTooManyDays)
	}

	out := make([]models.DailySummary, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := endDate.AddDate(0, 0, -i).Format(DateLayout)
		s, err := e.DailySummary(day)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MacroBreakdown — граммы и доли БЖУ за период
func MacroBreakdown(summaries []models.DailySummary) []models.MacroShare {
	var protein, carbs, fat float64
	for _, s := range summaries {
		protein += s.TotalProtein
		carbs += s.TotalCarbs
		fat += s.TotalFat
	}
	total := protein + carbs + fat
	share := func(name string, grams float64) models.MacroShare {
		m := models.MacroShare{Name: name, Grams: models.RoundMacro(grams)}
		if total > 0 {
			m.Percent = int(models.RoundKcal(grams / total * 100))
		}
		return m
	}
	return []models.MacroShare{
		share("protein", protein),
		share("carbs", carbs),
		share("fat", fat),
	}
}
