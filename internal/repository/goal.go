package repository

import (
	"DietTracker/internal/models"
	"DietTracker/internal/store"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// GoalStore — цели по калориям, одна на дату
type GoalStore struct {
	store store.Store
	log   *zap.Logger
}

func NewGoalStore(s store.Store, log *zap.Logger) *GoalStore {
	return &GoalStore{store: s, log: log}
}

// Set записывает цель, повторная запись на ту же дату перезаписывает значение
func (g *GoalStore) Set(date string, kcal float64) error {
	goals, err := g.List()
	if err != nil {
		return err
	}
	kcal = finite(kcal)
	found := false
	for i := range goals {
		if goals[i].Date == date {
			goals[i].Target = kcal
			found = true
		}
	}
	if !found {
		goals = append(goals, models.Goal{Date: date, Target: kcal})
	}
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	if err := g.store.Set(store.KeyGoals, data); err != nil {
		return err
	}
	g.log.Debug("Цель сохранена", zap.String("date", date), zap.Float64("kcal", kcal))
	return nil
}

func (g *GoalStore) Get(date string) (float64, bool, error) {
	goals, err := g.List()
	if err != nil {
		return 0, false, err
	}
	for _, goal := range goals {
		if goal.Date == date {
			return goal.Target, true, nil
		}
	}
	return 0, false, nil
}

// List возвращает цели в порядке хранения, нечитаемые записи пропускаются
func (g *GoalStore) List() ([]models.Goal, error) {
	raw, err := g.store.Get(store.KeyGoals)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeCollection[storedGoal](raw)
	if err != nil {
		g.log.Error("Коллекция целей повреждена", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", store.KeyGoals, err)
	}
	goals := make([]models.Goal, 0, len(records))
	for _, rec := range records {
		if goal, ok := normalizeGoal(rec); ok {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}
