package repository

import (
	"DietTracker/internal/models"
	"DietTracker/internal/store"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MealRepository — журнал приёмов пищи, от новых к старым по date+time
type MealRepository struct {
	store store.Store
	log   *zap.Logger
	newID func() string
}

func NewMealRepository(s store.Store, log *zap.Logger) *MealRepository {
	return &MealRepository{store: s, log: log, newID: uuid.NewString}
}

func (r *MealRepository) List() ([]models.Meal, error) {
	return r.load()
}

func (r *MealRepository) GetByID(id string) (models.Meal, bool, error) {
	list, err := r.load()
	if err != nil {
		return models.Meal{}, false, err
	}
	for _, m := range list {
		if m.ID == id {
			return m, true, nil
		}
	}
	return models.Meal{}, false, nil
}

func (r *MealRepository) ListByDate(date string) ([]models.Meal, error) {
	list, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []models.Meal
	for _, m := range list {
		if m.Date == date {
			out = append(out, m)
		}
	}
	return out, nil
}

// Upsert создаёт (пустой ID) или обновляет приём пищи.
// Позиции заменяются целиком; итоги из input принимаются как есть.
func (r *MealRepository) Upsert(in models.MealInput) (models.Meal, error) {
	list, err := r.load()
	if err != nil {
		return models.Meal{}, err
	}
	items := make([]models.MealItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, recomputeItem(it))
	}

	if in.ID != "" {
		idx := indexOfMeal(list, in.ID)
		if idx == -1 {
			return models.Meal{}, fmt.Errorf("meal %s: %w", in.ID, ErrNotFound)
		}
		merged := list[idx]
		if in.Date != "" {
			merged.Date = in.Date
		}
		if in.Time != "" {
			merged.Time = in.Time
		}
		merged = r.applyTotals(merged, items, in.Totals)
		list[idx] = merged
		sortMeals(list)
		if err := r.save(list); err != nil {
			return models.Meal{}, err
		}
		r.log.Debug("Приём пищи обновлён", zap.String("id", merged.ID), zap.String("date", merged.Date))
		return merged, nil
	}

	created := r.applyTotals(models.Meal{ID: r.newID(), Date: in.Date, Time: in.Time}, items, in.Totals)
	list = append([]models.Meal{created}, list...)
	sortMeals(list)
	if err := r.save(list); err != nil {
		return models.Meal{}, err
	}
	r.log.Debug("Приём пищи добавлен", zap.String("id", created.ID), zap.String("date", created.Date))
	return created, nil
}

// applyTotals выставляет позиции и итоги. Переданные итоги не пересчитываются,
// расхождение с суммой позиций только логируется.
func (r *MealRepository) applyTotals(meal models.Meal, items []models.MealItem, totals *models.Totals) models.Meal {
	sum := models.SumItems(items)
	meal.Items = items
	if totals == nil {
		meal.TotalKcal, meal.TotalProtein, meal.TotalCarbs, meal.TotalFat = sum.Kcal, sum.Protein, sum.Carbs, sum.Fat
		return meal
	}
	meal.TotalKcal = finite(totals.Kcal)
	meal.TotalProtein = finite(totals.Protein)
	meal.TotalCarbs = finite(totals.Carbs)
	meal.TotalFat = finite(totals.Fat)
	if meal.TotalKcal != sum.Kcal || models.RoundMacro(meal.TotalProtein) != sum.Protein ||
		models.RoundMacro(meal.TotalCarbs) != sum.Carbs || models.RoundMacro(meal.TotalFat) != sum.Fat {
		r.log.Warn("Итоги приёма пищи не совпадают с суммой позиций",
			zap.String("id", meal.ID),
			zap.Float64("totalKcal", meal.TotalKcal),
			zap.Float64("itemsKcal", sum.Kcal))
	}
	return meal
}

func (r *MealRepository) Delete(id string) error {
	list, err := r.load()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, m := range list {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return r.save(kept)
}

// Restore возвращает удалённый приём пищи, запись с тем же id заменяется
func (r *MealRepository) Restore(snapshot models.Meal) error {
	list, err := r.load()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, m := range list {
		if m.ID != snapshot.ID {
			kept = append(kept, m)
		}
	}
	if snapshot.Items == nil {
		snapshot.Items = []models.MealItem{}
	}
	kept = append(kept, snapshot)
	sortMeals(kept)
	return r.save(kept)
}

func (r *MealRepository) load() ([]models.Meal, error) {
	raw, err := r.store.Get(store.KeyMeals)
	if err != nil {
		return nil, err
	}
	records, skipped, err := decodeCollection[storedMeal](raw)
	if err != nil {
		r.log.Error("Коллекция приёмов пищи повреждена", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", store.KeyMeals, err)
	}
	if skipped > 0 {
		r.log.Warn("Пропущены нечитаемые приёмы пищи", zap.Int("count", skipped))
	}

	list := make([]models.Meal, 0, len(records))
	backfilled := 0
	for _, rec := range records {
		meal := normalizeMeal(rec)
		var assigned bool
		if meal.ID, assigned = backfillID(meal.ID); assigned {
			backfilled++
		}
		list = append(list, meal)
	}
	if backfilled > 0 {
		r.log.Info("Приёмам пищи без id выданы id", zap.Int("count", backfilled))
		if err := r.save(list); err != nil {
			return nil, err
		}
	}
	sortMeals(list)
	return list, nil
}

func (r *MealRepository) save(list []models.Meal) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode meals: %w", err)
	}
	return r.store.Set(store.KeyMeals, data)
}

func indexOfMeal(list []models.Meal, id string) int {
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// sortMeals: по убыванию date+time, равные ключи сохраняют порядок
func sortMeals(list []models.Meal) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SortKey() > list[j].SortKey()
	})
}
