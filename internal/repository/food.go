package repository

import (
	"DietTracker/internal/models"
	"DietTracker/internal/store"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FoodRepository — справочник продуктов. Имена уникальны без учёта регистра,
// список всегда отсортирован по имени.
type FoodRepository struct {
	store store.Store
	log   *zap.Logger
	newID func() string
}

func NewFoodRepository(s store.Store, log *zap.Logger) *FoodRepository {
	return &FoodRepository{store: s, log: log, newID: uuid.NewString}
}

func (r *FoodRepository) List() ([]models.Food, error) {
	return r.load()
}

func (r *FoodRepository) GetByID(id string) (models.Food, bool, error) {
	list, err := r.load()
	if err != nil {
		return models.Food{}, false, err
	}
	for _, f := range list {
		if f.ID == id {
			return f, true, nil
		}
	}
	return models.Food{}, false, nil
}

// AddOrUpdate создаёт продукт (пустой ID) или обновляет существующий.
// Имя и калорийность должен проверить вызывающий код.
func (r *FoodRepository) AddOrUpdate(food models.Food) (models.Food, error) {
	list, err := r.load()
	if err != nil {
		return models.Food{}, err
	}

	if food.ID != "" {
		idx := indexOfFood(list, food.ID)
		if idx == -1 {
			return models.Food{}, fmt.Errorf("food %s: %w", food.ID, ErrNotFound)
		}
		if hasName(list, food.Name, food.ID) {
			return models.Food{}, fmt.Errorf("food %q: %w", food.Name, ErrDuplicateName)
		}
		updated := sanitizeFood(food)
		list[idx] = updated
		sortFoods(list)
		if err := r.save(list); err != nil {
			return models.Food{}, err
		}
		r.log.Debug("Продукт обновлён", zap.String("id", updated.ID), zap.String("name", updated.Name))
		return updated, nil
	}

	if hasName(list, food.Name, "") {
		return models.Food{}, fmt.Errorf("food %q: %w", food.Name, ErrDuplicateName)
	}
	food.ID = r.newID()
	created := sanitizeFood(food)
	list = append(list, created)
	sortFoods(list)
	if err := r.save(list); err != nil {
		return models.Food{}, err
	}
	r.log.Debug("Продукт добавлен", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Delete удаляет продукт, отсутствующий id — не ошибка
func (r *FoodRepository) Delete(id string) error {
	list, err := r.load()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, f := range list {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return r.save(kept)
}

// Restore возвращает удалённый продукт (отмена удаления)
func (r *FoodRepository) Restore(snapshot models.Food) error {
	list, err := r.load()
	if err != nil {
		return err
	}
	if hasName(list, snapshot.Name, snapshot.ID) {
		return fmt.Errorf("food %q: %w", snapshot.Name, ErrDuplicateName)
	}
	kept := list[:0]
	for _, f := range list {
		if f.ID != snapshot.ID {
			kept = append(kept, f)
		}
	}
	kept = append(kept, sanitizeFood(snapshot))
	sortFoods(kept)
	return r.save(kept)
}

func (r *FoodRepository) load() ([]models.Food, error) {
	raw, err := r.store.Get(store.KeyFoods)
	if err != nil {
		return nil, err
	}
	records, skipped, err := decodeCollection[storedFood](raw)
	if err != nil {
		r.log.Error("Коллекция продуктов повреждена", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", store.KeyFoods, err)
	}
	if skipped > 0 {
		r.log.Warn("Пропущены нечитаемые продукты", zap.Int("count", skipped))
	}

	list := make([]models.Food, 0, len(records))
	backfilled := 0
	for _, rec := range records {
		food := normalizeFood(rec)
		var assigned bool
		if food.ID, assigned = backfillID(food.ID); assigned {
			backfilled++
		}
		list = append(list, food)
	}
	if backfilled > 0 {
		r.log.Info("Продуктам без id выданы id", zap.Int("count", backfilled))
		if err := r.save(list); err != nil {
			return nil, err
		}
	}
	sortFoods(list)
	return list, nil
}

func (r *FoodRepository) save(list []models.Food) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode foods: %w", err)
	}
	return r.store.Set(store.KeyFoods, data)
}

func indexOfFood(list []models.Food, id string) int {
	for i, f := range list {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// hasName проверяет занятость имени другой записью (exceptID пропускается)
func hasName(list []models.Food, name, exceptID string) bool {
	for _, f := range list {
		if f.ID != exceptID && strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func sortFoods(list []models.Food) {
	c := collate.New(language.Und)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}
