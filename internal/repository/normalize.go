package repository

import (
	"DietTracker/internal/models"
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Хранилище не проверяет схему, поэтому записи читаются через «терпимые» типы:
// любое значение поля превращается либо в корректное, либо в «отсутствует».

type looseNumber struct {
	value float64
	ok    bool
}

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	*n = looseNumber{}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		n.value, n.ok = t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			n.ok = true
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			n.value, n.ok = f, true
		}
	case bool:
		if t {
			n.value = 1
		}
		n.ok = true
	}
	return nil
}

func (n looseNumber) or(fallback float64) float64 {
	if !n.ok {
		return fallback
	}
	return n.value
}

type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	*s = ""
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		*s = looseString(t)
	case float64:
		*s = looseString(strconv.FormatFloat(t, 'f', -1, 64))
	}
	return nil
}

// looseItems пропускает элементы, которые не являются объектами
type looseItems []storedMealItem

func (items *looseItems) UnmarshalJSON(b []byte) error {
	*items = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var it storedMealItem
		if err := json.Unmarshal(r, &it); err != nil {
			continue
		}
		*items = append(*items, it)
	}
	return nil
}

type storedFood struct {
	ID      looseString `json:"id"`
	Name    looseString `json:"name"`
	Unit    looseString `json:"unit"`
	Kcal    looseNumber `json:"kcal"`
	Protein looseNumber `json:"protein"`
	Carbs   looseNumber `json:"carbs"`
	Fat     looseNumber `json:"fat"`
}

type storedMealItem struct {
	FoodID         looseString `json:"foodId"`
	Quantity       looseNumber `json:"quantity"`
	FoodName       looseString `json:"foodName"`
	Unit           looseString `json:"unit"`
	KcalPerUnit    looseNumber `json:"kcalPerUnit"`
	ProteinPerUnit looseNumber `json:"proteinPerUnit"`
	CarbsPerUnit   looseNumber `json:"carbsPerUnit"`
	FatPerUnit     looseNumber `json:"fatPerUnit"`
	ItemKcal       looseNumber `json:"itemKcal"`
	ItemProtein    looseNumber `json:"itemProtein"`
	ItemCarbs      looseNumber `json:"itemCarbs"`
	ItemFat        looseNumber `json:"itemFat"`
}

type storedMeal struct {
	ID           looseString `json:"id"`
	Date         looseString `json:"date"`
	Time         looseString `json:"time"`
	Items        looseItems  `json:"items"`
	TotalKcal    looseNumber `json:"totalKcal"`
	TotalProtein looseNumber `json:"totalProtein"`
	TotalCarbs   looseNumber `json:"totalCarbs"`
	TotalFat     looseNumber `json:"totalFat"`
}

type storedGoal struct {
	Date   looseString `json:"date"`
	Target looseNumber `json:"target"`
}

// decodeCollection разбирает сериализованную коллекцию.
// skipped — число элементов, которые не удалось прочитать как объект.
func decodeCollection[T any](raw []byte) (records []T, skipped int, err error) {
	if len(raw) == 0 {
		return nil, 0, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, 0, ErrCorruptCollection
	}
	records = make([]T, 0, len(elems))
	for _, e := range elems {
		var rec T
		if string(bytes.TrimSpace(e)) == "null" {
			skipped++
			continue
		}
		if err := json.Unmarshal(e, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nonNegative(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

// backfillID выдаёт id записям, сохранённым без него
func backfillID(id string) (string, bool) {
	if id != "" {
		return id, false
	}
	return uuid.NewString(), true
}

func sanitizeFood(f models.Food) models.Food {
	f.Kcal = finite(f.Kcal)
	f.Protein = nonNegative(f.Protein)
	f.Carbs = nonNegative(f.Carbs)
	f.Fat = nonNegative(f.Fat)
	return f
}

func normalizeFood(s storedFood) models.Food {
	return sanitizeFood(models.Food{
		ID:      string(s.ID),
		Name:    string(s.Name),
		Unit:    string(s.Unit),
		Kcal:    s.Kcal.or(0),
		Protein: s.Protein.or(0),
		Carbs:   s.Carbs.or(0),
		Fat:     s.Fat.or(0),
	})
}

// normalizeMealItem досчитывает отсутствующие производные поля из количества
// и снимка на единицу. Живой продукт здесь никогда не используется.
func normalizeMealItem(s storedMealItem) models.MealItem {
	item := models.MealItem{
		FoodID:         string(s.FoodID),
		Quantity:       s.Quantity.or(0),
		FoodName:       string(s.FoodName),
		Unit:           string(s.Unit),
		KcalPerUnit:    s.KcalPerUnit.or(0),
		ProteinPerUnit: nonNegative(s.ProteinPerUnit.or(0)),
		CarbsPerUnit:   nonNegative(s.CarbsPerUnit.or(0)),
		FatPerUnit:     nonNegative(s.FatPerUnit.or(0)),
	}
	item.ItemKcal = s.ItemKcal.or(models.RoundKcal(item.Quantity * item.KcalPerUnit))
	item.ItemProtein = s.ItemProtein.or(models.RoundMacro(item.Quantity * item.ProteinPerUnit))
	item.ItemCarbs = s.ItemCarbs.or(models.RoundMacro(item.Quantity * item.CarbsPerUnit))
	item.ItemFat = s.ItemFat.or(models.RoundMacro(item.Quantity * item.FatPerUnit))
	return item
}

func normalizeMeal(s storedMeal) models.Meal {
	items := make([]models.MealItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, normalizeMealItem(it))
	}
	sum := models.SumItems(items)
	return models.Meal{
		ID:           string(s.ID),
		Date:         string(s.Date),
		Time:         string(s.Time),
		Items:        items,
		TotalKcal:    s.TotalKcal.or(sum.Kcal),
		TotalProtein: s.TotalProtein.or(sum.Protein),
		TotalCarbs:   s.TotalCarbs.or(sum.Carbs),
		TotalFat:     s.TotalFat.or(sum.Fat),
	}
}

// recomputeItem пересчитывает производные поля позиции перед записью
func recomputeItem(it models.MealItem) models.MealItem {
	it.Quantity = finite(it.Quantity)
	it.KcalPerUnit = finite(it.KcalPerUnit)
	it.ProteinPerUnit = nonNegative(it.ProteinPerUnit)
	it.CarbsPerUnit = nonNegative(it.CarbsPerUnit)
	it.FatPerUnit = nonNegative(it.FatPerUnit)
	it.ItemKcal = models.RoundKcal(it.Quantity * it.KcalPerUnit)
	it.ItemProtein = models.RoundMacro(it.Quantity * it.ProteinPerUnit)
	it.ItemCarbs = models.RoundMacro(it.Quantity * it.CarbsPerUnit)
	it.ItemFat = models.RoundMacro(it.Quantity * it.FatPerUnit)
	return it
}

// normalizeGoal: цель с нечисловым значением считается отсутствующей
func normalizeGoal(s storedGoal) (models.Goal, bool) {
	if s.Date == "" || !s.Target.ok {
		return models.Goal{}, false
	}
	return models.Goal{Date: string(s.Date), Target: s.Target.value}, true
}
