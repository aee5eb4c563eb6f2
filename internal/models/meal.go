package models

import "math"

// MealItem — позиция приёма пищи со снимком пищевой ценности на момент добавления.
// FoodID — слабая ссылка: продукт мог быть изменён или удалён.
type MealItem struct {
	FoodID         string  `json:"foodId"`
	Quantity       float64 `json:"quantity"`
	FoodName       string  `json:"foodName"`
	Unit           string  `json:"unit"`
	KcalPerUnit    float64 `json:"kcalPerUnit"`
	ProteinPerUnit float64 `json:"proteinPerUnit"`
	CarbsPerUnit   float64 `json:"carbsPerUnit"`
	FatPerUnit     float64 `json:"fatPerUnit"`
	ItemKcal       float64 `json:"itemKcal"`
	ItemProtein    float64 `json:"itemProtein"`
	ItemCarbs      float64 `json:"itemCarbs"`
	ItemFat        float64 `json:"itemFat"`
}

// Meal — приём пищи. Date в формате 2006-01-02, Time — 15:04.
type Meal struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Items        []MealItem `json:"items"`
	TotalKcal    float64    `json:"totalKcal"`
	TotalProtein float64    `json:"totalProtein"`
	TotalCarbs   float64    `json:"totalCarbs"`
	TotalFat     float64    `json:"totalFat"`
}

// SortKey — ключ хронологической сортировки
func (m Meal) SortKey() string {
	return m.Date + "T" + m.Time
}

// Totals — суммарные калории и БЖУ
type Totals struct {
	Kcal    float64 `json:"kcal" binding:"gte=0"`
	Protein float64 `json:"protein" binding:"gte=0"`
	Carbs   float64 `json:"carbs" binding:"gte=0"`
	Fat     float64 `json:"fat" binding:"gte=0"`
}

// MealInput — данные для создания (ID пустой) или обновления приёма пищи.
// Totals == nil означает «посчитать по позициям».
type MealInput struct {
	ID     string
	Date   string
	Time   string
	Items  []MealItem
	Totals *Totals
}

// NewMealItem снимает пищевую ценность продукта для позиции приёма пищи
func NewMealItem(food Food, quantity float64) MealItem {
	return MealItem{
		FoodID:         food.ID,
		Quantity:       quantity,
		FoodName:       food.Name,
		Unit:           food.Unit,
		KcalPerUnit:    food.Kcal,
		ProteinPerUnit: food.Protein,
		CarbsPerUnit:   food.Carbs,
		FatPerUnit:     food.Fat,
		ItemKcal:       RoundKcal(quantity * food.Kcal),
		ItemProtein:    RoundMacro(quantity * food.Protein),
		ItemCarbs:      RoundMacro(quantity * food.Carbs),
		ItemFat:        RoundMacro(quantity * food.Fat),
	}
}

// SumItems складывает значения позиций и округляет результат
func SumItems(items []MealItem) Totals {
	var t Totals
	for _, it := range items {
		t.Kcal += it.ItemKcal
		t.Protein += it.ItemProtein
		t.Carbs += it.ItemCarbs
		t.Fat += it.ItemFat
	}
	return Totals{
		Kcal:    RoundKcal(t.Kcal),
		Protein: RoundMacro(t.Protein),
		Carbs:   RoundMacro(t.Carbs),
		Fat:     RoundMacro(t.Fat),
	}
}

// RoundKcal округляет до целого, половины — вверх (как в браузерной версии)
func RoundKcal(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundMacro округляет до одного знака после запятой
func RoundMacro(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
