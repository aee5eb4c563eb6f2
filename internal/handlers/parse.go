package handlers

import (
	"DietTracker/internal/models"
	"DietTracker/internal/utils"
	"errors"
	"fmt"
	"strings"
	"time"
)

var errBadFormat = errors.New("bad format")

// foodFields — разобранная строка продукта; given отмечает заполненные kcal, protein, carbs, fat
type foodFields struct {
	Food  models.Food
	given [4]bool
}

// parseFoodFields разбирает "name;unit;kcal[;protein;carbs;fat]", пустые поля пропускаются
func parseFoodFields(payload string) (foodFields, error) {
	parts := strings.Split(payload, ";")
	if len(parts) < 3 || len(parts) > 6 {
		return foodFields{}, errBadFormat
	}
	f := foodFields{Food: models.Food{
		Name: strings.TrimSpace(parts[0]),
		Unit: strings.TrimSpace(parts[1]),
	}}
	if f.Food.Name == "" {
		return foodFields{}, fmt.Errorf("пустое название: %w", errBadFormat)
	}
	values := make([]float64, 4)
	for i, raw := range parts[2:] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := parseNonNegative(raw)
		if err != nil {
			return foodFields{}, err
		}
		values[i] = v
		f.given[i] = true
	}
	f.Food.Kcal, f.Food.Protein, f.Food.Carbs, f.Food.Fat = values[0], values[1], values[2], values[3]
	return f, nil
}

// parseFoodArgs — новый продукт, калории обязательны
func parseFoodArgs(payload string) (models.Food, error) {
	f, err := parseFoodFields(payload)
	if err != nil {
		return models.Food{}, err
	}
	if !f.given[0] {
		return models.Food{}, fmt.Errorf("не указаны калории: %w", errBadFormat)
	}
	return f.Food, nil
}

// mergeInto накладывает заполненные поля на существующий продукт
func (f foodFields) mergeInto(existing models.Food) models.Food {
	out := existing
	out.Name = f.Food.Name
	if f.Food.Unit != "" {
		out.Unit = f.Food.Unit
	}
	dst := []*float64{&out.Kcal, &out.Protein, &out.Carbs, &out.Fat}
	src := []float64{f.Food.Kcal, f.Food.Protein, f.Food.Carbs, f.Food.Fat}
	for i := range dst {
		if f.given[i] {
			*dst[i] = src[i]
		}
	}
	return out
}

func parseNonNegative(raw string) (float64, error) {
	v, err := utils.ParseNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("%q не число: %w", strings.TrimSpace(raw), errBadFormat)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q меньше нуля: %w", strings.TrimSpace(raw), errBadFormat)
	}
	return v, nil
}

type foodQty struct {
	Name     string
	Quantity float64
}

type mealCommand struct {
	Date  string
	Time  string
	Items []foodQty
}

// parseMealArgs разбирает "[YYYY-MM-DD] [HH:MM] Рис*2, Курица*1.5".
// Дата и время по умолчанию берутся из now.
func parseMealArgs(payload string, now time.Time) (mealCommand, error) {
	cmd := mealCommand{Date: now.Format("2006-01-02"), Time: now.Format("15:04")}
	rest := strings.TrimSpace(payload)

	if head, tail, ok := cutWord(rest); ok {
		if _, err := time.Parse("2006-01-02", head); err == nil {
			cmd.Date = head
			rest = tail
		}
	}
	if head, tail, ok := cutWord(rest); ok {
		if _, err := time.Parse("15:04", head); err == nil {
			cmd.Time = head
			rest = tail
		}
	}

	for _, chunk := range strings.Split(rest, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		item := foodQty{Name: chunk, Quantity: 1}
		if i := strings.LastIndex(chunk, "*"); i != -1 {
			q, err := utils.ParseNumber(chunk[i+1:])
			if err != nil || q <= 0 {
				return mealCommand{}, fmt.Errorf("количество %q: %w", strings.TrimSpace(chunk[i+1:]), errBadFormat)
			}
			item = foodQty{Name: strings.TrimSpace(chunk[:i]), Quantity: q}
		}
		if item.Name == "" {
			return mealCommand{}, errBadFormat
		}
		cmd.Items = append(cmd.Items, item)
	}
	if len(cmd.Items) == 0 {
		return mealCommand{}, errBadFormat
	}
	return cmd, nil
}

// parseGoalArgs разбирает "kcal [YYYY-MM-DD]"
func parseGoalArgs(payload string, today string) (string, float64, error) {
	fields := strings.Fields(payload)
	if len(fields) == 0 || len(fields) > 2 {
		return "", 0, errBadFormat
	}
	kcal, err := parseNonNegative(fields[0])
	if err != nil {
		return "", 0, err
	}
	date := today
	if len(fields) == 2 {
		if _, err := time.Parse("2006-01-02", fields[1]); err != nil {
			return "", 0, fmt.Errorf("дата %q: %w", fields[1], errBadFormat)
		}
		date = fields[1]
	}
	return date, kcal, nil
}

// parseDateArg — необязательная дата YYYY-MM-DD, по умолчанию today
func parseDateArg(payload, today string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return today, nil
	}
	if _, err := time.Parse("2006-01-02", payload); err != nil {
		return "", fmt.Errorf("дата %q: %w", payload, errBadFormat)
	}
	return payload, nil
}

func cutWord(s string) (head, tail string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexAny(s, " \t\n"); i != -1 {
		return s[:i], strings.TrimSpace(s[i+1:]), true
	}
	return s, "", true
}

// findFoodByName ищет продукт без учёта регистра
func findFoodByName(foods []models.Food, name string) (models.Food, bool) {
	for _, f := range foods {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return models.Food{}, false
}
