package models

// Food — пищевой продукт, значения указаны на одну единицу (unit)
type Food struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Unit    string  `json:"unit"` // "100 g", "1 шт", может быть пустым
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Label возвращает имя с единицей измерения для вывода пользователю
func (f Food) Label() string {
	if f.Unit == "" {
		return f.Name
	}
	return f.Name + " (" + f.Unit + ")"
}
