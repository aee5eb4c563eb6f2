package models

// Goal — цель по калориям на конкретную дату
type Goal struct {
	Date   string  `json:"date"`
	Target float64 `json:"target"`
}
