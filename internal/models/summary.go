package models

import "math"

type SummaryStatus string

const (
	StatusOver   SummaryStatus = "over"
	StatusUnder  SummaryStatus = "under"
	StatusOn     SummaryStatus = "on"
	StatusNoGoal SummaryStatus = "no-goal"
)

// DailySummary — вычисляемая сводка за день, не хранится
type DailySummary struct {
	Date         string        `json:"date"`
	TotalKcal    float64       `json:"totalKcal"`
	GoalKcal     *float64      `json:"goalKcal"`
	Difference   *float64      `json:"difference"`
	Status       SummaryStatus `json:"status"`
	TotalProtein float64       `json:"totalProtein"`
	TotalCarbs   float64       `json:"totalCarbs"`
	TotalFat     float64       `json:"totalFat"`
}

// GoalProgress — процент выполнения цели, не больше 200
func (s DailySummary) GoalProgress() int {
	if s.GoalKcal == nil || *s.GoalKcal <= 0 {
		return 0
	}
	return int(math.Min(200, RoundKcal(s.TotalKcal / *s.GoalKcal * 100)))
}

// MacroShare — доля одного макронутриента за период
type MacroShare struct {
	Name    string  `json:"name"`
	Grams   float64 `json:"grams"`
	Percent int     `json:"percent"`
}
