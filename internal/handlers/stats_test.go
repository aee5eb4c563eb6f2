package handlers

import (
	"DietTracker/internal/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestBuildWeekMessage(t *testing.T) {
	week := []models.DailySummary{
		{Date: "2025-10-20", TotalKcal: 2100, GoalKcal: ptr(2000), Difference: ptr(100), Status: models.StatusOver, TotalProtein: 100, TotalCarbs: 200, TotalFat: 50},
		{Date: "2025-10-21", TotalKcal: 1900, GoalKcal: ptr(2000), Difference: ptr(-100), Status: models.StatusUnder, TotalProtein: 100, TotalCarbs: 200, TotalFat: 50},
		{Date: "2025-10-22", TotalKcal: 0, Status: models.StatusNoGoal},
	}
	msg := buildWeekMessage(week)
	assert.Contains(t, msg, "с 2025-10-20 по 2025-10-22")
	assert.Contains(t, msg, "🟥🟩⬜")
	assert.Contains(t, msg, "Всего: 4000 ккал, в среднем 1333 ккал/день")
	assert.Contains(t, msg, "В пределах цели: 1/2 дней")
	assert.Contains(t, msg, "Белки: 200 г (29%)")
	assert.Contains(t, msg, "🟥 Пн 2025-10-20: 2100 ккал / 2000")

	assert.Empty(t, buildWeekMessage(nil))
}

func TestDailyMessage(t *testing.T) {
	s := models.DailySummary{Date: "2025-10-25", TotalKcal: 400, GoalKcal: ptr(500), Difference: ptr(-100), Status: models.StatusUnder, TotalProtein: 8, TotalCarbs: 90, TotalFat: 2}
	msg := dailyMessage(s)
	assert.Contains(t, msg, "Съедено: 400 ккал из 500")
	assert.Contains(t, msg, "Осталось 100 ккал")
	assert.Contains(t, msg, strings.Repeat("🟩", 8)+strings.Repeat("⬜", 2)+" 80%")

	noGoal := dailyMessage(models.DailySummary{Date: "2025-10-25", Status: models.StatusNoGoal})
	assert.Contains(t, noGoal, "Цель не задана")
	assert.NotContains(t, noGoal, "%")
}

func TestProgressBarCapped(t *testing.T) {
	assert.Equal(t, strings.Repeat("🟩", 10), progressBar(200))
	assert.Equal(t, strings.Repeat("⬜", 10), progressBar(0))
	assert.Equal(t, strings.Repeat("⬜", 10), progressBar(-25))
}

func TestDailyMessageNegativeTotal(t *testing.T) {
	// итог приёма пищи мог прийти из хранилища отрицательным
	s := models.DailySummary{Date: "2025-10-25", TotalKcal: -500, GoalKcal: ptr(2000), Difference: ptr(-2500), Status: models.StatusUnder}
	require.Equal(t, -25, s.GoalProgress())

	var msg string
	require.NotPanics(t, func() { msg = dailyMessage(s) })
	assert.Contains(t, msg, strings.Repeat("⬜", 10)+" -25%")
}

func TestLastFullWeekEnd(t *testing.T) {
	// понедельник 27.10.2025 -> воскресенье 26.10
	assert.Equal(t, "2025-10-26", lastFullWeekEnd(time.Date(2025, 10, 27, 7, 0, 0, 0, time.UTC)))
	// воскресенье 26.10 -> предыдущее воскресенье 19.10
	assert.Equal(t, "2025-10-19", lastFullWeekEnd(time.Date(2025, 10, 26, 7, 0, 0, 0, time.UTC)))
}

func TestErrorText(t *testing.T) {
	_, known := errorText(errBadFormat)
	assert.True(t, known)
	_, known = errorText(assert.AnError)
	assert.False(t, known)
}
