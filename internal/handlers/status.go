package handlers

import (
	"DietTracker/internal/models"
	"DietTracker/internal/tracker"
	"DietTracker/internal/utils"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// /today [date] — сводка за день
func TodayHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		date, err := parseDateArg(c.Message().Payload, tr.Today())
		if err != nil {
			return replyError(c, log, err)
		}
		s, err := tr.DailySummary(date)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(dailyMessage(s))
	}
}

// /goal kcal [date] — цель по калориям
func GoalHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		date, kcal, err := parseGoalArgs(c.Message().Payload, tr.Today())
		if err != nil {
			return replyError(c, log, err)
		}
		if err := tr.SetGoal(date, kcal); err != nil {
			return replyError(c, log, err)
		}
		s, err := tr.DailySummary(date)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(fmt.Sprintf("🎯 Цель на %s: %s ккал\n\n%s", utils.FormatISODateRu(date), utils.FormatNumber(kcal), dailyMessage(s)))
	}
}

func statusText(s models.DailySummary) string {
	switch s.Status {
	case models.StatusOver:
		return fmt.Sprintf("🔴 Перебор на %s ккал", utils.FormatNumber(*s.Difference))
	case models.StatusUnder:
		return fmt.Sprintf("🟢 Осталось %s ккал", utils.FormatNumber(-*s.Difference))
	case models.StatusOn:
		return "🎯 Ровно в цель"
	default:
		return "Цель не задана: /goal 2000"
	}
}

// progressBar — десять клеток, заполненных по проценту цели (от 0 до 100)
func progressBar(percent int) string {
	filled := min(max(percent/10, 0), 10)
	return strings.Repeat("🟩", filled) + strings.Repeat("⬜", 10-filled)
}

func dailyMessage(s models.DailySummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Сводка за %s:\n\n", utils.FormatISODateRu(s.Date)))
	sb.WriteString(fmt.Sprintf("Съедено: %s ккал", utils.FormatNumber(s.TotalKcal)))
	if s.GoalKcal != nil {
		sb.WriteString(fmt.Sprintf(" из %s", utils.FormatNumber(*s.GoalKcal)))
	}
	sb.WriteString("\n" + statusText(s) + "\n")
	if s.GoalKcal != nil && *s.GoalKcal > 0 {
		p := s.GoalProgress()
		sb.WriteString(fmt.Sprintf("%s %d%%\n", progressBar(p), p))
	}
	sb.WriteString(fmt.Sprintf("\nБ %s г · Ж %s г · У %s г",
		utils.FormatNumber(s.TotalProtein), utils.FormatNumber(s.TotalFat), utils.FormatNumber(s.TotalCarbs)))
	return sb.String()
}
