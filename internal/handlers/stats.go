package handlers

import (
	"DietTracker/internal/models"
	"DietTracker/internal/summary"
	"DietTracker/internal/tracker"
	"DietTracker/internal/utils"
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// /week [end] — сводка за 7 дней
func WeekHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		end, err := parseDateArg(c.Message().Payload, tr.Today())
		if err != nil {
			return replyError(c, log, err)
		}
		week, err := tr.WeeklySummary(end, tracker.WeekDays)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(buildWeekMessage(week), &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	}
}

// /export [end] — CSV за неделю файлом
func ExportHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		end, err := parseDateArg(c.Message().Payload, tr.Today())
		if err != nil {
			return replyError(c, log, err)
		}
		doc, err := weeklyDocument(tr, end)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(doc)
	}
}

func weeklyDocument(tr *tracker.Tracker, end string) (*tele.Document, error) {
	var buf bytes.Buffer
	name, err := tr.ExportWeeklyCSV(&buf, end)
	if err != nil {
		return nil, err
	}
	return &tele.Document{
		File:     tele.FromReader(&buf),
		FileName: name,
		MIME:     "text/csv",
		Caption:  "📎 Недельная сводка по " + utils.FormatISODateRu(end),
	}, nil
}

func dayMark(s models.DailySummary) string {
	switch s.Status {
	case models.StatusOver:
		return "🟥"
	case models.StatusUnder, models.StatusOn:
		return "🟩"
	default:
		return "⬜"
	}
}

// buildWeekMessage строит сообщение недельной статистики
func buildWeekMessage(week []models.DailySummary) string {
	if len(week) == 0 {
		return ""
	}
	var bar, sb strings.Builder
	var total float64
	withinGoal, withGoal := 0, 0
	for _, s := range week {
		bar.WriteString(dayMark(s))
		total += s.TotalKcal
		if s.GoalKcal != nil {
			withGoal++
			if s.Status != models.StatusOver {
				withinGoal++
			}
		}
		line := fmt.Sprintf("%s %s %s: %s ккал", dayMark(s), utils.WeekdayRu(s.Date), s.Date, utils.FormatNumber(s.TotalKcal))
		if s.GoalKcal != nil {
			line += " / " + utils.FormatNumber(*s.GoalKcal)
		}
		sb.WriteString(line + "\n")
	}

	first, last := week[0].Date, week[len(week)-1].Date
	msg := fmt.Sprintf("📈 *Статистика с %s по %s:*\n\n%s\n\n%s\nВсего: %s ккал, в среднем %s ккал/день\n✅ В пределах цели: %d/%d дней\n",
		first, last, bar.String(), sb.String(),
		utils.FormatNumber(total), utils.FormatNumber(models.RoundKcal(total/float64(len(week)))), withinGoal, withGoal)

	msg += "\nБЖУ за период:\n"
	for _, m := range summary.MacroBreakdown(week) {
		msg += fmt.Sprintf("%s: %s г (%d%%)\n", macroNameRu(m.Name), utils.FormatNumber(m.Grams), m.Percent)
	}
	msg += "\n🟩 – в пределах цели\n🟥 – перебор\n⬜ – цель не задана"
	return msg
}

func macroNameRu(name string) string {
	switch name {
	case "protein":
		return "Белки"
	case "carbs":
		return "Углеводы"
	case "fat":
		return "Жиры"
	}
	return name
}
