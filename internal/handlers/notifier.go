package handlers

import (
	"DietTracker/internal/tracker"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Запускает еженедельную отправку сводки и CSV владельцу по расписанию
func StartNotifier(bot *tele.Bot, tr *tracker.Tracker, schedule string, ownerID int64, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Info("Отправка еженедельной статистики")
		SendWeeklyReport(bot, tr, ownerID, lastFullWeekEnd(tr.Now()), log)
	})
	if err != nil {
		log.Error("Некорректное расписание отчёта", zap.String("schedule", schedule), zap.Error(err))
		return nil, err
	}
	c.Start()
	return c, nil
}

// Отправляет сводку и CSV за неделю, заканчивающуюся end
func SendWeeklyReport(bot *tele.Bot, tr *tracker.Tracker, chatID int64, end string, log *zap.Logger) {
	week, err := tr.WeeklySummary(end, tracker.WeekDays)
	if err != nil {
		log.Error("Ошибка построения недельной сводки", zap.Error(err))
		return
	}
	to := tele.ChatID(chatID)
	if _, err := bot.Send(to, buildWeekMessage(week), &tele.SendOptions{ParseMode: tele.ModeMarkdown}); err != nil {
		log.Warn("Не удалось отправить статистику", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	doc, err := weeklyDocument(tr, end)
	if err != nil {
		log.Error("Ошибка выгрузки CSV", zap.Error(err))
		return
	}
	if _, err := bot.Send(to, doc); err != nil {
		log.Warn("Не удалось отправить CSV", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// lastFullWeekEnd — воскресенье предыдущей полной недели (понедельник-воскресенье)
func lastFullWeekEnd(now time.Time) string {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Go: Sunday=0, а у нас Вс=7
	}
	return now.AddDate(0, 0, -weekday).Format("2006-01-02")
}
