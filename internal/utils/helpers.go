package utils

import (
	"DietTracker/internal/models"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const (
	BtnTodayText  = "🍽 Сегодня"
	BtnWeekText   = "📅 Неделя"
	BtnFoodsText  = "🥗 Продукты"
	BtnAddText    = "➕ Продукт"
	BtnHelpText   = "❓ Помощь"
	BtnCancelText = "❌ Отмена"
)

// Клавиатура с кнопкой "Отмена" для пошагового ввода
func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	btnCancel := menu.Text(BtnCancelText)
	menu.Reply(menu.Row(btnCancel))
	return menu
}

// Главное меню
func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(BtnTodayText), menu.Text(BtnWeekText)),
		menu.Row(menu.Text(BtnFoodsText), menu.Text(BtnAddText), menu.Text(BtnHelpText)),
	)
	return menu
}

func SendMainMenu(c tele.Context) error {
	return c.Send("📋 Главное меню:\n\n"+
		"/foods – справочник продуктов\n"+
		"/addfood – добавить продукт (пошагово или name;unit;kcal;protein;carbs;fat)\n"+
		"/editfood – изменить продукт: name;unit;kcal;protein;carbs;fat\n"+
		"/meal – записать приём пищи: [2025-10-25] [12:30] Рис*2, Курица*1.5\n"+
		"/meals – приёмы пищи за день\n"+
		"/goal – цель по калориям: 2000 [2025-10-25]\n"+
		"/today – сводка за сегодня\n"+
		"/week – сводка за неделю\n"+
		"/export – CSV за неделю\n"+
		"/help – помощь", MainMenuKeyboard())
}

// CloseMenu убирает reply-клавиатуру
func CloseMenu() *tele.ReplyMarkup {
	replyMarkup := &tele.ReplyMarkup{}
	replyMarkup.RemoveKeyboard = true
	return replyMarkup
}

func FormatDateRu(t time.Time) string {
	months := []string{"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"}
	day := t.Day()
	month := months[int(t.Month())-1]
	year := t.Year()
	return fmt.Sprintf("%d %s %d", day, month, year)
}

// FormatISODateRu переводит YYYY-MM-DD в «25 октября 2025», остальное возвращает как есть
func FormatISODateRu(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return FormatDateRu(t)
}

// WeekdayRu — короткое имя дня недели (Пн..Вс)
func WeekdayRu(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	days := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return days[t.Weekday()]
}

// FormatNumber печатает число без лишних нулей: 6.5, 200
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber понимает и точку, и запятую как десятичный разделитель
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// FoodLine — строка продукта для списков
func FoodLine(f models.Food) string {
	return fmt.Sprintf("%s — %s ккал · Б %s / Ж %s / У %s",
		f.Label(), FormatNumber(f.Kcal), FormatNumber(f.Protein), FormatNumber(f.Fat), FormatNumber(f.Carbs))
}

// MealText — приём пищи с позициями
func MealText(m models.Meal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕐 %s %s — %s ккал (Б %s / Ж %s / У %s)",
		m.Date, m.Time, FormatNumber(m.TotalKcal), FormatNumber(m.TotalProtein), FormatNumber(m.TotalFat), FormatNumber(m.TotalCarbs)))
	for _, it := range m.Items {
		name := it.FoodName
		if it.Unit != "" {
			name += " (" + it.Unit + ")"
		}
		sb.WriteString(fmt.Sprintf("\n  • %s × %s = %s ккал", name, FormatNumber(it.Quantity), FormatNumber(it.ItemKcal)))
	}
	return sb.String()
}
