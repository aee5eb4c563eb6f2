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

// /meal [date] [time] Рис*2, Курица*1.5 — записать приём пищи
func MealHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		cmd, err := parseMealArgs(c.Message().Payload, tr.Now())
		if err != nil {
			return replyError(c, log, err)
		}
		foods, err := tr.Foods()
		if err != nil {
			return replyError(c, log, err)
		}
		reqs := make([]tracker.ItemRequest, 0, len(cmd.Items))
		var missing []string
		for _, it := range cmd.Items {
			food, ok := findFoodByName(foods, it.Name)
			if !ok {
				missing = append(missing, it.Name)
				continue
			}
			reqs = append(reqs, tracker.ItemRequest{FoodID: food.ID, Quantity: it.Quantity})
		}
		if len(missing) > 0 {
			return c.Send(fmt.Sprintf("Не нашёл в справочнике: %s\nДобавь их через /addfood", strings.Join(missing, ", ")))
		}

		items, err := tr.BuildItems(reqs)
		if err != nil {
			return replyError(c, log, err)
		}
		meal, err := tr.SaveMeal(models.MealInput{Date: cmd.Date, Time: cmd.Time, Items: items})
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send("✅ Записано:\n" + utils.MealText(meal))
	}
}

// /meals [date] — приёмы пищи за день с кнопками удаления
func MealsHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		date, err := parseDateArg(c.Message().Payload, tr.Today())
		if err != nil {
			return replyError(c, log, err)
		}
		meals, err := tr.MealsByDate(date)
		if err != nil {
			return replyError(c, log, err)
		}
		if len(meals) == 0 {
			return c.Send("За " + utils.FormatISODateRu(date) + " записей нет.")
		}

		var sb strings.Builder
		sb.WriteString("📖 Приёмы пищи за " + utils.FormatISODateRu(date) + ":\n")
		markup := &tele.ReplyMarkup{}
		var rows []tele.Row
		for _, m := range meals {
			sb.WriteString("\n" + utils.MealText(m) + "\n")
			btn := markup.Data(fmt.Sprintf("🗑 %s — %s ккал", m.Time, utils.FormatNumber(m.TotalKcal)), "meal_delete", m.ID)
			rows = append(rows, markup.Row(btn))
		}
		markup.Inline(rows...)
		return c.Send(sb.String(), markup)
	}
}

func mealDeleteHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		meal, ok, err := tr.DeleteMeal(c.Data())
		if err != nil {
			log.Error("Ошибка удаления приёма пищи", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка при удалении"})
		}
		if !ok {
			return c.Respond(&tele.CallbackResponse{Text: "Запись уже удалена"})
		}
		markup := &tele.ReplyMarkup{}
		btnUndo := markup.Data("↩️ Отменить", "meal_undo", meal.ID)
		markup.Inline(markup.Row(btnUndo))
		_ = c.Respond()
		return c.Edit(fmt.Sprintf("Приём пищи %s %s удалён 🗑", meal.Date, meal.Time), markup)
	}
}

func mealUndoHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		meal, ok, err := tr.UndoMealDelete(c.Data())
		if err != nil {
			log.Error("Ошибка восстановления приёма пищи", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка"})
		}
		if !ok {
			_ = c.Edit("Отменить уже нельзя ⌛", &tele.ReplyMarkup{})
			return c.Respond()
		}
		_ = c.Respond(&tele.CallbackResponse{Text: "Восстановлено"})
		return c.Edit("↩️ Восстановлен:\n"+utils.MealText(meal), &tele.ReplyMarkup{})
	}
}

func RegisterMealCallbacks(b *tele.Bot, tr *tracker.Tracker, log *zap.Logger) {
	b.Handle(&tele.Btn{Unique: "meal_delete"}, mealDeleteHandler(tr, log))
	b.Handle(&tele.Btn{Unique: "meal_undo"}, mealUndoHandler(tr, log))
}
