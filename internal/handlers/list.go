package handlers

import (
	"DietTracker/internal/tracker"
	"DietTracker/internal/utils"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// /foods — справочник продуктов с inline-кнопками
func FoodsHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	log.Info("FoodsHandler initialized")
	return func(c tele.Context) error {
		foods, err := tr.Foods()
		if err != nil {
			return replyError(c, log, err)
		}
		if len(foods) == 0 {
			return c.Send("Справочник пуст. Добавь продукт: /addfood")
		}

		markup := &tele.ReplyMarkup{}
		var rows []tele.Row
		for _, f := range foods {
			btn := markup.Data(f.Label(), "food_detail", f.ID)
			rows = append(rows, markup.Row(btn))
		}
		markup.Inline(rows...)
		return c.Send("🥗 Твои продукты:", markup)
	}
}

func foodDetailHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		food, ok, err := tr.Food(c.Data())
		if err != nil {
			log.Error("Ошибка чтения продукта", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка"})
		}
		if !ok {
			return c.Respond(&tele.CallbackResponse{Text: "Продукт не найден"})
		}
		markup := &tele.ReplyMarkup{}
		btnDelete := markup.Data("🗑 Удалить", "food_delete", food.ID)
		markup.Inline(markup.Row(btnDelete))
		_ = c.Respond()
		return c.Edit(utils.FoodLine(food), markup)
	}
}

func foodDeleteHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		food, ok, err := tr.DeleteFood(c.Data())
		if err != nil {
			log.Error("Ошибка удаления продукта", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка при удалении"})
		}
		if !ok {
			return c.Respond(&tele.CallbackResponse{Text: "Продукт уже удалён"})
		}
		markup := &tele.ReplyMarkup{}
		btnUndo := markup.Data("↩️ Отменить", "food_undo", food.ID)
		markup.Inline(markup.Row(btnUndo))
		_ = c.Respond()
		return c.Edit(fmt.Sprintf("Продукт «%s» удалён 🗑", food.Name), markup)
	}
}

func foodUndoHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		food, ok, err := tr.UndoFoodDelete(c.Data())
		if err != nil {
			text, _ := errorText(err)
			_ = c.Edit("Не удалось восстановить: "+text, &tele.ReplyMarkup{})
			return c.Respond()
		}
		if !ok {
			_ = c.Edit("Отменить уже нельзя ⌛", &tele.ReplyMarkup{})
			return c.Respond()
		}
		_ = c.Respond(&tele.CallbackResponse{Text: "Восстановлено"})
		return c.Edit("↩️ Восстановлен: "+utils.FoodLine(food), &tele.ReplyMarkup{})
	}
}

// Регистрация callback-хендлеров справочника
func RegisterListCallbacks(b *tele.Bot, tr *tracker.Tracker, log *zap.Logger) {
	b.Handle(&tele.Btn{Unique: "food_detail"}, foodDetailHandler(tr, log))
	b.Handle(&tele.Btn{Unique: "food_delete"}, foodDeleteHandler(tr, log))
	b.Handle(&tele.Btn{Unique: "food_undo"}, foodUndoHandler(tr, log))
}
