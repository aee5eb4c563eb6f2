package handlers

import (
	"DietTracker/internal/utils"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

func StartHandler(log *zap.Logger) func(c tele.Context) error {
	log.Info("StartHandler initialized")
	return func(c tele.Context) error {
		name := c.Sender().FirstName
		msg := fmt.Sprintf(
			`👋 Привет, %s!

Я помогу вести дневник питания 🥗.

С моей помощью ты можешь:
✅ Собрать справочник продуктов с калориями и БЖУ.
✅ Записывать приёмы пищи одной командой.
✅ Ставить цель по калориям на день.
✅ Смотреть сводку за день и неделю, выгружать CSV.

Чтобы добавить первый продукт, отправь команду:
/addfood

Все команды:
/help
`, name)
		return c.Send(msg, utils.MainMenuKeyboard())
	}
}
