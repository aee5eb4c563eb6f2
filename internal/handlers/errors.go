package handlers

import (
	"DietTracker/internal/repository"
	"DietTracker/internal/summary"
	"DietTracker/internal/tracker"
	"errors"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// errorText — сообщение пользователю по ошибке ядра.
// known=false для ошибок хранилища и прочих непредвиденных.
func errorText(err error) (text string, known bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		return "Продукт с таким названием уже есть 🙁", true
	case errors.Is(err, repository.ErrNotFound):
		return "Запись не найдена.", true
	case errors.Is(err, summary.ErrInvalidDate), errors.Is(err, errBadFormat):
		return "Не получилось разобрать команду, проверь формат. /help", true
	case errors.Is(err, tracker.ErrInvalidQuantity):
		return "Количество должно быть больше нуля.", true
	default:
		return "Произошла ошибка, попробуйте позже 🙁", false
	}
}

func replyError(c tele.Context, log *zap.Logger, err error) error {
	text, known := errorText(err)
	if !known {
		log.Error("Ошибка обработки команды", zap.String("text", c.Text()), zap.Error(err))
	}
	return c.Send(text)
}
