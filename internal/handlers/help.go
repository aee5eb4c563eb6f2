package handlers

import (
	"DietTracker/internal/utils"

	tele "gopkg.in/telebot.v4"
)

func HelpHandler() func(c tele.Context) error {
	return func(c tele.Context) error {
		return utils.SendMainMenu(c)
	}
}
