package handlers

import (
	"DietTracker/internal/models"
	"DietTracker/internal/tracker"
	"DietTracker/internal/utils"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

const (
	stepName = iota
	stepUnit
	stepKcal
	stepProtein
	stepCarbs
	stepFat
)

var addStates = struct {
	sync.RWMutex
	m map[int64]*AddState
}{m: make(map[int64]*AddState)}

// AddState — пошаговое добавление продукта
type AddState struct {
	Step int
	Food models.Food
}

var stepPrompts = map[int]string{
	stepName:    "📝 Введи название продукта:",
	stepUnit:    "📏 Единица измерения (например «100 g» или «1 шт»), «-» если не нужна:",
	stepKcal:    "🔥 Калорий на единицу:",
	stepProtein: "🥩 Белки, г на единицу (0 если нет):",
	stepCarbs:   "🍞 Углеводы, г на единицу:",
	stepFat:     "🧈 Жиры, г на единицу:",
}

// /addfood — одной строкой name;unit;kcal;protein;carbs;fat или пошагово
func AddFoodHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	log.Info("AddFoodHandler initialized")
	return func(c tele.Context) error {
		if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
			food, err := parseFoodArgs(payload)
			if err != nil {
				return replyError(c, log, err)
			}
			return saveFood(c, tr, log, food, "✅ Продукт добавлен")
		}

		addStates.Lock()
		addStates.m[c.Sender().ID] = &AddState{Step: stepName}
		addStates.Unlock()
		return c.Send(stepPrompts[stepName], utils.CancelKeyboard())
	}
}

// /editfood name;unit;kcal;protein;carbs;fat — продукт ищется по названию,
// пустые и пропущенные поля остаются прежними
func EditFoodHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		fields, err := parseFoodFields(c.Message().Payload)
		if err != nil {
			return replyError(c, log, err)
		}
		foods, err := tr.Foods()
		if err != nil {
			return replyError(c, log, err)
		}
		existing, ok := findFoodByName(foods, fields.Food.Name)
		if !ok {
			return c.Send(fmt.Sprintf("Продукт «%s» не найден. Список: /foods", fields.Food.Name))
		}
		return saveFood(c, tr, log, fields.mergeInto(existing), "✏️ Продукт обновлён")
	}
}

func saveFood(c tele.Context, tr *tracker.Tracker, log *zap.Logger, food models.Food, title string) error {
	saved, err := tr.SaveFood(food)
	if err != nil {
		return replyError(c, log, err)
	}
	log.Info("Продукт сохранён из бота", zap.String("id", saved.ID), zap.String("name", saved.Name))
	return c.Send(title+":\n"+utils.FoodLine(saved), utils.MainMenuKeyboard())
}

// Обрабатывает все текстовые сообщения для пошагового ввода
func AddTextHandler(tr *tracker.Tracker, log *zap.Logger) func(c tele.Context) error {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		text := strings.TrimSpace(c.Text())

		addStates.Lock()
		state, ok := addStates.m[userID]
		if !ok {
			addStates.Unlock()
			return c.Send("Не понял 🤔 Список команд: /help")
		}
		if text == utils.BtnCancelText {
			delete(addStates.m, userID)
			addStates.Unlock()
			return c.Send("Добавление отменено.", utils.MainMenuKeyboard())
		}

		done, prompt := applyStep(state, text)
		if done {
			delete(addStates.m, userID)
		}
		food := state.Food
		addStates.Unlock()

		if !done {
			return c.Send(prompt, utils.CancelKeyboard())
		}
		return saveFood(c, tr, log, food, "✅ Продукт добавлен")
	}
}

// applyStep записывает ответ в состояние. done — все поля заполнены,
// иначе prompt — следующий вопрос (или повтор текущего при ошибке).
func applyStep(state *AddState, text string) (done bool, prompt string) {
	switch state.Step {
	case stepName:
		if text == "" {
			return false, stepPrompts[stepName]
		}
		state.Food.Name = text
	case stepUnit:
		if text != "-" {
			state.Food.Unit = text
		}
	default:
		v, err := parseNonNegative(text)
		if err != nil {
			return false, "Нужно неотрицательное число. " + stepPrompts[state.Step]
		}
		switch state.Step {
		case stepKcal:
			state.Food.Kcal = v
		case stepProtein:
			state.Food.Protein = v
		case stepCarbs:
			state.Food.Carbs = v
		case stepFat:
			state.Food.Fat = v
			return true, ""
		}
	}
	state.Step++
	return false, stepPrompts[state.Step]
}
