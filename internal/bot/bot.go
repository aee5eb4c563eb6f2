package bot

import (
	"DietTracker/internal/config"
	"DietTracker/internal/handlers"
	"DietTracker/internal/tracker"
	"DietTracker/internal/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

// Bot — telegram-бот вместе с расписанием еженедельных отчётов
type Bot struct {
	tb   *tele.Bot
	cron *cron.Cron
	log  *zap.Logger

	// закрывается в Run: Stop без запущенного поллера у telebot зависает
	running chan struct{}
}

// BotInit создаёт бота и регистрирует обработчики. Без TG_TOKEN возвращает nil.
func BotInit(cfg *config.Config, tr *tracker.Tracker, log *zap.Logger) *Bot {
	if cfg.TGtoken == "" {
		return nil
	}
	pref := tele.Settings{
		Token:  cfg.TGtoken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		// апдейты обрабатываются по одному, чтобы не перемешивать чтение-запись коллекций
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			log.Error("Ошибка обработчика", zap.Error(err))
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		log.Error("Failed to create bot", zap.Error(err))
		return nil
	}

	b.Use(middleware.Recover(func(err error, c tele.Context) {
		log.Error("Паника в обработчике", zap.Error(err))
	}))
	if cfg.OwnerChatID != 0 {
		// дневник один, поэтому писать в него может только владелец
		b.Use(middleware.Whitelist(cfg.OwnerChatID))
	}

	b.Handle("/start", handlers.StartHandler(log))
	b.Handle("/help", handlers.HelpHandler())
	b.Handle(utils.BtnHelpText, handlers.HelpHandler())

	b.Handle("/foods", handlers.FoodsHandler(tr, log))
	b.Handle(utils.BtnFoodsText, handlers.FoodsHandler(tr, log))
	b.Handle("/addfood", handlers.AddFoodHandler(tr, log))
	b.Handle(utils.BtnAddText, handlers.AddFoodHandler(tr, log))
	b.Handle("/editfood", handlers.EditFoodHandler(tr, log))
	handlers.RegisterListCallbacks(b, tr, log)

	b.Handle("/meal", handlers.MealHandler(tr, log))
	b.Handle("/meals", handlers.MealsHandler(tr, log))
	handlers.RegisterMealCallbacks(b, tr, log)

	b.Handle("/goal", handlers.GoalHandler(tr, log))
	b.Handle("/today", handlers.TodayHandler(tr, log))
	b.Handle(utils.BtnTodayText, handlers.TodayHandler(tr, log))
	b.Handle("/week", handlers.WeekHandler(tr, log))
	b.Handle(utils.BtnWeekText, handlers.WeekHandler(tr, log))
	b.Handle("/export", handlers.ExportHandler(tr, log))

	// Обрабатывать ВСЕ текстовые сообщения для пошагового ввода
	b.Handle(tele.OnText, handlers.AddTextHandler(tr, log))

	bot := &Bot{tb: b, log: log, running: make(chan struct{})}
	if cfg.OwnerChatID != 0 {
		c, err := handlers.StartNotifier(b, tr, cfg.ReportCron, cfg.OwnerChatID, log)
		if err != nil {
			log.Warn("Еженедельные отчёты отключены", zap.Error(err))
		}
		bot.cron = c
	}
	return bot
}

// Run блокируется до Stop
func (b *Bot) Run() {
	if b == nil || b.tb == nil {
		return
	}
	close(b.running)
	b.log.Info("Bot started")
	b.tb.Start()
}

// Stop останавливает расписание, дожидаясь текущего отчёта, и поллер бота
func (b *Bot) Stop() {
	if b == nil {
		return
	}
	if b.cron != nil {
		<-b.cron.Stop().Done()
	}
	select {
	case <-b.running:
		b.tb.Stop()
	default:
	}
	b.log.Info("Bot stopped")
}
