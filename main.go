package main

import (
	"context"
	"DietTracker/internal/api"
	"DietTracker/internal/bot"
	"DietTracker/internal/config"
	"DietTracker/internal/db"
	"DietTracker/internal/logger"
	"DietTracker/internal/store"
	"DietTracker/internal/tracker"
	"DietTracker/internal/undo"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}

	log := logger.L()
	defer log.Sync()
	log.Info("Инициализация логгера успешна")
	cfg := config.Load(log)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(200))

	var s store.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("Данные хранятся в памяти и пропадут при перезапуске")
		s = store.NewMemoryStore()
	default:
		db.ConnectDB(cfg, log)
		db.Migrate(log)
		defer db.Close(log)
		sqlDB, err := db.SQL()
		if err != nil {
			log.Fatal("Нет пула соединений", zap.Error(err))
		}
		health.AddReadinessCheck("database", healthcheck.DatabasePingCheck(sqlDB, 2*time.Second))
		s = store.NewGormStore(db.DB, log)
	}

	tr := tracker.New(s, undo.NewBuffer(cfg.UndoWindow, undo.AfterFunc), log)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(tr, health, log),
	}
	go func() {
		log.Info("HTTP API слушает", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка HTTP сервера", zap.Error(err))
		}
	}()

	tg := bot.BotInit(cfg, tr, log)
	go tg.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Остановка")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("HTTP сервер остановлен не чисто", zap.Error(err))
	}
	tg.Stop()
}
