package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init создаёт глобальный логгер: production-конфиг при ENV=production,
// иначе development. LOG_LEVEL переопределяет уровень.
func Init() error {
	var err error
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if os.Getenv("ENV") == "production" {
			cfg = zap.NewProductionConfig()
		}
		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			var level zapcore.Level
			if err = level.UnmarshalText([]byte(lvl)); err != nil {
				return
			}
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
		log, err = cfg.Build()
		if err == nil {
			zap.ReplaceGlobals(log)
		}
	})
	return err
}

// L возвращает глобальный логгер
func L() *zap.Logger {
	if log == nil {
		if err := Init(); err != nil || log == nil {
			return zap.NewNop()
		}
	}
	return log
}
