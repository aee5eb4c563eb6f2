package db

import (
	"DietTracker/internal/models"
	"os"

	"go.uber.org/zap"
)

// Migrate создаёт таблицу kv_entries (value — jsonb через datatypes.JSON)
func Migrate(log *zap.Logger) {
	if err := DB.AutoMigrate(&models.KVEntry{}); err != nil {
		log.Error("Ошибка при миграции таблиц", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Автомиграция таблиц завершена успешно")
}
