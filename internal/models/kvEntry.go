package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry — одна сериализованная коллекция (продукты, приёмы пищи, цели)
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
