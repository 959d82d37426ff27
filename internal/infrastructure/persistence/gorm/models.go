// Package gorm provides the GORM-backed key-value adapter shared by the
// sqlite and postgres drivers.
package gorm

import (
	"time"

	"gorm.io/gorm"
)

// KVEntryModel is one stored key. The recipe collection is a single row.
type KVEntryModel struct {
	Key       string `gorm:"type:varchar(191);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for KVEntryModel
func (KVEntryModel) TableName() string {
	return "kv_entries"
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&KVEntryModel{})
}
