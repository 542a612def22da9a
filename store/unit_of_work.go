package store

import (
	"gorm.io/gorm"
)

// WithTransaction executes a function within a transaction
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}
