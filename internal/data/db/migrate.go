package db

import (
	"fmt"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates or updates every table. Pending-notification scans
// rely on the modified_at index carried by the audit columns.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
