package app

import (
	"go-elms/internal/admin"
	"go-elms/internal/employee"
	"go-elms/internal/hr"
	"go-elms/internal/leave"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/counter"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. The outbox table is plain SQL
// because the outbox repository works on database/sql directly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&admin.Admin{},
		&hr.HR{},
		&employee.Employee{},
		&leave.Leave{},
		&counter.Counter{},
	); err != nil {
		return err
	}
	return db.Exec(kafka.Schema).Error
}
