package postgres

import (
	"fmt"

	"laundry/internal/adapters/out/postgres/employeerepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/outletrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the workflow uses, including the
// partial unique index that allows one pending bypass request per stage.
func Migrate(db *gorm.DB) error {
	models := append([]any{&outletrepo.OutletDTO{}, &employeerepo.EmployeeDTO{}}, orderrepo.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range orderrepo.IndexStatements() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
