// Package employeerepo persists staff accounts. Removed employees keep their row
// with deleted_at set; GORM's soft delete hides them from every read.
package employeerepo

import (
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OutletID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Role      string         `gorm:"type:varchar(16);not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

func fromDomain(e *employee.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:       e.ID().Bytes(),
		OutletID: e.OutletID().Bytes(),
		Name:     e.Name(),
		Role:     e.Role().String(),
	}
	if e.DeletedAt() != nil {
		dto.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt(), Valid: true}
	}
	return dto
}

func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	outletID, err := kernel.UUIDFromBytes(dto.OutletID[:])
	if err != nil {
		return nil, err
	}
	role, err := employee.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var deletedAt *time.Time
	if dto.DeletedAt.Valid {
		deletedAt = &dto.DeletedAt.Time
	}
	return employee.RestoreEmployee(id, outletID, dto.Name, role, deletedAt)
}
