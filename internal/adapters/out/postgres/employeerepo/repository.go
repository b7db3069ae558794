package employeerepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEmployeeRepository implements ports.EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Add saves an employee; a tombstoned employee is stored already deleted.
func (r *GormEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return pgerrs.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

// Get reports tombstoned employees as not found.
func (r *GormEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, pgerrs.Classify(err)
	}

	return toDomain(dto)
}
