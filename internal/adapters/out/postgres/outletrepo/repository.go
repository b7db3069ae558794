package outletrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/outlet"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutletRepository implements ports.OutletRepository using GORM.
type GormOutletRepository struct {
	db *gorm.DB
}

func NewGormOutletRepository(db *gorm.DB) *GormOutletRepository {
	return &GormOutletRepository{db: db}
}

func (r *GormOutletRepository) Add(ctx context.Context, o *outlet.Outlet) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	return pgerrs.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

// Get reports closed outlets as not found.
func (r *GormOutletRepository) Get(ctx context.Context, id kernel.UUID) (*outlet.Outlet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OutletDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("outlet", id.String())
		}
		return nil, pgerrs.Classify(err)
	}

	return toDomain(dto)
}
