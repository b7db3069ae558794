// Package outletrepo persists outlets with their fee schedule. Closed outlets are
// soft-deleted.
package outletrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/outlet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OutletDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Lat             float64         `gorm:"type:double precision;not null"`
	Lon             float64         `gorm:"type:double precision;not null"`
	ServiceRadiusKm decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	BaseFee         decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	PerKmFee        decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CurrencyScale   int32           `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

func (OutletDTO) TableName() string {
	return "outlets"
}

func fromDomain(o *outlet.Outlet) OutletDTO {
	dto := OutletDTO{
		ID:              o.ID().Bytes(),
		Name:            o.Name(),
		Lat:             o.Location().Lat(),
		Lon:             o.Location().Lon(),
		ServiceRadiusKm: o.ServiceRadiusKm(),
		BaseFee:         o.Fees().BaseFee,
		PerKmFee:        o.Fees().PerKm,
		CurrencyScale:   o.CurrencyScale(),
	}
	if o.DeletedAt() != nil {
		dto.DeletedAt = gorm.DeletedAt{Time: *o.DeletedAt(), Valid: true}
	}
	return dto
}

func toDomain(dto OutletDTO) (*outlet.Outlet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	var deletedAt *time.Time
	if dto.DeletedAt.Valid {
		deletedAt = &dto.DeletedAt.Time
	}
	return outlet.RestoreOutlet(
		id,
		dto.Name,
		location,
		dto.ServiceRadiusKm,
		outlet.FeeSchedule{BaseFee: dto.BaseFee, PerKm: dto.PerKmFee},
		dto.CurrencyScale,
		deletedAt,
	)
}
