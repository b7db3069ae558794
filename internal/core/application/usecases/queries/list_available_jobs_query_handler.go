package queries

import (
	"context"
	"time"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAvailableJobsQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableJobsQueryHandler(db *gorm.DB) ListAvailableJobsQueryHandler {
	return ListAvailableJobsQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when nothing is waiting.
func (h ListAvailableJobsQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableJobsQuery,
) ([]AvailableJob, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var kind *string
	if query.Kind() != nil {
		name := query.Kind().String()
		kind = &name
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.order_id,
			j.kind,
			j.created_at,
			CASE WHEN j.kind = ? THEN o.scheduled_pickup_at ELSE o.scheduled_delivery_at END,
			o.address_line,
			o.address_city,
			o.address_lat,
			o.address_lon
		FROM transport_jobs j
		JOIN orders o ON o.id = j.order_id
		WHERE j.status = ?
			AND o.outlet_id = ?
			AND (CAST(? AS varchar) IS NULL OR j.kind = ?)
		ORDER BY j.created_at, j.id
		LIMIT ?
	`, order.Pickup.String(), order.JobUnclaimed.String(), query.OutletID().Bytes(), kind, kind, query.Limit()).Rows()
	if err != nil {
		return nil, pgerrs.Classify(err)
	}
	defer rows.Close()

	jobs := make([]AvailableJob, 0)
	for rows.Next() {
		var (
			job            AvailableJob
			jobID, orderID uuid.UUID
			kindName       string
			scheduledAt    *time.Time
		)

		err = rows.Scan(
			&jobID,
			&orderID,
			&kindName,
			&job.CreatedAt,
			&scheduledAt,
			&job.Address,
			&job.City,
			&job.Lat,
			&job.Lon,
		)
		if err != nil {
			return nil, pgerrs.Classify(err)
		}

		if job.JobID, err = kernel.UUIDFromBytes(jobID[:]); err != nil {
			return nil, err
		}
		if job.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if job.Kind, err = order.ParseJobKind(kindName); err != nil {
			return nil, err
		}
		job.ScheduledAt = scheduledAt
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerrs.Classify(err)
	}

	return jobs, nil
}
