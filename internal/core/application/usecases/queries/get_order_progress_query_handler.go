package queries

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderProgressQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderProgressQueryHandler(db *gorm.DB) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderProgressQueryHandler) Handle(ctx context.Context, query GetOrderProgressQuery) (OrderProgress, error) {
	if err := query.Validate(); err != nil {
		return OrderProgress{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	progress, err := h.readOrder(db, query.OrderID())
	if err != nil {
		return OrderProgress{}, err
	}
	if progress.Stages, err = h.readStages(db, id); err != nil {
		return OrderProgress{}, err
	}
	if progress.Jobs, err = h.readJobs(db, id); err != nil {
		return OrderProgress{}, err
	}

	return progress, nil
}

func (h GetOrderProgressQueryHandler) readOrder(db *gorm.DB, orderID kernel.UUID) (OrderProgress, error) {
	var (
		progress                             OrderProgress
		outletID                             uuid.UUID
		status, paymentStatus                string
		totalWeight, totalPrice, deliveryFee decimal.NullDecimal
	)

	row := db.Raw(`
		SELECT
			outlet_id,
			status,
			payment_status,
			total_weight,
			total_price,
			delivery_fee,
			created_at,
			paid_at,
			delivered_at,
			disputed_at,
			completed_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&outletID,
		&status,
		&paymentStatus,
		&totalWeight,
		&totalPrice,
		&deliveryFee,
		&progress.CreatedAt,
		&progress.PaidAt,
		&progress.DeliveredAt,
		&progress.DisputedAt,
		&progress.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderProgress{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return OrderProgress{}, pgerrs.Classify(err)
	}

	progress.ID = orderID
	if progress.OutletID, err = kernel.UUIDFromBytes(outletID[:]); err != nil {
		return OrderProgress{}, err
	}
	if progress.Status, err = order.ParseStatus(status); err != nil {
		return OrderProgress{}, err
	}
	if progress.PaymentStatus, err = order.ParsePaymentStatus(paymentStatus); err != nil {
		return OrderProgress{}, err
	}
	progress.TotalWeight = optionalDecimal(totalWeight)
	progress.TotalPrice = optionalDecimal(totalPrice)
	progress.DeliveryFee = optionalDecimal(deliveryFee)
	if totalPrice.Valid && deliveryFee.Valid {
		due := totalPrice.Decimal.Add(deliveryFee.Decimal)
		progress.AmountDue = &due
	}

	return progress, nil
}

func (h GetOrderProgressQueryHandler) readStages(db *gorm.DB, orderID uuid.UUID) ([]StageProgress, error) {
	rows, err := db.Raw(`
		SELECT
			s.id,
			s.kind,
			s.worker_id,
			s.started_at,
			s.completed_at,
			EXISTS (
				SELECT 1 FROM bypass_requests b
				WHERE b.stage_id = s.id AND b.status = ?
			)
		FROM work_stages s
		WHERE s.order_id = ?
	`, order.BypassPending.String(), orderID).Rows()
	if err != nil {
		return nil, pgerrs.Classify(err)
	}
	defer rows.Close()

	stages := make([]StageProgress, 0, len(order.StageKinds()))
	for rows.Next() {
		var (
			stage    StageProgress
			id       uuid.UUID
			kind     string
			workerID *uuid.UUID
		)
		if err = rows.Scan(&id, &kind, &workerID, &stage.StartedAt, &stage.CompletedAt, &stage.Frozen); err != nil {
			return nil, pgerrs.Classify(err)
		}

		if stage.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if stage.Kind, err = order.ParseStageKind(kind); err != nil {
			return nil, err
		}
		if stage.WorkerID, err = optionalUUID(workerID); err != nil {
			return nil, err
		}
		stage.State = stageState(stage)
		stages = append(stages, stage)
	}
	if err = rows.Err(); err != nil {
		return nil, pgerrs.Classify(err)
	}

	// Station order, not name order.
	slices.SortFunc(stages, func(a, b StageProgress) int { return int(a.Kind) - int(b.Kind) })
	return stages, nil
}

func (h GetOrderProgressQueryHandler) readJobs(db *gorm.DB, orderID uuid.UUID) ([]JobProgress, error) {
	rows, err := db.Raw(`
		SELECT id, kind, status, driver_id, claimed_at, completed_at
		FROM transport_jobs
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID).Rows()
	if err != nil {
		return nil, pgerrs.Classify(err)
	}
	defer rows.Close()

	jobs := make([]JobProgress, 0, 2)
	for rows.Next() {
		var (
			job          JobProgress
			id           uuid.UUID
			kind, status string
			driverID     *uuid.UUID
		)
		if err = rows.Scan(&id, &kind, &status, &driverID, &job.ClaimedAt, &job.CompletedAt); err != nil {
			return nil, pgerrs.Classify(err)
		}

		if job.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if job.Kind, err = order.ParseJobKind(kind); err != nil {
			return nil, err
		}
		if job.Status, err = order.ParseJobStatus(status); err != nil {
			return nil, err
		}
		if job.DriverID, err = optionalUUID(driverID); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, pgerrs.Classify(err)
	}

	return jobs, nil
}

func stageState(s StageProgress) string {
	switch {
	case s.CompletedAt != nil:
		return "COMPLETED"
	case s.StartedAt != nil:
		return "IN_PROGRESS"
	default:
		return "NOT_STARTED"
	}
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
