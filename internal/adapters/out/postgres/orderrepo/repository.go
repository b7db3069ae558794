package orderrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerrs"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to db, which is either the
// pool or the transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its stages and jobs.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Classify(err)
	}

	return nil
}

// Update rewrites the order row and upserts its children. Item lines are
// replaced as a whole; stages, jobs and bypass requests are never removed.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return pgerrs.Classify(err)
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return pgerrs.Classify(err)
		}
	}

	upsert := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Session(&gorm.Session{})
	if err := upsert.Create(&dto.Stages).Error; err != nil {
		return pgerrs.Classify(err)
	}
	if len(dto.Jobs) > 0 {
		if err := upsert.Create(&dto.Jobs).Error; err != nil {
			return pgerrs.Classify(err)
		}
	}
	if len(dto.Bypasses) > 0 {
		if err := upsert.Create(&dto.Bypasses).Error; err != nil {
			if pgerrs.IsUniqueViolation(err, PendingBypassIndex) {
				return errs.NewStageFrozenError(pendingStage(aggregate))
			}
			return pgerrs.Classify(err)
		}
	}

	return nil
}

// Get reads an order without locking it.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	return r.load(db, db.Where("id = ?", id.Bytes()), "order", id)
}

// GetForUpdate reads an order and holds its row lock until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	return r.load(db, locked(db).Where("id = ?", id.Bytes()), "order", id)
}

func (r *GormOrderRepository) GetByJobIDForUpdate(ctx context.Context, jobID kernel.UUID) (*order.Order, error) {
	return r.getByChildForUpdate(ctx, &TransportJobDTO{}, "job", jobID)
}

func (r *GormOrderRepository) GetByStageIDForUpdate(ctx context.Context, stageID kernel.UUID) (*order.Order, error) {
	return r.getByChildForUpdate(ctx, &WorkStageDTO{}, "stage", stageID)
}

func (r *GormOrderRepository) GetByBypassIDForUpdate(ctx context.Context, requestID kernel.UUID) (*order.Order, error) {
	return r.getByChildForUpdate(ctx, &BypassRequestDTO{}, "bypass request", requestID)
}

// ListOverdueDelivered returns delivered, undisputed orders delivered at or
// before the cutoff, oldest first.
func (r *GormOrderRepository) ListOverdueDelivered(
	ctx context.Context,
	spec ports.OverdueDeliveredSpec,
) ([]kernel.UUID, error) {
	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND disputed_at IS NULL AND delivered_at <= ?", order.Delivered.String(), spec.Cutoff).
		Order("delivered_at, id")
	if spec.Limit > 0 {
		query = query.Limit(spec.Limit)
	}

	var raw []uuid.UUID
	if err := query.Pluck("id", &raw).Error; err != nil {
		return nil, pgerrs.Classify(err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getByChildForUpdate locks the order owning the child row in one statement, so
// the order row is locked before any child row is read.
func (r *GormOrderRepository) getByChildForUpdate(
	ctx context.Context,
	child any,
	param string,
	childID kernel.UUID,
) (*order.Order, error) {
	if err := childID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	owner := db.Model(child).Select("order_id").Where("id = ?", childID.Bytes())
	return r.load(db, locked(db).Where("id = (?)", owner), param, childID)
}

func (r *GormOrderRepository) load(db, query *gorm.DB, param string, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	if err := query.Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, pgerrs.Classify(err)
	}

	children := db.Where("order_id = ?", dto.ID).Session(&gorm.Session{})
	if err := errors.Join(
		children.Order("position").Find(&dto.Items).Error,
		children.Find(&dto.Stages).Error,
		children.Order("created_at").Find(&dto.Jobs).Error,
		children.Order("requested_at").Find(&dto.Bypasses).Error,
	); err != nil {
		return nil, pgerrs.Classify(err)
	}

	return toDomain(dto)
}

func locked(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func pendingStage(aggregate *order.Order) string {
	for _, b := range aggregate.Bypasses() {
		if b.IsPending() {
			return b.StageID().String()
		}
	}
	return ""
}
