// Package orderrepo persists the order aggregate: the order row with its item
// lines, work stages, transport jobs and bypass requests.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Unique indexes guarding the aggregate's cardinality rules.
const (
	StageOrderKindIndex = "ux_work_stages_order_kind"
	JobOrderKindIndex   = "ux_transport_jobs_order_kind"
	PendingBypassIndex  = "ux_bypass_requests_pending_stage"
)

const pendingBypassIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS " + PendingBypassIndex +
	" ON bypass_requests (stage_id) WHERE status = 'PENDING'"

// OrderDTO is the orders row. Statuses are stored by name.
type OrderDTO struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	OutletID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status              string              `gorm:"type:varchar(32);not null;index"`
	PaymentStatus       string              `gorm:"type:varchar(16);not null"`
	Address             AddressDTO          `gorm:"embedded;embeddedPrefix:address_"`
	TotalWeight         decimal.NullDecimal `gorm:"type:numeric(12,3)"`
	TotalPrice          decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	DeliveryFee         decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	DistanceKm          decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	WithinServiceRadius *bool
	PaymentReference    string     `gorm:"type:varchar(128)"`
	CreatedAt           time.Time  `gorm:"not null"`
	ScheduledPickupAt   *time.Time
	PickedUpAt          *time.Time
	ScheduledDeliveryAt *time.Time
	DeliveredAt         *time.Time `gorm:"index"`
	PaidAt              *time.Time
	DisputedAt          *time.Time
	CompletedAt         *time.Time

	Items    []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Stages   []WorkStageDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Jobs     []TransportJobDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Bypasses []BypassRequestDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the address snapshot embedded in the orders row.
type AddressDTO struct {
	Line       string  `gorm:"type:varchar(255);not null"`
	District   string  `gorm:"type:varchar(128)"`
	City       string  `gorm:"type:varchar(128);not null"`
	Province   string  `gorm:"type:varchar(128)"`
	PostalCode string  `gorm:"type:varchar(16)"`
	Lat        float64 `gorm:"type:double precision;not null"`
	Lon        float64 `gorm:"type:double precision;not null"`
}

// OrderItemDTO is one item line. Lines are rewritten as a whole on every save.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	WeightKg  decimal.Decimal `gorm:"type:numeric(12,3);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type WorkStageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_work_stages_order_kind,priority:1"`
	Kind        string     `gorm:"type:varchar(16);not null;uniqueIndex:ux_work_stages_order_kind,priority:2"`
	WorkerID    *uuid.UUID `gorm:"type:uuid"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	Notes       string `gorm:"type:text"`
}

func (WorkStageDTO) TableName() string {
	return "work_stages"
}

type TransportJobDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_transport_jobs_order_kind,priority:1"`
	Kind        string         `gorm:"type:varchar(16);not null;uniqueIndex:ux_transport_jobs_order_kind,priority:2"`
	Status      string         `gorm:"type:varchar(16);not null;index"`
	DriverID    *uuid.UUID     `gorm:"type:uuid;index"`
	Photos      pq.StringArray `gorm:"type:text[]"`
	Notes       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
	ClaimedAt   *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (TransportJobDTO) TableName() string {
	return "transport_jobs"
}

type BypassRequestDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	StageID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason      string     `gorm:"type:text;not null"`
	AdminNote   string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(16);not null"`
	RequestedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
	RequestedAt time.Time  `gorm:"not null"`
	ResolvedAt  *time.Time
}

func (BypassRequestDTO) TableName() string {
	return "bypass_requests"
}

// Models lists every table of the aggregate in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &OrderItemDTO{}, &WorkStageDTO{}, &TransportJobDTO{}, &BypassRequestDTO{}}
}

// IndexStatements are the indexes AutoMigrate cannot express.
func IndexStatements() []string {
	return []string{pendingBypassIndexDDL}
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	loc := o.Address().Location()

	dto := OrderDTO{
		ID:            id,
		CustomerID:    o.CustomerID().Bytes(),
		OutletID:      o.OutletID().Bytes(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Address: AddressDTO{
			Line:       o.Address().Line(),
			District:   o.Address().District(),
			City:       o.Address().City(),
			Province:   o.Address().Province(),
			PostalCode: o.Address().PostalCode(),
			Lat:        loc.Lat(),
			Lon:        loc.Lon(),
		},
		TotalWeight:         nullDecimal(o.TotalWeight()),
		TotalPrice:          nullDecimal(o.TotalPrice()),
		DeliveryFee:         nullDecimal(o.DeliveryFee()),
		DistanceKm:          nullDecimal(o.DistanceKm()),
		WithinServiceRadius: o.WithinServiceRadius(),
		PaymentReference:    o.PaymentReference(),
		CreatedAt:           o.CreatedAt(),
		ScheduledPickupAt:   o.ScheduledPickupAt(),
		PickedUpAt:          o.PickedUpAt(),
		ScheduledDeliveryAt: o.ScheduledDeliveryAt(),
		DeliveredAt:         o.DeliveredAt(),
		PaidAt:              o.PaidAt(),
		DisputedAt:          o.DisputedAt(),
		CompletedAt:         o.CompletedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			WeightKg:  item.WeightKg(),
		})
	}
	for _, s := range o.Stages() {
		dto.Stages = append(dto.Stages, WorkStageDTO{
			ID:          s.ID().Bytes(),
			OrderID:     id,
			Kind:        s.Kind().String(),
			WorkerID:    rawUUID(s.WorkerID()),
			StartedAt:   s.StartedAt(),
			CompletedAt: s.CompletedAt(),
			Notes:       s.Notes(),
		})
	}
	for _, j := range o.Jobs() {
		dto.Jobs = append(dto.Jobs, TransportJobDTO{
			ID:          j.ID().Bytes(),
			OrderID:     id,
			Kind:        j.Kind().String(),
			Status:      j.Status().String(),
			DriverID:    rawUUID(j.DriverID()),
			Photos:      pq.StringArray(j.Photos()),
			Notes:       j.Notes(),
			CreatedAt:   j.CreatedAt(),
			ClaimedAt:   j.ClaimedAt(),
			StartedAt:   j.StartedAt(),
			CompletedAt: j.CompletedAt(),
		})
	}
	for _, b := range o.Bypasses() {
		dto.Bypasses = append(dto.Bypasses, BypassRequestDTO{
			ID:          b.ID().Bytes(),
			OrderID:     id,
			StageID:     b.StageID().Bytes(),
			Reason:      b.Reason(),
			AdminNote:   b.AdminNote(),
			Status:      b.Status().String(),
			RequestedBy: b.RequestedBy().Bytes(),
			ResolvedBy:  rawUUID(b.ResolvedBy()),
			RequestedAt: b.RequestedAt(),
			ResolvedAt:  b.ResolvedAt(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	outletID, err := kernel.UUIDFromBytes(dto.OutletID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Address.Lat, dto.Address.Lon)
	if err != nil {
		return nil, err
	}
	address, err := order.NewAddress(
		dto.Address.Line,
		dto.Address.District,
		dto.Address.City,
		dto.Address.Province,
		dto.Address.PostalCode,
		location,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, itemErr := order.NewItem(row.Name, row.Quantity, row.UnitPrice, row.WeightKg)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	stages := make([]*order.WorkStage, 0, len(dto.Stages))
	for _, row := range dto.Stages {
		stage, stageErr := stageToDomain(row)
		if stageErr != nil {
			return nil, stageErr
		}
		stages = append(stages, stage)
	}

	jobs := make([]*order.TransportJob, 0, len(dto.Jobs))
	for _, row := range dto.Jobs {
		job, jobErr := jobToDomain(row)
		if jobErr != nil {
			return nil, jobErr
		}
		jobs = append(jobs, job)
	}

	bypasses := make([]*order.BypassRequest, 0, len(dto.Bypasses))
	for _, row := range dto.Bypasses {
		request, requestErr := bypassToDomain(row)
		if requestErr != nil {
			return nil, requestErr
		}
		bypasses = append(bypasses, request)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		CustomerID:          customerID,
		OutletID:            outletID,
		Status:              status,
		PaymentStatus:       paymentStatus,
		Address:             address,
		Items:               items,
		TotalWeight:         decimalPtr(dto.TotalWeight),
		TotalPrice:          decimalPtr(dto.TotalPrice),
		DeliveryFee:         decimalPtr(dto.DeliveryFee),
		DistanceKm:          decimalPtr(dto.DistanceKm),
		WithinServiceRadius: dto.WithinServiceRadius,
		PaymentReference:    dto.PaymentReference,
		CreatedAt:           dto.CreatedAt,
		ScheduledPickupAt:   dto.ScheduledPickupAt,
		PickedUpAt:          dto.PickedUpAt,
		ScheduledDeliveryAt: dto.ScheduledDeliveryAt,
		DeliveredAt:         dto.DeliveredAt,
		PaidAt:              dto.PaidAt,
		DisputedAt:          dto.DisputedAt,
		CompletedAt:         dto.CompletedAt,
		Stages:              stages,
		Jobs:                jobs,
		Bypasses:            bypasses,
	})
}

func stageToDomain(row WorkStageDTO) (*order.WorkStage, error) {
	id, orderID, err := rowIDs(row.ID, row.OrderID)
	if err != nil {
		return nil, err
	}
	kind, err := order.ParseStageKind(row.Kind)
	if err != nil {
		return nil, err
	}
	workerID, err := optionalUUID(row.WorkerID)
	if err != nil {
		return nil, err
	}

	return order.RestoreWorkStage(order.RestoreWorkStageParams{
		ID:          id,
		OrderID:     orderID,
		Kind:        kind,
		WorkerID:    workerID,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
		Notes:       row.Notes,
	})
}

func jobToDomain(row TransportJobDTO) (*order.TransportJob, error) {
	id, orderID, err := rowIDs(row.ID, row.OrderID)
	if err != nil {
		return nil, err
	}
	kind, err := order.ParseJobKind(row.Kind)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseJobStatus(row.Status)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalUUID(row.DriverID)
	if err != nil {
		return nil, err
	}

	return order.RestoreTransportJob(order.RestoreTransportJobParams{
		ID:          id,
		OrderID:     orderID,
		Kind:        kind,
		Status:      status,
		DriverID:    driverID,
		Photos:      row.Photos,
		Notes:       row.Notes,
		CreatedAt:   row.CreatedAt,
		ClaimedAt:   row.ClaimedAt,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
	})
}

func bypassToDomain(row BypassRequestDTO) (*order.BypassRequest, error) {
	id, orderID, err := rowIDs(row.ID, row.OrderID)
	if err != nil {
		return nil, err
	}
	stageID, err := kernel.UUIDFromBytes(row.StageID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseBypassStatus(row.Status)
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromBytes(row.RequestedBy[:])
	if err != nil {
		return nil, err
	}
	resolvedBy, err := optionalUUID(row.ResolvedBy)
	if err != nil {
		return nil, err
	}

	return order.RestoreBypassRequest(order.RestoreBypassRequestParams{
		ID:          id,
		OrderID:     orderID,
		StageID:     stageID,
		Reason:      row.Reason,
		AdminNote:   row.AdminNote,
		Status:      status,
		RequestedBy: requestedBy,
		ResolvedBy:  resolvedBy,
		RequestedAt: row.RequestedAt,
		ResolvedAt:  row.ResolvedAt,
	})
}

func rowIDs(id, orderID uuid.UUID) (kernel.UUID, kernel.UUID, error) {
	rowID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	parentID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return rowID, parentID, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
