package http

import (
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type AddressRequest struct {
	Line       string  `json:"line"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postalCode"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

type ItemRequest struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	WeightKg  decimal.Decimal `json:"weightKg"`
}

type CreatePickupRequest struct {
	CustomerID          string         `json:"customerId"`
	Address             AddressRequest `json:"address"`
	Items               []ItemRequest  `json:"items"`
	ScheduledPickupAt   *time.Time     `json:"scheduledPickupAt"`
	ScheduledDeliveryAt *time.Time     `json:"scheduledDeliveryAt"`
}

type CompleteJobRequest struct {
	Photos []string      `json:"photos"`
	Notes  string        `json:"notes"`
	Items  []ItemRequest `json:"items"`
}

type UpdateItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type BypassRequest struct {
	Reason string `json:"reason"`
}

type ResolveBypassRequest struct {
	Note string `json:"note"`
}

type InitiatePaymentRequest struct {
	PayerEmail string `json:"payerEmail"`
}

// PaymentWebhookRequest is the normalized provider callback.
type PaymentWebhookRequest struct {
	OrderID string     `json:"orderId"`
	Paid    bool       `json:"paid"`
	PaidAt  *time.Time `json:"paidAt"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type ChargeResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type AvailableJobResponse struct {
	JobID       string     `json:"jobId"`
	OrderID     string     `json:"orderId"`
	Kind        string     `json:"kind"`
	CreatedAt   time.Time  `json:"createdAt"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
}

type StageResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	State       string     `json:"state"`
	WorkerID    *string    `json:"workerId,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Frozen      bool       `json:"frozen"`
}

type JobResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	DriverID    *string    `json:"driverId,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type OrderProgressResponse struct {
	ID            string           `json:"id"`
	OutletID      string           `json:"outletId"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"paymentStatus"`
	TotalWeight   *decimal.Decimal `json:"totalWeight,omitempty"`
	TotalPrice    *decimal.Decimal `json:"totalPrice,omitempty"`
	DeliveryFee   *decimal.Decimal `json:"deliveryFee,omitempty"`
	AmountDue     *decimal.Decimal `json:"amountDue,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
	DeliveredAt   *time.Time       `json:"deliveredAt,omitempty"`
	DisputedAt    *time.Time       `json:"disputedAt,omitempty"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	Stages        []StageResponse  `json:"stages"`
	Jobs          []JobResponse    `json:"jobs"`
}

func (r AddressRequest) toDomain() (order.Address, error) {
	location, err := kernel.NewGeoPoint(r.Lat, r.Lon)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(r.Line, r.District, r.City, r.Province, r.PostalCode, location)
}

func itemsToDomain(items []ItemRequest) ([]order.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	result := make([]order.Item, 0, len(items))
	for _, i := range items {
		item, err := order.NewItem(i.Name, i.Quantity, i.UnitPrice, i.WeightKg)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func newAvailableJobResponse(j queries.AvailableJob) AvailableJobResponse {
	return AvailableJobResponse{
		JobID:       j.JobID.String(),
		OrderID:     j.OrderID.String(),
		Kind:        j.Kind.String(),
		CreatedAt:   j.CreatedAt,
		ScheduledAt: j.ScheduledAt,
		Address:     j.Address,
		City:        j.City,
		Lat:         j.Lat,
		Lon:         j.Lon,
	}
}

func newOrderProgressResponse(p queries.OrderProgress) OrderProgressResponse {
	resp := OrderProgressResponse{
		ID:            p.ID.String(),
		OutletID:      p.OutletID.String(),
		Status:        p.Status.String(),
		PaymentStatus: p.PaymentStatus.String(),
		TotalWeight:   p.TotalWeight,
		TotalPrice:    p.TotalPrice,
		DeliveryFee:   p.DeliveryFee,
		AmountDue:     p.AmountDue,
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
		DeliveredAt:   p.DeliveredAt,
		DisputedAt:    p.DisputedAt,
		CompletedAt:   p.CompletedAt,
		Stages:        make([]StageResponse, 0, len(p.Stages)),
		Jobs:          make([]JobResponse, 0, len(p.Jobs)),
	}
	for _, s := range p.Stages {
		resp.Stages = append(resp.Stages, StageResponse{
			ID:          s.ID.String(),
			Kind:        s.Kind.String(),
			State:       s.State,
			WorkerID:    optionalID(s.WorkerID),
			StartedAt:   s.StartedAt,
			CompletedAt: s.CompletedAt,
			Frozen:      s.Frozen,
		})
	}
	for _, j := range p.Jobs {
		resp.Jobs = append(resp.Jobs, JobResponse{
			ID:          j.ID.String(),
			Kind:        j.Kind.String(),
			Status:      j.Status.String(),
			DriverID:    optionalID(j.DriverID),
			ClaimedAt:   j.ClaimedAt,
			CompletedAt: j.CompletedAt,
		})
	}
	return resp
}
