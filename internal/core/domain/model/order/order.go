package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder and RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment workflow. It owns its three work
// stages, its pickup and delivery jobs and every bypass request raised on its
// stages, so a single row lock on the order serializes all work on it.
//
// Order follows these invariants:
//   - status only moves along the edges declared on Status
//   - a failed operation leaves the aggregate untouched
//   - totalPrice and deliveryFee are written once, by PACKING completion
//   - item lines are frozen from BeingWashed onward
//   - a stage has at most one bypass request that is not rejected
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	outletID   kernel.UUID

	status        Status
	paymentStatus PaymentStatus

	address Address
	items   []Item

	totalWeight         *decimal.Decimal
	totalPrice          *decimal.Decimal
	deliveryFee         *decimal.Decimal
	distanceKm          *decimal.Decimal
	withinServiceRadius *bool

	paymentReference string

	createdAt           time.Time
	scheduledPickupAt   *time.Time
	pickedUpAt          *time.Time
	scheduledDeliveryAt *time.Time
	deliveredAt         *time.Time
	paidAt              *time.Time
	disputedAt          *time.Time
	completedAt         *time.Time

	stages   []*WorkStage
	jobs     []*TransportJob
	bypasses []*BypassRequest

	events []Event

	isConstructed bool
}

// Schedule holds the customer's requested pickup and delivery slots.
type Schedule struct {
	PickupAt   *time.Time
	DeliveryAt *time.Time
}

// NewOrder creates an order in Created status together with its WASHING, IRONING
// and PACKING stages. Items may be empty here and supplied when the pickup completes.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, outletID, address, nil, order.Schedule{}, now)
//	if err != nil {
//	    return err
//	}
//	err = o.RequestPickup(now)
func NewOrder(
	id, customerID, outletID kernel.UUID,
	address Address,
	items []Item,
	schedule Schedule,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:              Created,
		paymentStatus:       Unpaid,
		createdAt:           now,
		scheduledPickupAt:   schedule.PickupAt,
		scheduledDeliveryAt: schedule.DeliveryAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID),
		o.setOutlet(outletID),
		o.setAddress(address),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	o.items = slices.Clone(items)
	for _, kind := range StageKinds() {
		o.stages = append(o.stages, newWorkStage(o.id, kind))
	}

	return o, nil
}

// RestoreOrderParams carries a persisted order row together with its children.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	OutletID            kernel.UUID
	Status              Status
	PaymentStatus       PaymentStatus
	Address             Address
	Items               []Item
	TotalWeight         *decimal.Decimal
	TotalPrice          *decimal.Decimal
	DeliveryFee         *decimal.Decimal
	DistanceKm          *decimal.Decimal
	WithinServiceRadius *bool
	PaymentReference    string
	CreatedAt           time.Time
	ScheduledPickupAt   *time.Time
	PickedUpAt          *time.Time
	ScheduledDeliveryAt *time.Time
	DeliveredAt         *time.Time
	PaidAt              *time.Time
	DisputedAt          *time.Time
	CompletedAt         *time.Time
	Stages              []*WorkStage
	Jobs                []*TransportJob
	Bypasses            []*BypassRequest
}

// RestoreOrder rebuilds an order loaded from persistence. It checks that exactly
// one stage exists per station and at most one job per kind.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		status:              p.Status,
		paymentStatus:       p.PaymentStatus,
		totalWeight:         p.TotalWeight,
		totalPrice:          p.TotalPrice,
		deliveryFee:         p.DeliveryFee,
		distanceKm:          p.DistanceKm,
		withinServiceRadius: p.WithinServiceRadius,
		paymentReference:    p.PaymentReference,
		createdAt:           p.CreatedAt,
		scheduledPickupAt:   p.ScheduledPickupAt,
		pickedUpAt:          p.PickedUpAt,
		scheduledDeliveryAt: p.ScheduledDeliveryAt,
		deliveredAt:         p.DeliveredAt,
		paidAt:              p.PaidAt,
		disputedAt:          p.DisputedAt,
		completedAt:         p.CompletedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomer(p.CustomerID),
		o.setOutlet(p.OutletID),
		o.setAddress(p.Address),
		p.Status.Validate(),
		p.PaymentStatus.Validate(),
		validateItems(p.Items),
		o.setStages(p.Stages),
		o.setJobs(p.Jobs),
	); err != nil {
		return nil, err
	}

	o.items = slices.Clone(p.Items)
	o.bypasses = slices.Clone(p.Bypasses)
	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) OutletID() kernel.UUID {
	return o.outletID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Address() Address {
	return o.address
}

// Items returns a copy of the item lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// TotalWeight is nil until the pickup has been weighed.
func (o *Order) TotalWeight() *decimal.Decimal {
	return o.totalWeight
}

// TotalPrice is nil until PACKING completes.
func (o *Order) TotalPrice() *decimal.Decimal {
	return o.totalPrice
}

// DeliveryFee is nil until PACKING completes.
func (o *Order) DeliveryFee() *decimal.Decimal {
	return o.deliveryFee
}

func (o *Order) DistanceKm() *decimal.Decimal {
	return o.distanceKm
}

func (o *Order) WithinServiceRadius() *bool {
	return o.withinServiceRadius
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) ScheduledPickupAt() *time.Time {
	return o.scheduledPickupAt
}

// PickedUpAt is when the driver arrived at the customer.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

func (o *Order) ScheduledDeliveryAt() *time.Time {
	return o.scheduledDeliveryAt
}

// DeliveredAt starts the idle window that ends in auto-completion.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

func (o *Order) DisputedAt() *time.Time {
	return o.disputedAt
}

func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Stages returns the three stages in pipeline order.
func (o *Order) Stages() []*WorkStage {
	return slices.Clone(o.stages)
}

func (o *Order) Jobs() []*TransportJob {
	return slices.Clone(o.jobs)
}

func (o *Order) Bypasses() []*BypassRequest {
	return slices.Clone(o.bypasses)
}

// Stage finds one of this order's stages by id.
func (o *Order) Stage(id kernel.UUID) (*WorkStage, error) {
	for _, s := range o.stages {
		if s.id.IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stage", id.String())
}

// StageByKind returns the stage for a station.
func (o *Order) StageByKind(kind StageKind) (*WorkStage, error) {
	for _, s := range o.stages {
		if s.kind == kind {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stage", kind.String())
}

// Job finds one of this order's transport jobs by id.
func (o *Order) Job(id kernel.UUID) (*TransportJob, error) {
	for _, j := range o.jobs {
		if j.id.IsEqual(id) {
			return j, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("job", id.String())
}

// JobByKind returns the pickup or delivery job, or nil when it has not been created yet.
func (o *Order) JobByKind(kind JobKind) *TransportJob {
	for _, j := range o.jobs {
		if j.kind == kind {
			return j
		}
	}
	return nil
}

// Bypass finds a bypass request by id.
func (o *Order) Bypass(id kernel.UUID) (*BypassRequest, error) {
	for _, b := range o.bypasses {
		if b.id.IsEqual(id) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("bypass request", id.String())
}

// NeedsPricing reports whether PACKING completion still has money fields to freeze.
func (o *Order) NeedsPricing() bool {
	return o.totalPrice == nil || o.deliveryFee == nil
}

// PullEvents returns the events raised since the last call and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// RequestPickup puts the order on the pickup board by creating its unclaimed pickup job.
func (o *Order) RequestPickup(now time.Time) error {
	next, err := o.status.RequestPickup()
	if err != nil {
		return err
	}

	o.jobs = append(o.jobs, newTransportJob(o.id, Pickup, now))
	o.status = next
	return nil
}

// ClaimJob hands an unclaimed job to driverID. A job that has left Unclaimed
// reports AlreadyClaimed regardless of who holds it.
func (o *Order) ClaimJob(jobID, driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	job, err := o.Job(jobID)
	if err != nil {
		return err
	}
	if err = job.checkClaim(); err != nil {
		return err
	}

	next := o.status
	switch job.kind {
	case Pickup:
		next, err = o.status.DispatchPickup()
	case Delivery:
		if o.status != ReadyForDelivery {
			err = errs.NewInvalidTransitionError("order", o.status.String(), "claim delivery")
		}
	}
	if err != nil {
		return err
	}

	job.claim(driverID, now)
	o.status = next
	o.raise(EventJobClaimed, job.id, &driverID, job.kind.String(), now)
	return nil
}

// ArriveAtPickup records the driver reaching the customer's address.
func (o *Order) ArriveAtPickup(jobID, driverID kernel.UUID, now time.Time) error {
	job, err := o.Job(jobID)
	if err != nil {
		return err
	}
	if job.kind != Pickup {
		return errs.NewInvalidTransitionError("delivery job", job.status.String(), "arrive at pickup")
	}
	if err = errors.Join(job.checkOwner(driverID), job.checkStatus(JobClaimed, "arrive")); err != nil {
		return err
	}
	next, err := o.status.ArriveAtCustomer()
	if err != nil {
		return err
	}

	o.pickedUpAt = &now
	o.status = next
	return nil
}

// StartJob moves a claimed job to InProgress. For a pickup the driver has the
// laundry and is returning; for a delivery the driver has left the outlet.
func (o *Order) StartJob(jobID, driverID kernel.UUID, now time.Time) error {
	job, err := o.Job(jobID)
	if err != nil {
		return err
	}
	if err = job.checkOwner(driverID); err != nil {
		return err
	}
	if err = job.checkStatus(JobClaimed, "start"); err != nil {
		return err
	}

	var next Status
	if job.kind == Pickup {
		next, err = o.status.CollectItems()
	} else {
		next, err = o.status.DispatchDelivery()
	}
	if err != nil {
		return err
	}

	job.start(now)
	o.status = next
	return nil
}

// CompleteJob closes an in-progress job with at least one photo reference.
//
// Completing the pickup optionally replaces the item lines, fills totalWeight when
// it is still unset and moves the order to ArrivedAtOutlet; an order with no items
// at that point is rejected. Completing the delivery marks the order Delivered.
func (o *Order) CompleteJob(jobID, driverID kernel.UUID, photos []string, notes string, items []Item, now time.Time) error {
	job, err := o.Job(jobID)
	if err != nil {
		return err
	}
	if err = job.checkOwner(driverID); err != nil {
		return err
	}
	if err = job.checkStatus(JobInProgress, "complete"); err != nil {
		return err
	}
	proof, err := normalizePhotos(photos)
	if err != nil {
		return err
	}

	if job.kind == Delivery {
		next, err := o.status.Deliver()
		if err != nil {
			return err
		}

		job.complete(proof, notes, now)
		o.status = next
		o.deliveredAt = &now
		o.raise(EventOrderDelivered, job.id, &driverID, job.kind.String(), now)
		return nil
	}

	next, err := o.status.ArriveAtOutlet()
	if err != nil {
		return err
	}
	lines := o.items
	if items != nil {
		if err = validateItems(items); err != nil {
			return err
		}
		lines = slices.Clone(items)
	}
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	job.complete(proof, notes, now)
	if items != nil {
		o.items = lines
		o.totalWeight = nil
	}
	if o.totalWeight == nil {
		w := totalWeight(o.items)
		o.totalWeight = &w
	}
	o.status = next
	return nil
}

// ReplaceItems swaps the item lines and re-weighs the order. Lines are frozen once
// the order enters the station pipeline.
func (o *Order) ReplaceItems(items []Item) error {
	if o.status.ItemsFrozen() {
		return errs.NewInvalidTransitionError("order", o.status.String(), "edit items")
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if err := validateItems(items); err != nil {
		return err
	}

	o.items = slices.Clone(items)
	w := totalWeight(o.items)
	o.totalWeight = &w
	return nil
}

// StartStage assigns the stage to workerID.
//
// The previous station must be completed or carry an approved bypass, and no stage
// of the order may have a pending bypass. Starting WASHING moves the order into the
// pipeline; starting a later station while the order still shows the earlier one
// (the bypass path) advances the status with it.
func (o *Order) StartStage(stageID, workerID kernel.UUID, now time.Time) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	stage, err := o.Stage(stageID)
	if err != nil {
		return err
	}
	if err = stage.checkStart(); err != nil {
		return err
	}
	if pending := o.pendingBypass(); pending != nil {
		return errs.NewStageFrozenError(pending.stageID)
	}
	if err = o.checkPreviousStageCleared(stage); err != nil {
		return err
	}

	next, err := o.statusOnStageStart(stage.kind)
	if err != nil {
		return err
	}

	stage.start(workerID, now)
	o.status = next
	o.raise(EventStageStarted, stage.id, &workerID, stage.kind.String(), now)
	return nil
}

// CompleteStage closes a stage held by workerID.
//
// A pending bypass on the stage blocks completion. WASHING and IRONING advance the
// order unless a bypass already moved it past them. PACKING freezes totalPrice and
// deliveryFee (each only if still unset, so pricing may be nil when both are frozen)
// and moves the order to WaitingPayment.
func (o *Order) CompleteStage(stageID, workerID kernel.UUID, notes string, pricing *Pricing, now time.Time) error {
	stage, err := o.Stage(stageID)
	if err != nil {
		return err
	}
	if err = stage.checkComplete(workerID); err != nil {
		return err
	}
	if b := o.activeBypass(stage.id); b != nil && b.IsPending() {
		return errs.NewStageFrozenError(stage.id)
	}

	next := o.status
	switch stage.kind {
	case Washing:
		if o.status == BeingWashed {
			next = BeingIroned
		}
	case Ironing:
		if o.status == BeingIroned {
			next = BeingPacked
		}
	case Packing:
		if next, err = o.status.FinishPacking(); err != nil {
			return err
		}
		if o.NeedsPricing() {
			if pricing == nil {
				return errs.NewValueIsRequiredError("pricing")
			}
			if err = pricing.validate(); err != nil {
				return err
			}
		}
	}

	stage.complete(notes, now)
	if stage.kind == Packing && o.NeedsPricing() {
		o.freezePricing(*pricing)
	}
	o.status = next
	o.raise(EventStageCompleted, stage.id, &workerID, stage.kind.String(), now)
	return nil
}

// RequestBypass raises an escalation on a started, open stage held by workerID.
// A stage carries at most one bypass request that is not rejected.
func (o *Order) RequestBypass(requestID, stageID, workerID kernel.UUID, reason string, now time.Time) (*BypassRequest, error) {
	stage, err := o.Stage(stageID)
	if err != nil {
		return nil, err
	}
	if !stage.IsStarted() || stage.IsCompleted() {
		return nil, errs.NewInvalidTransitionError(stage.kind.String()+" stage", stage.State(), "request bypass")
	}
	if !stage.isAssignedTo(workerID) {
		return nil, errs.NewNotOwnerError("stage", stage.id, workerID)
	}
	if existing := o.activeBypass(stage.id); existing != nil {
		if existing.IsPending() {
			return nil, errs.NewStageFrozenError(stage.id)
		}
		return nil, errs.NewAlreadyProcessedError(existing.id, existing.status.String())
	}
	if _, err = o.Bypass(requestID); err == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("bypass request id is invalid",
			fmt.Errorf("%s already exists", requestID))
	}

	request, err := newBypassRequest(requestID, o.id, stage.id, workerID, reason, now)
	if err != nil {
		return nil, err
	}

	o.bypasses = append(o.bypasses, request)
	o.raise(EventBypassRequested, request.id, &workerID, stage.kind.String(), now)
	return request, nil
}

// ResolveBypass approves or rejects a pending request. Either outcome unfreezes the
// stage; approval does not complete it.
func (o *Order) ResolveBypass(requestID, adminID kernel.UUID, approve bool, note string, now time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	request, err := o.Bypass(requestID)
	if err != nil {
		return err
	}
	if err = request.checkResolve(); err != nil {
		return err
	}

	request.resolve(adminID, approve, note, now)
	o.raise(EventBypassResolved, request.id, &adminID, request.status.String(), now)
	return nil
}

// AmountDue is the charge presented to the customer: the frozen price plus the frozen fee.
func (o *Order) AmountDue() (decimal.Decimal, error) {
	if o.status != WaitingPayment || o.NeedsPricing() {
		return decimal.Zero, errs.NewInvalidTransitionError("order", o.status.String(), "request payment")
	}
	return o.totalPrice.Add(*o.deliveryFee), nil
}

// MarkPaymentWaiting records that a charge is open with the payment provider.
// An empty reference keeps the one already stored.
func (o *Order) MarkPaymentWaiting(reference string) error {
	if o.paymentStatus == Paid {
		return errs.NewInvalidTransitionError("payment", o.paymentStatus.String(), "wait for payment")
	}
	if o.status != WaitingPayment {
		return errs.NewInvalidTransitionError("order", o.status.String(), "wait for payment")
	}

	o.paymentStatus = PaymentWaiting
	if reference != "" {
		o.paymentReference = reference
	}
	return nil
}

// ConfirmPayment marks the order paid and creates its unclaimed delivery job in the
// same step. A repeated confirmation for a paid order is a no-op.
func (o *Order) ConfirmPayment(paidAt, now time.Time) error {
	if o.paymentStatus == Paid {
		return nil
	}
	next, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}

	if paidAt.IsZero() {
		paidAt = now
	}
	if o.JobByKind(Delivery) == nil {
		o.jobs = append(o.jobs, newTransportJob(o.id, Delivery, now))
	}
	o.paymentStatus = Paid
	o.paidAt = &paidAt
	o.status = next
	o.raise(EventPaymentConfirmed, o.id, nil, o.paymentReference, now)
	return nil
}

// OpenDispute records a customer complaint on a delivered order, which keeps the
// idle sweep from completing it. Reopening an open dispute is a no-op.
func (o *Order) OpenDispute(now time.Time) error {
	if o.status != Delivered {
		return errs.NewInvalidTransitionError("order", o.status.String(), "open dispute")
	}
	if o.disputedAt == nil {
		o.disputedAt = &now
	}
	return nil
}

// AutoComplete closes a delivered, undisputed order once idle has elapsed since
// delivery. It reports whether the order was completed by this call; an order that
// is already Completed is skipped without raising a second OrderCompleted.
func (o *Order) AutoComplete(now time.Time, idle time.Duration) (bool, error) {
	if o.status == Completed {
		return false, nil
	}
	next, err := o.status.Complete()
	if err != nil {
		return false, err
	}
	if o.disputedAt != nil || o.deliveredAt == nil || now.Before(o.deliveredAt.Add(idle)) {
		return false, nil
	}

	o.status = next
	o.completedAt = &now
	o.raise(EventOrderCompleted, o.id, nil, "", now)
	return true, nil
}

func (o *Order) freezePricing(p Pricing) {
	if o.totalPrice == nil {
		price := totalPrice(o.items, p.CurrencyScale)
		o.totalPrice = &price
	}
	if o.deliveryFee == nil {
		fee := p.Quote.Fee
		distance := p.Quote.DistanceKm
		within := p.Quote.WithinServiceRadius
		o.deliveryFee = &fee
		o.distanceKm = &distance
		o.withinServiceRadius = &within
	}
}

func (o *Order) statusOnStageStart(kind StageKind) (Status, error) {
	switch {
	case kind == Washing:
		return o.status.StartWashing()
	case kind == Ironing && o.status == BeingIroned:
		return o.status, nil
	case kind == Ironing && o.status == BeingWashed:
		return BeingIroned, nil
	case kind == Packing && o.status == BeingPacked:
		return o.status, nil
	case kind == Packing && o.status == BeingIroned:
		return BeingPacked, nil
	default:
		return Unknown, errs.NewInvalidTransitionError("order", o.status.String(), "start "+kind.String())
	}
}

func (o *Order) checkPreviousStageCleared(stage *WorkStage) error {
	prevKind, ok := stage.kind.Previous()
	if !ok {
		return nil
	}
	prev, err := o.StageByKind(prevKind)
	if err != nil {
		return err
	}
	if prev.IsCompleted() {
		return nil
	}
	if b := o.activeBypass(prev.id); b != nil && b.status == BypassApproved {
		return nil
	}
	return errs.NewInvalidTransitionError(
		stage.kind.String()+" stage",
		fmt.Sprintf("%s %s", prev.kind, prev.State()),
		"start",
	)
}

// activeBypass returns the stage's pending or approved request, if any.
func (o *Order) activeBypass(stageID kernel.UUID) *BypassRequest {
	for _, b := range o.bypasses {
		if b.stageID.IsEqual(stageID) && b.status != BypassRejected {
			return b
		}
	}
	return nil
}

func (o *Order) pendingBypass() *BypassRequest {
	for _, b := range o.bypasses {
		if b.IsPending() {
			return b
		}
	}
	return nil
}

func (o *Order) raise(t EventType, subjectID kernel.UUID, actorID *kernel.UUID, detail string, at time.Time) {
	o.events = append(o.events, Event{
		Type:       t,
		OrderID:    o.id,
		OutletID:   o.outletID,
		SubjectID:  subjectID,
		ActorID:    actorID,
		Detail:     detail,
		OccurredAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setOutlet(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("outlet", err)
	}
	o.outletID = id
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setStages(stages []*WorkStage) error {
	if len(stages) != len(StageKinds()) {
		return errs.NewValueIsInvalidErrorWithCause("stages are invalid",
			fmt.Errorf("%d stages, want %d", len(stages), len(StageKinds())))
	}
	ordered := make([]*WorkStage, 0, len(stages))
	for _, kind := range StageKinds() {
		idx := slices.IndexFunc(stages, func(s *WorkStage) bool { return s != nil && s.kind == kind })
		if idx < 0 {
			return errs.NewValueIsRequiredError(kind.String() + " stage")
		}
		ordered = append(ordered, stages[idx])
	}
	o.stages = ordered
	return nil
}

func (o *Order) setJobs(jobs []*TransportJob) error {
	seen := make(map[JobKind]bool, len(jobs))
	for _, j := range jobs {
		if j == nil {
			return errs.NewValueIsRequiredError("job")
		}
		if seen[j.kind] {
			return errs.NewValueIsInvalidErrorWithCause("jobs are invalid",
				fmt.Errorf("more than one %s job", j.kind))
		}
		seen[j.kind] = true
	}
	o.jobs = slices.Clone(jobs)
	return nil
}
