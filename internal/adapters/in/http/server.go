package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Workflow is the set of operations the HTTP surface drives.
type Workflow interface {
	CreatePickupRequest(ctx context.Context, cmd commands.CreatePickupRequestCommand) error
	ClaimJob(ctx context.Context, cmd commands.ClaimJobCommand) error
	ArriveAtPickup(ctx context.Context, cmd commands.ArriveAtPickupCommand) error
	StartJob(ctx context.Context, cmd commands.StartJobCommand) error
	CompleteJob(ctx context.Context, cmd commands.CompleteJobCommand) error
	UpdateItems(ctx context.Context, cmd commands.UpdateItemsCommand) error
	StartStage(ctx context.Context, cmd commands.StartStageCommand) error
	CompleteStage(ctx context.Context, cmd commands.CompleteStageCommand) error
	RequestBypass(ctx context.Context, cmd commands.RequestBypassCommand) error
	ResolveBypass(ctx context.Context, cmd commands.ResolveBypassCommand) error
	InitiatePayment(ctx context.Context, cmd commands.InitiatePaymentCommand) (ports.Charge, error)
	OnPaymentConfirmed(ctx context.Context, cmd commands.ConfirmPaymentCommand) error
	OpenDispute(ctx context.Context, cmd commands.OpenDisputeCommand) error
}

type JobLister interface {
	Handle(ctx context.Context, query queries.ListAvailableJobsQuery) ([]queries.AvailableJob, error)
}

type ProgressReader interface {
	Handle(ctx context.Context, query queries.GetOrderProgressQuery) (queries.OrderProgress, error)
}

// Server translates HTTP requests into workflow commands and queries.
type Server struct {
	workflow Workflow
	jobs     JobLister
	progress ProgressReader
}

func NewServer(workflow Workflow, jobs JobLister, progress ProgressReader) (*Server, error) {
	if workflow == nil {
		return nil, errs.NewValueIsRequiredError("workflow")
	}
	if jobs == nil {
		return nil, errs.NewValueIsRequiredError("jobs")
	}
	if progress == nil {
		return nil, errs.NewValueIsRequiredError("progress")
	}
	return &Server{workflow: workflow, jobs: jobs, progress: progress}, nil
}

func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateOrder godoc
//
//	@Summary	Register a pickup request for the caller's outlet
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreatePickupRequest	true	"order"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreatePickupRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("customerId", err))
	}
	address, err := req.Address.toDomain()
	if err != nil {
		return fail(ctx, err)
	}
	items, err := itemsToDomain(req.Items)
	if err != nil {
		return fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreatePickupRequestCommand(
		orderID,
		customerID,
		identity(ctx).OutletID,
		address,
		items,
		order.Schedule{PickupAt: req.ScheduledPickupAt, DeliveryAt: req.ScheduledDeliveryAt},
	)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.CreatePickupRequest(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// ListJobs godoc
//
//	@Summary	List unclaimed transport jobs at the caller's outlet
//	@Tags		jobs
//	@Produce	json
//	@Param		kind	query		string	false	"PICKUP or DELIVERY"
//	@Param		limit	query		int		false	"page size"
//	@Success	200		{array}		AvailableJobResponse
//	@Security	BearerAuth
//	@Router		/api/v1/jobs [get]
func (s *Server) ListJobs(ctx echo.Context) error {
	var kind *order.JobKind
	if raw := ctx.QueryParam("kind"); raw != "" {
		parsed, err := order.ParseJobKind(raw)
		if err != nil {
			return fail(ctx, err)
		}
		kind = &parsed
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
		limit = n
	}

	query, err := queries.NewListAvailableJobsQuery(identity(ctx).OutletID, kind, limit)
	if err != nil {
		return fail(ctx, err)
	}
	jobs, err := s.jobs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]AvailableJobResponse, 0, len(jobs))
	for _, j := range jobs {
		response = append(response, newAvailableJobResponse(j))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ClaimJob handles POST /api/v1/jobs/:id/claim.
func (s *Server) ClaimJob(ctx echo.Context) error {
	jobID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewClaimJobCommand(jobID, identity(ctx).EmployeeID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.ClaimJob(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ArriveAtPickup handles POST /api/v1/jobs/:id/arrive.
func (s *Server) ArriveAtPickup(ctx echo.Context) error {
	jobID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewArriveAtPickupCommand(jobID, identity(ctx).EmployeeID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.ArriveAtPickup(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartJob handles POST /api/v1/jobs/:id/start.
func (s *Server) StartJob(ctx echo.Context) error {
	jobID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewStartJobCommand(jobID, identity(ctx).EmployeeID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.StartJob(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteJob godoc
//
//	@Summary	Complete a transport job with photo proof
//	@Tags		jobs
//	@Accept		json
//	@Param		id		path	string				true	"job id"
//	@Param		request	body	CompleteJobRequest	true	"proof"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/jobs/{id}/complete [post]
func (s *Server) CompleteJob(ctx echo.Context) error {
	jobID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req CompleteJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	items, err := itemsToDomain(req.Items)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, identity(ctx).EmployeeID, req.Photos, req.Notes, items)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.CompleteJob(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItems handles PUT /api/v1/orders/:id/items.
func (s *Server) UpdateItems(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req UpdateItemsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	items, err := itemsToDomain(req.Items)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateItemsCommand(orderID, identity(ctx).EmployeeID, items)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.UpdateItems(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartStage handles POST /api/v1/stages/:id/start.
func (s *Server) StartStage(ctx echo.Context) error {
	stageID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewStartStageCommand(stageID, identity(ctx).EmployeeID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.StartStage(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStage handles POST /api/v1/stages/:id/complete. The body is optional.
func (s *Server) CompleteStage(ctx echo.Context) error {
	stageID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req NotesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCompleteStageCommand(stageID, identity(ctx).EmployeeID, req.Notes)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.CompleteStage(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RequestBypass godoc
//
//	@Summary	Freeze a station pending an outlet admin's decision
//	@Tags		stages
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"stage id"
//	@Param		request	body		BypassRequest	true	"reason"
//	@Success	201		{object}	CreatedResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/stages/{id}/bypass [post]
func (s *Server) RequestBypass(ctx echo.Context) error {
	stageID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req BypassRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRequestBypassCommand(stageID, identity(ctx).EmployeeID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.RequestBypass(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.RequestID().String()})
}

// ApproveBypass handles POST /api/v1/bypass-requests/:id/approve.
func (s *Server) ApproveBypass(ctx echo.Context) error {
	return s.resolveBypass(ctx, commands.NewApproveBypassCommand)
}

// RejectBypass handles POST /api/v1/bypass-requests/:id/reject.
func (s *Server) RejectBypass(ctx echo.Context) error {
	return s.resolveBypass(ctx, commands.NewRejectBypassCommand)
}

func (s *Server) resolveBypass(
	ctx echo.Context,
	build func(requestID, adminID kernel.UUID, note string) (commands.ResolveBypassCommand, error),
) error {
	requestID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req ResolveBypassRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := build(requestID, identity(ctx).EmployeeID, req.Note)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.ResolveBypass(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// InitiatePayment godoc
//
//	@Summary	Open a provider charge for the amount due
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"order id"
//	@Param		request	body		InitiatePaymentRequest	false	"payer"
//	@Success	201		{object}	ChargeResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/orders/{id}/payment [post]
func (s *Server) InitiatePayment(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req InitiatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewInitiatePaymentCommand(orderID, identity(ctx).EmployeeID, req.PayerEmail)
	if err != nil {
		return fail(ctx, err)
	}
	charge, err := s.workflow.InitiatePayment(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ChargeResponse{Reference: charge.Reference, Status: charge.Status})
}

// OpenDispute handles POST /api/v1/orders/:id/dispute.
func (s *Server) OpenDispute(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewOpenDisputeCommand(orderID, identity(ctx).EmployeeID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.OpenDispute(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder godoc
//
//	@Summary	Order progress with stations and transport jobs
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	OrderProgressResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/orders/{id} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}
	progress, err := s.progress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	// Other outlets' orders are reported as missing.
	if !progress.OutletID.IsEqual(identity(ctx).OutletID) {
		return fail(ctx, errs.NewObjectNotFoundError("order", orderID))
	}
	return ctx.JSON(http.StatusOK, newOrderProgressResponse(progress))
}

// PaymentWebhook godoc
//
//	@Summary	Payment provider callback
//	@Tags		payments
//	@Accept		json
//	@Param		request	body	PaymentWebhookRequest	true	"notification"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/webhooks/payments [post]
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var req PaymentWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, req.Paid, paidAt)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.workflow.OnPaymentConfirmed(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
