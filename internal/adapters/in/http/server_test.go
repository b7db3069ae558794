package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite

	workflow *MockWorkflow
	jobs     *MockJobLister
	progress *MockProgressReader
	echo     *echo.Echo
	caller   Identity
	token    string
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.workflow = new(MockWorkflow)
	s.jobs = new(MockJobLister)
	s.progress = new(MockProgressReader)

	server, err := NewServer(s.workflow, s.jobs, s.progress)
	s.Require().NoError(err)

	s.echo = echo.New()
	Register(s.echo, server, RouteConfig{JWTSecret: testSecret, WebhookSecret: "hook"})

	s.caller = Identity{EmployeeID: kernel.NewUUID(), OutletID: kernel.NewUUID(), Role: employee.Driver}
	s.token, err = IssueToken(testSecret, s.caller, time.Hour, time.Now())
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	s.workflow.AssertExpectations(s.T())
	s.jobs.AssertExpectations(s.T())
	s.progress.AssertExpectations(s.T())
}

func (s *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *ServerTestSuite) TestClaimJob_UsesCallerAsDriver() {
	jobID := kernel.NewUUID()
	s.workflow.On("ClaimJob", mock.Anything, mock.MatchedBy(func(cmd commands.ClaimJobCommand) bool {
		return cmd.JobID().IsEqual(jobID) && cmd.DriverID().IsEqual(s.caller.EmployeeID)
	})).Return(nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/claim", "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestClaimJob_LostRaceIsConflict() {
	jobID := kernel.NewUUID()
	s.workflow.On("ClaimJob", mock.Anything, mock.Anything).
		Return(errs.NewAlreadyClaimedError(jobID)).Once()

	rec := s.do(http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/claim", "")

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(http.StatusConflict, s.decodeError(rec).Code)
}

func (s *ServerTestSuite) TestClaimJob_InvalidPathID() {
	rec := s.do(http.MethodPost, "/api/v1/jobs/not-a-uuid/claim", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrder_UsesCallerOutlet() {
	customerID := kernel.NewUUID()
	s.workflow.On("CreatePickupRequest", mock.Anything, mock.MatchedBy(func(cmd commands.CreatePickupRequestCommand) bool {
		return cmd.OutletID().IsEqual(s.caller.OutletID) &&
			cmd.CustomerID().IsEqual(customerID) &&
			len(cmd.Items()) == 1 &&
			cmd.Schedule().PickupAt != nil
	})).Return(nil).Once()

	body := `{
		"customerId": "` + customerID.String() + `",
		"address": {"line": "Jl. Merdeka 1", "city": "Bandung", "lat": -6.9, "lon": 107.6},
		"items": [{"name": "shirt", "quantity": 3, "unitPrice": "5000", "weightKg": "1.2"}],
		"scheduledPickupAt": "2026-10-15T09:00:00Z"
	}`
	rec := s.do(http.MethodPost, "/api/v1/orders", body)

	s.Require().Equal(http.StatusCreated, rec.Code)
	var resp CreatedResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err := kernel.UUIDFromString(resp.ID)
	s.NoError(err)
}

func (s *ServerTestSuite) TestCreateOrder_InvalidAddress() {
	body := `{"customerId": "` + kernel.NewUUID().String() + `", "address": {"line": "", "city": "", "lat": 0, "lon": 0}}`

	rec := s.do(http.MethodPost, "/api/v1/orders", body)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCompleteJob_RequiresPhotos() {
	rec := s.do(http.MethodPost, "/api/v1/jobs/"+kernel.NewUUID().String()+"/complete", `{"photos": []}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCompleteJob_PassesProof() {
	s.workflow.On("CompleteJob", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteJobCommand) bool {
		return len(cmd.Photos()) == 1 && cmd.Notes() == "left at door" && len(cmd.Items()) == 0
	})).Return(nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/jobs/"+kernel.NewUUID().String()+"/complete",
		`{"photos": ["s3://proof/1.jpg"], "notes": "left at door"}`)

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestCompleteStage_WithoutBody() {
	stageID := kernel.NewUUID()
	s.workflow.On("CompleteStage", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteStageCommand) bool {
		return cmd.StageID().IsEqual(stageID) && cmd.WorkerID().IsEqual(s.caller.EmployeeID)
	})).Return(nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/stages/"+stageID.String()+"/complete", "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestRequestBypass_ReturnsRequestID() {
	var requestID kernel.UUID
	s.workflow.On("RequestBypass", mock.Anything, mock.MatchedBy(func(cmd commands.RequestBypassCommand) bool {
		requestID = cmd.RequestID()
		return cmd.Reason() == "two shirts missing"
	})).Return(nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/stages/"+kernel.NewUUID().String()+"/bypass",
		`{"reason": "two shirts missing"}`)

	s.Require().Equal(http.StatusCreated, rec.Code)
	var resp CreatedResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(requestID.String(), resp.ID)
}

func (s *ServerTestSuite) TestRequestBypass_FrozenStage() {
	stageID := kernel.NewUUID()
	s.workflow.On("RequestBypass", mock.Anything, mock.Anything).
		Return(errs.NewStageFrozenError(stageID)).Once()

	rec := s.do(http.MethodPost, "/api/v1/stages/"+stageID.String()+"/bypass", `{"reason": "stain"}`)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerTestSuite) TestResolveBypass_ApproveAndReject() {
	requestID := kernel.NewUUID()
	s.workflow.On("ResolveBypass", mock.Anything, mock.MatchedBy(func(cmd commands.ResolveBypassCommand) bool {
		return cmd.Approve() && cmd.RequestID().IsEqual(requestID)
	})).Return(nil).Once()
	s.workflow.On("ResolveBypass", mock.Anything, mock.MatchedBy(func(cmd commands.ResolveBypassCommand) bool {
		return !cmd.Approve()
	})).Return(errs.NewForbiddenError(s.caller.EmployeeID, "ResolveBypass")).Once()

	rec := s.do(http.MethodPost, "/api/v1/bypass-requests/"+requestID.String()+"/approve", `{"note": "ok"}`)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/bypass-requests/"+requestID.String()+"/reject", "")
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestInitiatePayment() {
	orderID := kernel.NewUUID()
	s.workflow.On("InitiatePayment", mock.Anything, mock.MatchedBy(func(cmd commands.InitiatePaymentCommand) bool {
		return cmd.OrderID().IsEqual(orderID) &&
			cmd.ActorID().IsEqual(s.caller.EmployeeID) &&
			cmd.PayerEmail() == "a@b.c"
	})).Return(ports.Charge{Reference: "mock-1", Status: "pending"}, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/payment", `{"payerEmail": "a@b.c"}`)

	s.Require().Equal(http.StatusCreated, rec.Code)
	var resp ChargeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("mock-1", resp.Reference)
}

func (s *ServerTestSuite) TestListJobs() {
	jobID, orderID := kernel.NewUUID(), kernel.NewUUID()
	s.jobs.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListAvailableJobsQuery) bool {
		return q.OutletID().IsEqual(s.caller.OutletID) && q.Kind() != nil && *q.Kind() == order.Pickup && q.Limit() == 10
	})).Return([]queries.AvailableJob{{JobID: jobID, OrderID: orderID, Kind: order.Pickup, City: "Bandung"}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/jobs?kind=PICKUP&limit=10", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp []AvailableJobResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal(jobID.String(), resp[0].JobID)
	s.Equal("PICKUP", resp[0].Kind)
}

func (s *ServerTestSuite) TestListJobs_BadParameters() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/jobs?kind=TELEPORT", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/jobs?limit=abc", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/jobs?limit=100000", "").Code)
}

func (s *ServerTestSuite) TestGetOrder_OtherOutletIsNotFound() {
	orderID := kernel.NewUUID()
	s.progress.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderProgress{ID: orderID, OutletID: kernel.NewUUID()}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestGetOrder() {
	orderID := kernel.NewUUID()
	s.progress.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderProgress{
		ID:            orderID,
		OutletID:      s.caller.OutletID,
		Status:        order.BeingWashed,
		PaymentStatus: order.Unpaid,
		Stages:        []queries.StageProgress{{ID: kernel.NewUUID(), Kind: order.Washing, State: "IN_PROGRESS"}},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp OrderProgressResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(order.BeingWashed.String(), resp.Status)
	s.Require().Len(resp.Stages, 1)
	s.Equal("IN_PROGRESS", resp.Stages[0].State)
	s.Empty(resp.Jobs)
}

func (s *ServerTestSuite) TestAPIRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()

	s.echo.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) webhook(secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set(WebhookSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestPaymentWebhook() {
	orderID := kernel.NewUUID()
	paidAt := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	s.workflow.On("OnPaymentConfirmed", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmPaymentCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.Paid() && cmd.PaidAt().Equal(paidAt)
	})).Return(nil).Once()

	rec := s.webhook("hook", `{"orderId": "`+orderID.String()+`", "paid": true, "paidAt": "2026-10-15T08:00:00Z"}`)

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestPaymentWebhook_WrongSecret() {
	rec := s.webhook("nope", `{"orderId": "`+kernel.NewUUID().String()+`", "paid": true}`)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestOpenDispute_ActsAsCaller() {
	orderID := kernel.NewUUID()
	s.workflow.On("OpenDispute", mock.Anything, mock.MatchedBy(func(cmd commands.OpenDisputeCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.ActorID().IsEqual(s.caller.EmployeeID)
	})).Return(errs.NewForbiddenError(s.caller.EmployeeID, "OpenDispute")).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/dispute", "")

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestInitiatePayment_ForbiddenForForeignCaller() {
	s.workflow.On("InitiatePayment", mock.Anything, mock.Anything).
		Return(ports.Charge{}, errs.NewForbiddenError(s.caller.EmployeeID, "ManagePayment")).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/payment", "")

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestInternalErrorsAreHidden() {
	s.workflow.On("OpenDispute", mock.Anything, mock.Anything).
		Return(errors.New("pq: connection reset by peer")).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/dispute", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "connection reset")
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	id := kernel.NewUUID()
	tests := []struct {
		err    error
		status int
	}{
		{errs.NewValueIsRequiredError("x"), http.StatusBadRequest},
		{errs.NewValueIsOutOfRangeError("x", 1, 2, 3), http.StatusBadRequest},
		{errs.NewObjectNotFoundError("order", id), http.StatusNotFound},
		{errs.NewNotOwnerError("job", id, id), http.StatusForbidden},
		{errs.NewInvalidTransitionError("order", "CREATED", "deliver"), http.StatusConflict},
		{errs.NewAlreadyProcessedError(id, "APPROVED"), http.StatusConflict},
		{errs.NewTransientError(errors.New("deadlock")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, new(MockJobLister), new(MockProgressReader))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
