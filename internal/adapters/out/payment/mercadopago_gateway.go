// Package payment opens charges with Mercado Pago. In mock mode no request leaves
// the process and every charge is accepted with a generated reference.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"laundry/internal/core/ports"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingAccessToken   = errors.New("missing Mercado Pago access token")
	ErrGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrNonPositiveAmount    = errors.New("charge amount must be positive")
)

const mockStatus = "pending"

type Config struct {
	AccessToken     string
	PaymentMethodID string
	NotificationURL string
	Mock            bool
}

type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

// MercadoPagoGateway implements ports.PaymentGateway.
type MercadoPagoGateway struct {
	client  paymentCreator
	cfg     Config
	logger  *slog.Logger
	nowFunc func() time.Time
}

func NewMercadoPagoGateway(cfg Config) (*MercadoPagoGateway, error) {
	logger := slog.Default().With("component", "payment")
	if cfg.Mock {
		logger.Info("payment gateway mock mode enabled")
		return &MercadoPagoGateway{cfg: cfg, logger: logger, nowFunc: time.Now}, nil
	}
	if cfg.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}

	return newGateway(payment.NewClient(sdkCfg), cfg, logger), nil
}

func newGateway(client paymentCreator, cfg Config, logger *slog.Logger) *MercadoPagoGateway {
	return &MercadoPagoGateway{client: client, cfg: cfg, logger: logger, nowFunc: time.Now}
}

// CreateCharge uses the order id as the external reference, which is what the
// webhook later reports back.
func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req ports.ChargeRequest) (ports.Charge, error) {
	if !req.Amount.IsPositive() {
		return ports.Charge{}, fmt.Errorf("%w: %s", ErrNonPositiveAmount, req.Amount)
	}

	if g.cfg.Mock {
		ref := "mock-" + strconv.FormatInt(g.nowFunc().UTC().UnixNano(), 10)
		g.logger.InfoContext(ctx, "mock charge created",
			"order_id", req.OrderID.String(),
			"amount", req.Amount.String(),
			"reference", ref)
		return ports.Charge{Reference: ref, Status: mockStatus}, nil
	}
	if g.client == nil {
		return ports.Charge{}, ErrGatewayNotConfigured
	}

	request := payment.Request{
		TransactionAmount: req.Amount.InexactFloat64(),
		Description:       req.Description,
		ExternalReference: req.OrderID.String(),
		PaymentMethodID:   g.cfg.PaymentMethodID,
		NotificationURL:   g.cfg.NotificationURL,
	}
	if req.PayerEmail != "" {
		request.Payer = &payment.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := g.client.Create(ctx, request)
	if err != nil {
		g.logger.WarnContext(ctx, "charge creation failed", "order_id", req.OrderID.String(), "error", err)
		return ports.Charge{}, err
	}

	g.logger.InfoContext(ctx, "charge created",
		"order_id", req.OrderID.String(),
		"provider_payment_id", resp.ID,
		"provider_status", resp.Status)
	return ports.Charge{Reference: fmt.Sprintf("%d", resp.ID), Status: resp.Status}, nil
}
