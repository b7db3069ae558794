package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const WebhookSecretHeader = "X-Webhook-Secret"

type RouteConfig struct {
	JWTSecret []byte
	// WebhookSecret, when set, must match the WebhookSecretHeader of provider callbacks.
	WebhookSecret string
}

// Register mounts every endpoint on e.
func Register(e *echo.Echo, s *Server, cfg RouteConfig) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/webhooks/payments", s.PaymentWebhook, webhookSecret(cfg.WebhookSecret))

	api := e.Group("/api/v1", JWTAuth(cfg.JWTSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/items", s.UpdateItems)
	api.POST("/orders/:id/payment", s.InitiatePayment)
	api.POST("/orders/:id/dispute", s.OpenDispute)

	api.GET("/jobs", s.ListJobs)
	api.POST("/jobs/:id/claim", s.ClaimJob)
	api.POST("/jobs/:id/arrive", s.ArriveAtPickup)
	api.POST("/jobs/:id/start", s.StartJob)
	api.POST("/jobs/:id/complete", s.CompleteJob)

	api.POST("/stages/:id/start", s.StartStage)
	api.POST("/stages/:id/complete", s.CompleteStage)
	api.POST("/stages/:id/bypass", s.RequestBypass)

	api.POST("/bypass-requests/:id/approve", s.ApproveBypass)
	api.POST("/bypass-requests/:id/reject", s.RejectBypass)
}

// webhookSecret checks the shared secret header. An empty secret only passes
// config validation when the payment gateway is mocked.
func webhookSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}
			got := c.Request().Header.Get(WebhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid webhook secret",
				})
			}
			return next(c)
		}
	}
}
