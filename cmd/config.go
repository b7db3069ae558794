package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"laundry/internal/core/application/workflow"
	"laundry/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL      string
	RabbitMQExchange string

	JWTSecret     string
	WebhookSecret string

	CompletionSchedule string
	IdleWindow         time.Duration
	SweepBatch         int
	RetryMax           uint64
	RetryInitial       time.Duration
	RetryMaxInterval   time.Duration

	MercadoPagoAccessToken string
	PaymentMock            bool
	PaymentMethodID        string
	PaymentNotificationURL string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := workflow.DefaultConfig()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("RABBITMQ_EXCHANGE", "laundry.events")
	v.SetDefault("COMPLETION_SCHEDULE", "0 * * * * *")
	v.SetDefault("IDLE_WINDOW", defaults.IdleWindow)
	v.SetDefault("SWEEP_BATCH", defaults.SweepBatch)
	v.SetDefault("RETRY_MAX", defaults.MaxRetries)
	v.SetDefault("RETRY_INITIAL_INTERVAL", defaults.InitialInterval)
	v.SetDefault("RETRY_MAX_INTERVAL", defaults.MaxInterval)
	v.SetDefault("PAYMENT_MOCK", true)

	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		RabbitMQURL:            v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:       v.GetString("RABBITMQ_EXCHANGE"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		WebhookSecret:          v.GetString("WEBHOOK_SECRET"),
		CompletionSchedule:     v.GetString("COMPLETION_SCHEDULE"),
		IdleWindow:             v.GetDuration("IDLE_WINDOW"),
		SweepBatch:             v.GetInt("SWEEP_BATCH"),
		RetryMax:               v.GetUint64("RETRY_MAX"),
		RetryInitial:           v.GetDuration("RETRY_INITIAL_INTERVAL"),
		RetryMaxInterval:       v.GetDuration("RETRY_MAX_INTERVAL"),
		MercadoPagoAccessToken: v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentMock:            v.GetBool("PAYMENT_MOCK"),
		PaymentMethodID:        v.GetString("PAYMENT_METHOD_ID"),
		PaymentNotificationURL: v.GetString("PAYMENT_NOTIFICATION_URL"),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.DBName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.DBUser == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_USER"))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.IdleWindow <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("IDLE_WINDOW", c.IdleWindow, "1ns", "any"))
	}
	if c.SweepBatch <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("SWEEP_BATCH", c.SweepBatch, 1, "any"))
	}
	if !c.PaymentMock && c.MercadoPagoAccessToken == "" {
		problems = append(problems, errs.NewValueIsRequiredError("MERCADOPAGO_ACCESS_TOKEN"))
	}
	if !c.PaymentMock && c.WebhookSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("WEBHOOK_SECRET"))
	}
	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) Workflow() workflow.Config {
	return workflow.Config{
		MaxRetries:      c.RetryMax,
		InitialInterval: c.RetryInitial,
		MaxInterval:     c.RetryMaxInterval,
		IdleWindow:      c.IdleWindow,
		SweepBatch:      c.SweepBatch,
	}
}
