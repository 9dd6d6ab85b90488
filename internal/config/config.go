package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DeploymentMode selects how the binary behaves at startup.
type DeploymentMode string

const (
	ModeLocal DeploymentMode = "local"
	ModeProd  DeploymentMode = "prod"
)

// Configuration is the full application configuration, loaded from
// config files and environment variables via viper.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Billing    BillingConfig    `mapstructure:"billing" validate:"required"`
	Email      EmailConfig      `mapstructure:"email"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// BillingConfig holds the billing policy knobs.
type BillingConfig struct {
	// InvoiceNumberPrefix prefixes every generated invoice number.
	InvoiceNumberPrefix string `mapstructure:"invoice_number_prefix" validate:"required"`
	// DueDayOfMonth is the day of the month following issue on which
	// generated invoices fall due.
	DueDayOfMonth int `mapstructure:"due_day_of_month" validate:"min=1,max=28"`
	// NotificationLeadDays is how many days before month end the
	// compensation pre-payment notification fires.
	NotificationLeadDays int `mapstructure:"notification_lead_days" validate:"min=0,max=28"`
	// MaxSequenceRetries bounds invoice-number allocation retries on a
	// uniqueness conflict.
	MaxSequenceRetries int `mapstructure:"max_sequence_retries" validate:"min=1"`
}

type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
}

// SchedulerConfig configures the optional in-process cron trigger.
// A single active scheduler instance is assumed.
type SchedulerConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	BillingCronSpec      string `mapstructure:"billing_cron_spec"`
	OverdueCronSpec      string `mapstructure:"overdue_cron_spec"`
	CompensationCronSpec string `mapstructure:"compensation_cron_spec"`
}

// NewConfig loads configuration from ./config.yaml (optional) and the
// environment, then validates it.
func NewConfig() (*Configuration, error) {
	// Ignore missing .env; it only exists for local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("CLIENTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("billing.invoice_number_prefix", "INV")
	v.SetDefault("billing.due_day_of_month", 15)
	v.SetDefault("billing.notification_lead_days", 5)
	v.SetDefault("billing.max_sequence_retries", 5)
	v.SetDefault("email.enabled", false)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.billing_cron_spec", "0 2 * * *")
	v.SetDefault("scheduler.overdue_cron_spec", "0 3 * * *")
	// Hourly, so a failed delivery on the lead day is retried the same day.
	v.SetDefault("scheduler.compensation_cron_spec", "0 * * * *")
}

// Validate checks the configuration against struct tags.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}

// GetDefaultConfig returns a configuration suitable for tests and
// scripts, no files or environment required.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug"},
		Billing: BillingConfig{
			InvoiceNumberPrefix:  "INV",
			DueDayOfMonth:        15,
			NotificationLeadDays: 5,
			MaxSequenceRetries:   5,
		},
		Email:     EmailConfig{Enabled: false},
		Scheduler: SchedulerConfig{Enabled: false},
	}
}
