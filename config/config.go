package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	NotificationDriverKafka = "kafka"
	NotificationDriverSMTP  = "smtp"
)

type Config struct {
	Environment            string        `env:"APP_ENV" envDefault:"development"`
	ServicePort            string        `env:"BFF_ADMIN_PORT,required,notEmpty"`
	MetricsPort            string        `env:"METRICS_PORT"`
	FrontendURL            string        `env:"FRONTEND_URL,required,notEmpty"`
	QueueName              string        `env:"QUEUE_NAME,required,notEmpty"`
	InviteTemplateID       string        `env:"INVITE_NEW_USER_TEMPLATE_ID,required,notEmpty"`
	InviteTTL              time.Duration `env:"INVITE_TTL" envDefault:"168h"`
	NotificationDriver     string        `env:"NOTIFICATION_DRIVER" envDefault:"kafka"`
	RegistrationDataConfig RegistrationDataConfig
	VaultConfig            VaultConfig
	InfrastructureDBConfig PostgreSQLConfig `envPrefix:"LIB_INFRASTRUCTURE_POSTGRES_"`
	SalesDBConfig          PostgreSQLConfig `envPrefix:"LIB_SALES_POSTGRES_"`
	KafkaConfig            KafkaConfig
	SMTPConfig             SMTPConfig
	TracingConfig          TracingConfig
}

// RegistrationDataConfig points at the registration data service. A zero
// Timeout disables the client timeout; calls are then bounded by the request
// context only.
type RegistrationDataConfig struct {
	URL     string        `env:"MS_UPDATE_REGISTRATION_DATA_URL,required,notEmpty"`
	Timeout time.Duration `env:"MS_UPDATE_REGISTRATION_DATA_TIMEOUT" envDefault:"0s"`
}

type VaultConfig struct {
	URL      string `env:"VAULT_URL,required,notEmpty"`
	RoleName string `env:"VAULT_ROLE_NAME,required,notEmpty"`
	Token    string `env:"VAULT_TOKEN,required,notEmpty"`
	Env      string `env:"VAULT_ENV,required,notEmpty"`
}

type PostgreSQLConfig struct {
	DBUsername string `env:"USER,required,notEmpty"`
	DBPassword string `env:"PASSWORD,required,notEmpty"`
	DBPort     string `env:"PORT,required,notEmpty"`
	DBHost     string `env:"HOST,required,notEmpty"`
	DBSSL      string `env:"SSL,required,notEmpty"`
	DBName     string `env:"DB" envDefault:"postgres"`
}

type KafkaConfig struct {
	BrokerAddress string `env:"BROKER_ADDRESS,required,notEmpty"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Sender   string `env:"SMTP_SENDER"`
	Password string `env:"SMTP_PASSWORD"`
}

type TracingConfig struct {
	CollectorHost string `env:"COLLECTOR_HOST"`
}

// CreateNewConfig loads .env when present and fails when any required
// variable is unset or empty.
func CreateNewConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	return Parse()
}

func Parse() (*Config, error) {
	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) validate() error {
	var problems []string

	switch c.NotificationDriver {
	case NotificationDriverKafka:
	case NotificationDriverSMTP:
		if c.SMTPConfig.Host == "" || c.SMTPConfig.Sender == "" {
			problems = append(problems, "SMTP_HOST and SMTP_SENDER are required when NOTIFICATION_DRIVER=smtp")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown NOTIFICATION_DRIVER %q", c.NotificationDriver))
	}

	if c.RegistrationDataConfig.Timeout < 0 {
		problems = append(problems, "MS_UPDATE_REGISTRATION_DATA_TIMEOUT must not be negative")
	}
	if c.InviteTTL <= 0 {
		problems = append(problems, "INVITE_TTL must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}

	return nil
}

// ApplySecrets overrides database credentials with values from the secret
// store, keyed by their environment variable names.
func (c *Config) ApplySecrets(secrets map[string]string) {
	set := func(dst *string, key string) {
		if v, ok := secrets[key]; ok && v != "" {
			*dst = v
		}
	}

	set(&c.InfrastructureDBConfig.DBUsername, "LIB_INFRASTRUCTURE_POSTGRES_USER")
	set(&c.InfrastructureDBConfig.DBPassword, "LIB_INFRASTRUCTURE_POSTGRES_PASSWORD")
	set(&c.SalesDBConfig.DBUsername, "LIB_SALES_POSTGRES_USER")
	set(&c.SalesDBConfig.DBPassword, "LIB_SALES_POSTGRES_PASSWORD")
	set(&c.SMTPConfig.Password, "SMTP_PASSWORD")
}
