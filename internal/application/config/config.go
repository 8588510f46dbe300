package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug      bool   `env:"DEBUG" envDefault:"false"`
	Port       string `env:"PORT" envDefault:"3000"`
	MetricPort string `env:"METRIC_PORT" envDefault:"9090"`
	Domain     string `env:"DOMAIN" envDefault:"http://localhost:3000"`
	JWTSecret  string `env:"JWT_SECRET,required,notEmpty"`

	// StatusTransitions - strict (только та же или следующая стадия) или permissive
	StatusTransitions string `env:"STATUS_TRANSITIONS" envDefault:"strict"`
	MaxRoomsPerOwner  int    `env:"MAX_ROOMS_PER_OWNER" envDefault:"5"`

	Postgres PostgresConfig
	Mail     MailConfig
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"berrow"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

type MailConfig struct {
	// Provider - resend или log (письма только пишутся в лог)
	Provider     string `env:"MAIL_PROVIDER" envDefault:"log"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM" envDefault:"onboarding@resend.dev"`
	MaxRetries   uint64 `env:"MAIL_MAX_RETRIES" envDefault:"3"`

	Async     bool `env:"MAIL_ASYNC" envDefault:"false"`
	QueueSize int  `env:"MAIL_QUEUE_SIZE" envDefault:"100"`
	Workers   int  `env:"MAIL_WORKERS" envDefault:"2"`
}

const (
	TransitionsStrict     = "strict"
	TransitionsPermissive = "permissive"

	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

func New() (*Config, error) {
	// .env не обязателен, в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err = c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) validate() error {
	switch c.StatusTransitions {
	case TransitionsStrict, TransitionsPermissive:
	default:
		return fmt.Errorf("unknown STATUS_TRANSITIONS %q", c.StatusTransitions)
	}

	switch c.Mail.Provider {
	case MailProviderLog:
	case MailProviderResend:
		if c.Mail.ResendAPIKey == "" {
			return errors.New("RESEND_API_KEY is required for resend mail provider")
		}
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}

	if c.MaxRoomsPerOwner <= 0 {
		return errors.New("MAX_ROOMS_PER_OWNER must be positive")
	}

	if c.Mail.Async && (c.Mail.QueueSize <= 0 || c.Mail.Workers <= 0) {
		return errors.New("MAIL_QUEUE_SIZE and MAIL_WORKERS must be positive")
	}

	return nil
}
