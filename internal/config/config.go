package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the webhook bridge.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"whatsapp-bridge"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Webhook verification
	VerifyToken string `env:"VERIFY_TOKEN,notEmpty"`

	// Model provider
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,notEmpty"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model         string `env:"MODEL" envDefault:"gpt-4o-mini"`

	// WhatsApp Business API
	WhatsAppPhoneID     string        `env:"WHATSAPP_PHONE_ID,notEmpty"`
	WhatsAppAccessToken string        `env:"WHATSAPP_ACCESS_TOKEN,notEmpty"`
	WhatsAppAPIBaseURL  string        `env:"WHATSAPP_API_BASE_URL" envDefault:"https://graph.facebook.com/v23.0"`
	WhatsAppTimeout     time.Duration `env:"WHATSAPP_TIMEOUT" envDefault:"10s"`

	// PostgreSQL, split reader/writer principals
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       int    `env:"DB_PORT" envDefault:"5432"`
	DBName       string `env:"DB_NAME,notEmpty"`
	DBUserReader string `env:"DB_USER_READER,notEmpty"`
	DBPassReader string `env:"DB_PASS_READER,notEmpty"`
	DBUserWriter string `env:"DB_USER_WRITER,notEmpty"`
	DBPassWriter string `env:"DB_PASS_WRITER,notEmpty"`

	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// Observability
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// ReadDSN builds the reader-credential DSN for the read replica pool.
func (c *Config) ReadDSN() string {
	return c.dsn(c.DBUserReader, c.DBPassReader)
}

// WriteDSN builds the writer-credential DSN for the transactional pool.
func (c *Config) WriteDSN() string {
	return c.dsn(c.DBUserWriter, c.DBPassWriter)
}

func (c *Config) dsn(user, pass string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, user, pass, c.DBName)
}
