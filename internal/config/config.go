package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultMailPort     = 587
	DefaultSequenceCron = "*/15 * * * *"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	DatabaseURL string `validate:"required"`
	RabbitMQURL string

	MailHost string
	MailPort int `validate:"min=1,max=65535"`
	MailUser string
	MailPass string
	MailFrom string

	VoiceAPIURL string `validate:"omitempty,url"`
	VoiceAPIKey string

	// Vazio desliga o endpoint de webhook (500 em todo request).
	WebhookSigningKey string
	// Zero desliga a checagem de replay.
	WebhookTolerance time.Duration

	SequenceCron string `validate:"required"`
	CORSOrigins  []string

	LogLevel  string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `validate:"omitempty,oneof=json console"`
}

// Load lê o .env (se existir) e depois o ambiente.
func Load(envFiles ...string) (*Config, error) {
	// .env é opcional
	_ = godotenv.Load(envFiles...)
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:              get("PORT", DefaultPort),
		DatabaseURL:       get("DATABASE_URL", ""),
		RabbitMQURL:       get("RABBITMQ_URL", ""),
		MailHost:          get("MAIL_HOST", ""),
		MailUser:          get("MAIL_USER", ""),
		MailPass:          get("MAIL_PASS", ""),
		MailFrom:          get("MAIL_FROM", ""),
		VoiceAPIURL:       get("VOICE_API_URL", ""),
		VoiceAPIKey:       get("VOICE_API_KEY", ""),
		WebhookSigningKey: get("CALENDLY_WEBHOOK_SIGNING_KEY", ""),
		SequenceCron:      get("SEQUENCE_CRON", DefaultSequenceCron),
		CORSOrigins:       splitList(get("CORS_ORIGINS", "*")),
		LogLevel:          strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(get("LOG_FORMAT", "json")),
	}

	port, err := strconv.Atoi(get("MAIL_PORT", strconv.Itoa(DefaultMailPort)))
	if err != nil {
		return nil, fmt.Errorf("MAIL_PORT: %w", err)
	}
	cfg.MailPort = port

	if raw := get("WEBHOOK_TOLERANCE", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("WEBHOOK_TOLERANCE: %w", err)
		}
		cfg.WebhookTolerance = d
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

func (c *Config) QueueEnabled() bool {
	return c.RabbitMQURL != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
