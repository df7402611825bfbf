package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string   // DATABASE_URL (required)
	HTTPAddr    string   // HTTP_ADDR (default ":8080")
	CORSOrigins []string // CORS_ALLOWED_ORIGINS (comma separated, default "*")
	LogLevel    string   // LOG_LEVEL (default "info")

	SessionTTL             time.Duration // SESSION_TTL (default 168h)
	SessionCleanupInterval time.Duration // SESSION_CLEANUP_INTERVAL (default 10m; 0 = disabled)
	LoginRateLimit         int           // LOGIN_RATE_LIMIT attempts per minute per IP (default 10)

	// Board
	SerializeTransitions bool // BOARD_SERIALIZE_TRANSITIONS (default true)

	// Eventos de mudança de etapa
	EventsBackend string // EVENTS_BACKEND: none | rabbitmq | nats
	RabbitMQURL   string // RABBITMQ_URL
	NATSURL       string // NATS_URL

	// SMTP
	MailHost     string // MAIL_HOST (empty = no e-mail)
	MailPort     int    // MAIL_PORT (default 587)
	MailUser     string // MAIL_USER
	MailPass     string // MAIL_PASS
	MailFrom     string // MAIL_FROM
	MailNotifyTo string // MAIL_NOTIFY_TO
}

const (
	EventsNone     = "none"
	EventsRabbitMQ = "rabbitmq"
	EventsNATS     = "nats"
)

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		HTTPAddr:      envOrDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		EventsBackend: strings.ToLower(envOrDefault("EVENTS_BACKEND", EventsNone)),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		NATSURL:       os.Getenv("NATS_URL"),
		MailHost:      os.Getenv("MAIL_HOST"),
		MailUser:      os.Getenv("MAIL_USER"),
		MailPass:      os.Getenv("MAIL_PASS"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailNotifyTo:  os.Getenv("MAIL_NOTIFY_TO"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if c.SessionTTL, err = durationEnv("SESSION_TTL", "168h"); err != nil {
		return nil, err
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionCleanupInterval, err = durationEnv("SESSION_CLEANUP_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if c.LoginRateLimit, err = intEnv("LOGIN_RATE_LIMIT", "10"); err != nil {
		return nil, err
	}
	if c.MailPort, err = intEnv("MAIL_PORT", "587"); err != nil {
		return nil, err
	}

	serialize := envOrDefault("BOARD_SERIALIZE_TRANSITIONS", "true")
	if c.SerializeTransitions, err = strconv.ParseBool(serialize); err != nil {
		return nil, fmt.Errorf("BOARD_SERIALIZE_TRANSITIONS: %w", err)
	}

	switch c.EventsBackend {
	case EventsNone:
	case EventsRabbitMQ:
		if c.RabbitMQURL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL is required when EVENTS_BACKEND=rabbitmq")
		}
	case EventsNATS:
		if c.NATSURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_BACKEND=nats")
		}
	default:
		return nil, fmt.Errorf("EVENTS_BACKEND: unknown backend %q", c.EventsBackend)
	}

	return c, nil
}

// MailEnabled reports whether SMTP settings are complete enough to send.
func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && c.MailFrom != "" && c.MailNotifyTo != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key, fallback string) (int, error) {
	n, err := strconv.Atoi(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
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
