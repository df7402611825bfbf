package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	"DATABASE_URL", "HTTP_ADDR", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	"SESSION_TTL", "SESSION_CLEANUP_INTERVAL", "LOGIN_RATE_LIMIT", "BOARD_SERIALIZE_TRANSITIONS",
	"EVENTS_BACKEND", "RABBITMQ_URL", "NATS_URL",
	"MAIL_HOST", "MAIL_PORT", "MAIL_USER", "MAIL_PASS", "MAIL_FROM", "MAIL_NOTIFY_TO",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 168*time.Hour, c.SessionTTL)
	assert.Equal(t, 10*time.Minute, c.SessionCleanupInterval)
	assert.Equal(t, 10, c.LoginRateLimit)
	assert.True(t, c.SerializeTransitions)
	assert.Equal(t, EventsNone, c.EventsBackend)
	assert.Equal(t, 587, c.MailPort)
	assert.False(t, c.MailEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/crm")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.ligue.com.br, http://localhost:3000,")
	t.Setenv("BOARD_SERIALIZE_TRANSITIONS", "false")
	t.Setenv("EVENTS_BACKEND", "NATS")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("MAIL_HOST", "smtp.ligue.com.br")
	t.Setenv("MAIL_FROM", "crm@ligue.com.br")
	t.Setenv("MAIL_NOTIFY_TO", "vendas@ligue.com.br")

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.ligue.com.br", "http://localhost:3000"}, c.CORSOrigins)
	assert.False(t, c.SerializeTransitions)
	assert.Equal(t, EventsNATS, c.EventsBackend)
	assert.True(t, c.MailEnabled())
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want string
	}{
		{"MissingDatabaseURL", map[string]string{}, "DATABASE_URL is required"},
		{"BadTTL", map[string]string{"SESSION_TTL": "forever"}, "SESSION_TTL"},
		{"NegativeTTL", map[string]string{"SESSION_TTL": "-1h"}, "SESSION_TTL must be positive"},
		{"BadRateLimit", map[string]string{"LOGIN_RATE_LIMIT": "ten"}, "LOGIN_RATE_LIMIT"},
		{"BadBool", map[string]string{"BOARD_SERIALIZE_TRANSITIONS": "sometimes"}, "BOARD_SERIALIZE_TRANSITIONS"},
		{"RabbitWithoutURL", map[string]string{"EVENTS_BACKEND": "rabbitmq"}, "RABBITMQ_URL is required"},
		{"UnknownBackend", map[string]string{"EVENTS_BACKEND": "kafka"}, "unknown backend"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			if tc.name != "MissingDatabaseURL" {
				t.Setenv("DATABASE_URL", "postgres://localhost/crm")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
