package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL": "postgres://localhost/outbound",
	}))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMailPort, cfg.MailPort)
	assert.Equal(t, DefaultSequenceCron, cfg.SequenceCron)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Zero(t, cfg.WebhookTolerance)
	assert.Empty(t, cfg.WebhookSigningKey)
	assert.False(t, cfg.QueueEnabled())
	assert.False(t, cfg.MailEnabled())
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":                         "9090",
		"DATABASE_URL":                 "postgres://db/outbound",
		"RABBITMQ_URL":                 "amqp://guest:guest@mq:5672/",
		"MAIL_HOST":                    "smtp.test",
		"MAIL_PORT":                    "2525",
		"CALENDLY_WEBHOOK_SIGNING_KEY": "whsec",
		"WEBHOOK_TOLERANCE":            "5m",
		"CORS_ORIGINS":                 "https://app.test, https://admin.test",
		"LOG_LEVEL":                    "DEBUG",
		"LOG_FORMAT":                   "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2525, cfg.MailPort)
	assert.Equal(t, 5*time.Minute, cfg.WebhookTolerance)
	assert.Equal(t, []string{"https://app.test", "https://admin.test"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.QueueEnabled())
	assert.True(t, cfg.MailEnabled())
}

func TestFromLookupErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database":  {},
		"bad mail port":     {"DATABASE_URL": "x", "MAIL_PORT": "smtp"},
		"bad tolerance":     {"DATABASE_URL": "x", "WEBHOOK_TOLERANCE": "five"},
		"bad log level":     {"DATABASE_URL": "x", "LOG_LEVEL": "loud"},
		"non numeric port":  {"DATABASE_URL": "x", "PORT": "http"},
		"invalid voice url": {"DATABASE_URL": "x", "VOICE_API_URL": "not a url"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
