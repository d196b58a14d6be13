package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "8480",
			DBPassword:      "secure-password",
			DBSSLMode:       "require",
			RedisURL:        "localhost:6379",
			Env:             "development",
			SessionTTLHours: 720,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing redis", func(c *Config) { c.RedisURL = "" }, true},
		{"negative session ttl", func(c *Config) { c.SessionTTLHours = -1 }, true},
		{"zero session ttl allowed", func(c *Config) { c.SessionTTLHours = 0 }, false},
		{"production with default password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production with empty password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = ""
		}, true},
		{"production with strong password", func(c *Config) {
			c.Env = "production"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SessionTTL(t *testing.T) {
	c := &Config{SessionTTLHours: 24}
	assert.Equal(t, 24*time.Hour, c.SessionTTL())

	c.SessionTTLHours = 0
	assert.Equal(t, time.Duration(0), c.SessionTTL())
}
