package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fountain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_YAMLWithDefaults(t *testing.T) {
	path := writeConfig(t, `
serial:
  device: /dev/ttyACM0
smtp:
  host: smtp.example.com
  username: me@example.com
  password: secret
  from: "Cat Cafe <catcafe@example.com>"
  to:
    - me@example.org
    - other@example.org
  dial_timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/dev/ttyACM0", cfg.Serial.Device)
	require.Equal(t, 57600, cfg.Serial.BaudRate)
	require.Equal(t, "fountain.log", cfg.Log.Path)
	require.Equal(t, OnErrorFatal, cfg.Log.OnError)
	require.Equal(t, 587, cfg.SMTP.Port)
	require.Equal(t, SecurityStartTLS, cfg.SMTP.Security)
	require.Equal(t, []string{"me@example.org", "other@example.org"}, cfg.SMTP.To)
	require.Equal(t, 3*time.Second, cfg.SMTP.DialTimeout)
	require.Equal(t, 30*time.Second, cfg.SMTP.CommandTimeout)
	require.Equal(t, "smtp.example.com:587", cfg.SMTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
smtp:
  host: smtp.example.com
  from: catcafe@example.com
  to: [me@example.org]
`)
	t.Setenv("SERIAL_DEVICE", "/dev/ttyS1")
	t.Setenv("SERIAL_BAUD", "9600")
	t.Setenv("LOG_ON_ERROR", "continue")
	t.Setenv("SMTP_HOST", "127.0.0.1")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_SECURITY", "none")
	t.Setenv("SMTP_TO", "a@example.org, b@example.org,")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/dev/ttyS1", cfg.Serial.Device)
	require.Equal(t, 9600, cfg.Serial.BaudRate)
	require.Equal(t, OnErrorContinue, cfg.Log.OnError)
	require.Equal(t, "127.0.0.1:2525", cfg.SMTP.Addr())
	require.Equal(t, SecurityNone, cfg.SMTP.Security)
	require.Equal(t, []string{"a@example.org", "b@example.org"}, cfg.SMTP.To)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SMTP_HOST", "localhost")
	t.Setenv("SMTP_FROM", "catcafe@example.com")
	t.Setenv("SMTP_TO", "me@example.org")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.SMTP.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("SMTP_PORT", "twenty-five")
	_, err := Load("")
	require.ErrorContains(t, err, "SMTP_PORT")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{
			SMTP: SMTPConfig{
				Host: "smtp.example.com",
				From: "catcafe@example.com",
				To:   []string{"me@example.org"},
			},
		}
		c.applyDefaults()
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"ip host", func(c *Config) { c.SMTP.Host = "10.0.0.5" }, true},
		{"bad baud", func(c *Config) { c.Serial.BaudRate = 12345 }, false},
		{"empty device", func(c *Config) { c.Serial.Device = "" }, false},
		{"bad policy", func(c *Config) { c.Log.OnError = "ignore" }, false},
		{"bad host", func(c *Config) { c.SMTP.Host = "-bad.com" }, false},
		{"empty host", func(c *Config) { c.SMTP.Host = "" }, false},
		{"bad port", func(c *Config) { c.SMTP.Port = 70000 }, false},
		{"bad security", func(c *Config) { c.SMTP.Security = "ssl3" }, false},
		{"bad from", func(c *Config) { c.SMTP.From = "not an address" }, false},
		{"no recipients", func(c *Config) { c.SMTP.To = nil }, false},
		{"bad recipient", func(c *Config) { c.SMTP.To = []string{"me@example.org", "nope"} }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
