package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/habibiefaried/fountain-relay/internal/dnsutil"
	"gopkg.in/yaml.v3"
)

// Log write failure policies.
const (
	OnErrorFatal    = "fatal"
	OnErrorContinue = "continue"
)

// SMTP session security modes.
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityNone     = "none"
)

// SerialConfig describes the sensor link.
type SerialConfig struct {
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`
}

// LogConfig describes where received messages are persisted.
type LogConfig struct {
	Path        string `yaml:"path"`
	OnError     string `yaml:"on_error"`
	DatabaseURL string `yaml:"database_url"`
}

// SMTPConfig describes the outbound mail relay and the alert envelope.
type SMTPConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	Security           string        `yaml:"security"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	Username           string        `yaml:"username"`
	Password           string        `yaml:"password"`
	From               string        `yaml:"from"`
	To                 []string      `yaml:"to"`
	Helo               string        `yaml:"helo"`
	DialTimeout        time.Duration `yaml:"dial_timeout"`
	CommandTimeout     time.Duration `yaml:"command_timeout"`
}

// Addr returns the relay address in host:port form.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Config is the top-level configuration, loaded once at process start.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Log    LogConfig    `yaml:"log"`
	SMTP   SMTPConfig   `yaml:"smtp"`
}

var supportedBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400}

// Load reads the YAML file at path (if path is not empty), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Serial.Device, "SERIAL_DEVICE")
	if err := setInt(&c.Serial.BaudRate, "SERIAL_BAUD"); err != nil {
		return err
	}

	setString(&c.Log.Path, "LOG_PATH")
	setString(&c.Log.OnError, "LOG_ON_ERROR")
	setString(&c.Log.DatabaseURL, "DB_URL")

	setString(&c.SMTP.Host, "SMTP_HOST")
	if err := setInt(&c.SMTP.Port, "SMTP_PORT"); err != nil {
		return err
	}
	setString(&c.SMTP.Security, "SMTP_SECURITY")
	setString(&c.SMTP.Username, "SMTP_USERNAME")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")
	if v := os.Getenv("SMTP_TO"); v != "" {
		c.SMTP.To = splitList(v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Serial.Device == "" {
		c.Serial.Device = "/dev/ttyUSB0"
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = 57600
	}
	if c.Log.Path == "" {
		c.Log.Path = "fountain.log"
	}
	if c.Log.OnError == "" {
		c.Log.OnError = OnErrorFatal
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.Security == "" {
		c.SMTP.Security = SecurityStartTLS
	}
	if c.SMTP.Helo == "" {
		c.SMTP.Helo = "localhost"
	}
	if c.SMTP.DialTimeout == 0 {
		c.SMTP.DialTimeout = 10 * time.Second
	}
	if c.SMTP.CommandTimeout == 0 {
		c.SMTP.CommandTimeout = 30 * time.Second
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Serial.Device == "" {
		return fmt.Errorf("serial device cannot be empty")
	}
	if !supportedBaud(c.Serial.BaudRate) {
		return fmt.Errorf("unsupported baud rate: %d", c.Serial.BaudRate)
	}

	if c.Log.Path == "" {
		return fmt.Errorf("log path cannot be empty")
	}
	switch c.Log.OnError {
	case OnErrorFatal, OnErrorContinue:
	default:
		return fmt.Errorf("invalid log on_error policy %q (want %q or %q)", c.Log.OnError, OnErrorFatal, OnErrorContinue)
	}

	if err := dnsutil.ValidateHost(c.SMTP.Host); err != nil {
		return fmt.Errorf("invalid smtp host: %w", err)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("invalid smtp port: %d", c.SMTP.Port)
	}
	switch c.SMTP.Security {
	case SecurityStartTLS, SecurityTLS, SecurityNone:
	default:
		return fmt.Errorf("invalid smtp security mode %q", c.SMTP.Security)
	}
	if _, err := mail.ParseAddress(c.SMTP.From); err != nil {
		return fmt.Errorf("invalid smtp from address %q: %w", c.SMTP.From, err)
	}
	if len(c.SMTP.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, to := range c.SMTP.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to, err)
		}
	}
	return nil
}

func supportedBaud(baud int) bool {
	for _, b := range supportedBaudRates {
		if b == baud {
			return true
		}
	}
	return false
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
