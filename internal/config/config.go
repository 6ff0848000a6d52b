package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"skywatch.app/pkg/errors"
	"skywatch.app/pkg/logger"
	"skywatch.app/pkg/validation"
)

const (
	maxRedisDB    = 15
	maxPortNumber = 65535
	maxRetries    = 10
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	NWS     NWSConfig     `split_words:"true"`
	Email   EmailConfig   `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Notify  NotifyConfig  `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
	Metrics MetricsConfig `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// NWSConfig configures the forecast provider client
type NWSConfig struct {
	BaseURL                   string `envconfig:"NWS_BASE_URL" default:"https://api.weather.gov"`
	UserAgent                 string `envconfig:"NWS_USER_AGENT" default:"(skywatch.app, ops@skywatch.app)"`
	MinRequestIntervalSeconds int    `envconfig:"NWS_MIN_REQUEST_INTERVAL_SECONDS" default:"10"`
	MaxRetries                int    `envconfig:"NWS_MAX_RETRIES" default:"3"`
	RetryBackoffSeconds       int    `envconfig:"NWS_RETRY_BACKOFF_SECONDS" default:"3"`
	TimeoutSeconds            int    `envconfig:"NWS_TIMEOUT_SECONDS" default:"10"`
	BreakerMaxFailures        int    `envconfig:"NWS_BREAKER_MAX_FAILURES" default:"5"`
}

func (n NWSConfig) MinRequestInterval() time.Duration {
	return time.Duration(n.MinRequestIntervalSeconds) * time.Second
}

func (n NWSConfig) RetryBackoff() time.Duration {
	return time.Duration(n.RetryBackoffSeconds) * time.Second
}

func (n NWSConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// CacheType represents the grid cache backend
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeFile
	CacheTypeMemory
	CacheTypeRedis
	CacheTypeSQLite
	CacheTypePostgres
)

var cacheTypeNames = map[CacheType]string{
	CacheTypeFile:     "file",
	CacheTypeMemory:   "memory",
	CacheTypeRedis:    "redis",
	CacheTypeSQLite:   "sqlite",
	CacheTypePostgres: "postgres",
}

// String returns the string representation of cache type
func (c CacheType) String() string {
	if name, ok := cacheTypeNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	_, ok := cacheTypeNames[c]
	return ok
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	for t, name := range cacheTypeNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return t
		}
	}
	return CacheTypeUnknown
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type        CacheType   `envconfig:"CACHE_TYPE" default:"file"`
	FilePath    string      `envconfig:"CACHE_FILE_PATH" default:"grid_cache.json"`
	SQLitePath  string      `envconfig:"CACHE_SQLITE_PATH" default:"grid_cache.db"`
	PostgresDSN string      `envconfig:"CACHE_POSTGRES_DSN"`
	Redis       RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type EmailConfig struct {
	SMTPHost     string   `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int      `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string   `envconfig:"EMAIL_SMTP_USERNAME"`
	SMTPPassword string   `envconfig:"EMAIL_SMTP_PASSWORD"`
	FromName     string   `envconfig:"EMAIL_FROM_NAME" default:"Skywatch"`
	FromAddress  string   `envconfig:"EMAIL_FROM_ADDRESS"`
	To           []string `envconfig:"EMAIL_TO"`
}

// NotifyConfig controls a notification run
type NotifyConfig struct {
	LocationsFile   string `envconfig:"LOCATIONS_FILE" default:"locations.yaml"`
	DisplayTimeZone string `envconfig:"DISPLAY_TIME_ZONE" default:"America/Los_Angeles"`
	DryRun          bool   `envconfig:"NOTIFY_DRY_RUN" default:"false"`
}

// DisplayLocation loads the zone used to render message times.
func (n NotifyConfig) DisplayLocation() (*time.Location, error) {
	zone, err := time.LoadLocation(n.DisplayTimeZone)
	if err != nil {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("DISPLAY_TIME_ZONE %q is not a known time zone", n.DisplayTimeZone), err)
	}
	return zone, nil
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH"`
}

type MetricsConfig struct {
	PushgatewayURL string `envconfig:"METRICS_PUSHGATEWAY_URL"`
	JobName        string `envconfig:"METRICS_JOB_NAME" default:"skywatch_notify"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.NWS.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if !c.Notify.DryRun {
		if err := c.Email.ValidateAddresses(); err != nil {
			return err
		}
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Notify.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (n *NWSConfig) Validate() error {
	if !isHTTPURL(n.BaseURL) {
		return errors.NewConfigurationError("NWS_BASE_URL must start with http:// or https://", nil)
	}
	if strings.TrimSpace(n.UserAgent) == "" {
		return errors.NewConfigurationError("NWS_USER_AGENT cannot be empty", nil)
	}
	if n.MinRequestIntervalSeconds < 0 {
		return errors.NewConfigurationError("NWS_MIN_REQUEST_INTERVAL_SECONDS cannot be negative", nil)
	}
	if n.MaxRetries < 0 || n.MaxRetries > maxRetries {
		return errors.NewConfigurationError("NWS_MAX_RETRIES must be between 0 and 10", nil)
	}
	if n.RetryBackoffSeconds < 0 {
		return errors.NewConfigurationError("NWS_RETRY_BACKOFF_SECONDS cannot be negative", nil)
	}
	if n.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("NWS_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	if n.BreakerMaxFailures < 1 {
		return errors.NewConfigurationError("NWS_BREAKER_MAX_FAILURES must be at least 1", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: file, memory, redis, sqlite, postgres", nil)
	}

	switch c.Type {
	case CacheTypeFile:
		if strings.TrimSpace(c.FilePath) == "" {
			return errors.NewConfigurationError("CACHE_FILE_PATH cannot be empty when using file cache", nil)
		}
	case CacheTypeRedis:
		return c.Redis.Validate()
	case CacheTypeSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.NewConfigurationError("CACHE_SQLITE_PATH cannot be empty when using sqlite cache", nil)
		}
	case CacheTypePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.NewConfigurationError("CACHE_POSTGRES_DSN cannot be empty when using postgres cache", nil)
		}
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// Validate checks the SMTP transport settings.
func (e *EmailConfig) Validate() error {
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > maxPortNumber {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if (e.SMTPUsername == "") != (e.SMTPPassword == "") {
		return errors.NewConfigurationError("EMAIL_SMTP_USERNAME and EMAIL_SMTP_PASSWORD must both be provided or both be empty", nil)
	}
	if e.FromName == "" {
		return errors.NewConfigurationError("EMAIL_FROM_NAME cannot be empty", nil)
	}
	return nil
}

// ValidateAddresses checks sender and recipients, which a real send needs.
func (e *EmailConfig) ValidateAddresses() error {
	if !validation.IsValidEmail(e.FromAddress) {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS must be a valid email address", nil)
	}
	if len(e.To) == 0 {
		return errors.NewConfigurationError("EMAIL_TO must list at least one recipient", nil)
	}
	for _, to := range e.To {
		if !validation.IsValidEmail(to) {
			return errors.NewConfigurationError(fmt.Sprintf("EMAIL_TO contains an invalid address: %q", to), nil)
		}
	}
	return nil
}

func (n *NotifyConfig) Validate() error {
	if strings.TrimSpace(n.LocationsFile) == "" {
		return errors.NewConfigurationError("LOCATIONS_FILE cannot be empty", nil)
	}
	if _, err := n.DisplayLocation(); err != nil {
		return err
	}
	return nil
}

func (l *LogConfig) Validate() error {
	if !logger.IsValidLevel(l.Level) {
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	return nil
}

func (m *MetricsConfig) Validate() error {
	if m.PushgatewayURL != "" && !isHTTPURL(m.PushgatewayURL) {
		return errors.NewConfigurationError("METRICS_PUSHGATEWAY_URL must start with http:// or https://", nil)
	}
	if strings.TrimSpace(m.JobName) == "" {
		return errors.NewConfigurationError("METRICS_JOB_NAME cannot be empty", nil)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
