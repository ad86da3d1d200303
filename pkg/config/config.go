package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"covoit/pkg/logger"
)

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string

	SessionFile string

	SearchDefaultFlexibility time.Duration
	SearchMaxRosterFetches   int
	SearchDropUnverified     bool

	Port              string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxRequestSize    int
	IdempotencyTTL    time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaActivityTopic string

	Log *logger.Logger
}

// Load reads the configuration from the environment and exits on invalid values.
func Load(serviceName string) *Config {
	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogFormat == logger.JSON,
		Service:   serviceName,
		Output:    os.Stderr,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads every setting without validating or building a logger.
func FromEnv() *Config {
	return &Config{
		APIBaseURL:     strings.TrimRight(getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL), "/"),
		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		SessionFile: getEnvStr(EnvSessionFile, defaultSessionFile()),

		SearchDefaultFlexibility: getEnvDuration(EnvSearchDefaultFlexibility, DefaultSearchFlexibility),
		SearchMaxRosterFetches:   getEnvNum(EnvSearchMaxRosterFetches, DefaultMaxRosterFetches),
		SearchDropUnverified:     getEnvBool(EnvSearchDropUnverified, false),

		Port:              getEnvStr(EnvPort, DefaultPort),
		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		MaxRequestSize:    getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		IdempotencyTTL:    getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaActivityTopic: getEnvStr(EnvKafkaActivityTopic, DefaultKafkaActivityTopic),
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errors = append(errors, fmt.Sprintf("APIBaseURL must be an absolute http(s) URL, got: %s", cfg.APIBaseURL))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.SessionFile == "" {
		errors = append(errors, "SessionFile cannot be empty")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.SearchDefaultFlexibility < 0 {
		errors = append(errors, fmt.Sprintf("SearchDefaultFlexibility cannot be negative, got: %s", cfg.SearchDefaultFlexibility))
	}
	if cfg.SearchMaxRosterFetches <= 0 {
		errors = append(errors, fmt.Sprintf("SearchMaxRosterFetches must be positive, got: %d", cfg.SearchMaxRosterFetches))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Debug("Configuration loaded successfully",
		"api_base_url", cfg.APIBaseURL,
		"request_timeout", cfg.RequestTimeout,
		"log_level", cfg.LogLevel,
		"session_file", cfg.SessionFile,
		"search_default_flexibility", cfg.SearchDefaultFlexibility,
		"search_max_roster_fetches", cfg.SearchMaxRosterFetches,
		"search_drop_unverified", cfg.SearchDropUnverified,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"max_request_size", cfg.MaxRequestSize,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_activity_topic", cfg.KafkaActivityTopic,
	)
}

// IsSecure reports whether the backend is reached over HTTPS.
func (cfg *Config) IsSecure() bool {
	return strings.HasPrefix(strings.ToLower(cfg.APIBaseURL), "https://")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultSessionFileName
	}
	return filepath.Join(dir, "covoit", DefaultSessionFileName)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
