package config

import "time"

const (
	DefaultAPIBaseURL     = "http://localhost:8080"
	DefaultRequestTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultSessionFileName = "session"

	DefaultSearchFlexibility = 2 * time.Hour
	DefaultMaxRosterFetches  = 8

	DefaultPort              = "8090"
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultMaxRequestSize    = 1 * 1024 * 1024 // 1MB
	DefaultIdempotencyTTL    = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaActivityTopic = "covoit.activity"
)
