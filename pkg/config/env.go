package config

const (
	EnvAPIBaseURL     = "COVOIT_API_BASE_URL"
	EnvRequestTimeout = "REQUEST_TIMEOUT"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvSessionFile = "SESSION_FILE"

	EnvSearchDefaultFlexibility = "SEARCH_DEFAULT_FLEXIBILITY"
	EnvSearchMaxRosterFetches   = "SEARCH_MAX_CONCURRENT_ROSTER_FETCHES"
	EnvSearchDropUnverified     = "SEARCH_DROP_UNVERIFIED"

	EnvPort              = "MAESTRO_PORT"
	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvMaxRequestSize    = "MAX_REQUEST_SIZE"
	EnvIdempotencyTTL    = "IDEMPOTENCY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaActivityTopic = "KAFKA_ACTIVITY_TOPIC"
)
