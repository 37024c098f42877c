package constants

import "time"

const (
	IntentionNameMaxLength = 100
	IntentionTextMaxLength = 2000
	ChatMessageMaxLength   = 4000
	DefaultMaxRequestSize  = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 2
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 90 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort        = "5000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultNotifyTimeout   = 10 * time.Second
	DefaultChatTimeout     = 60 * time.Second
	DefaultTelegramAPIURL  = "https://api.telegram.org"
	DefaultOpenAIAPIURL    = "https://api.openai.com/v1"
	DefaultOpenAIModel     = "gpt-5"
	DefaultOpenAIMaxTokens = 500
	DefaultNotifyTimezone  = "UTC"

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerTimeout   = 30 * time.Second
	DefaultCircuitBreakerReset     = 30 * time.Second

	RateLimitCleanupInterval            = 5 * time.Minute
	RateLimitIntentionRequestsPerSecond = 0.2
	RateLimitIntentionBurst             = 5
	RateLimitChatRequestsPerSecond      = 0.5
	RateLimitChatBurst                  = 10
	RateLimitGeneralRequestsPerSecond   = 20
	RateLimitGeneralBurst               = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

const (
	RouteHealth           = "/api/health"
	RoutePrayerIntentions = "/api/prayer-intentions"
	RouteChat             = "/api/chat"
	RouteMetrics          = "/metrics"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
