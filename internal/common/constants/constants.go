package constants

import "time"

const (
	TitleMaxLength   = 200
	AuthorMaxLength  = 100
	TagMaxLength     = 30
	MaxTagsPerStory  = 10
	EmailMaxLength   = 254
	ContentMaxLength = 100 * 1024

	NewsletterExcerptLength = 500

	DefaultMaxRequestSize = 1 << 20

	MongoConnectTimeout         = 10 * time.Second
	MongoServerSelectionTimeout = 10 * time.Second
	MongoConnectMaxAttempts     = 10
	MongoConnectRetryDelay      = time.Second
	MongoQueryTimeout           = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultRequestTimeout  = 5 * time.Second
	DefaultDispatchTimeout = 60 * time.Second

	DefaultHTTPPort = "8080"

	RateLimitSubscribeRequestsPerSecond = 1
	RateLimitSubscribeBurst             = 3
	RateLimitSubmitRequestsPerSecond    = 0.5
	RateLimitSubmitBurst                = 2
	RateLimitGeneralRequestsPerSecond   = 20
	RateLimitGeneralBurst               = 40
	RateLimitCleanupInterval            = 5 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
