package middleware

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/deppfellow/tutorial-api/internal/errs"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix    = "tutorials:ratelimit"
	rateLimitRedisTimeout = 500 * time.Millisecond
	rateLimitStoreExpiry  = 3 * time.Minute
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limiter enforces the configured per-client limit keyed by real ip. With
// Redis the count is shared across instances; otherwise it is kept in memory.
func (r *RateLimitMiddleware) Limiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.Store(),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Unable to identify client", false, nil, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// Store returns the limiter backend matching the server's Redis setup.
func (r *RateLimitMiddleware) Store() middleware.RateLimiterStore {
	cfg := r.server.Config.RateLimit

	if r.server.Redis != nil {
		limit := int64(math.Ceil(cfg.RequestsPerSecond * float64(cfg.Window)))
		return NewRedisRateLimiterStore(r.server.Redis, r.server.Logger, limit, time.Duration(cfg.Window)*time.Second)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: rateLimitStoreExpiry,
	})
}

func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed-window counter: every identifier may make
// limit requests per window. Redis failures let the request through.
type RedisRateLimiterStore struct {
	client *redis.Client
	logger *zerolog.Logger
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, logger *zerolog.Logger, limit int64, window time.Duration) *RedisRateLimiterStore {
	if window <= 0 {
		window = time.Second
	}
	if limit <= 0 {
		limit = 1
	}

	return &RedisRateLimiterStore{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rateLimitRedisTimeout)
	defer cancel()

	bucket := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, identifier, bucket)

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Str("identifier", identifier).Msg("rate limiter store unavailable")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}
