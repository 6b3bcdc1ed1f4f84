package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"github.com/taxrenew/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the header carrying the client's request key
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds accepted keys
const MaxIdempotencyKeyLength = 255

// Idempotency rejects a replayed mutating request that repeats an
// Idempotency-Key already seen on the same route. Requests without the header
// pass through. A store failure lets the request through unguarded, and a 5xx
// response forgets the key so the client can retry.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyConfig().TTL
	}

	return func(c *gin.Context) {
		if !cfg.Enabled || store == nil || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithError(c, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
			return
		}

		scoped := idempotencyScope(c, key)
		ctx := c.Request.Context()
		reqLog := logger.L(ctx, log)

		fresh, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			reqLog.Warn("Idempotency store unavailable, processing request without replay protection",
				zap.String("idempotency_key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !fresh {
			reqLog.Info("Rejected replayed request", zap.String("idempotency_key", key))
			abortWithError(c, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			// Detached from the request context, which may have hit its deadline
			if err := store.Forget(context.WithoutCancel(ctx), scoped); err != nil {
				reqLog.Warn("Failed to release idempotency key", zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}

func idempotencyScope(c *gin.Context, key string) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route + " " + key
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
