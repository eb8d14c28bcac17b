package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ginContextKey = "gin_context"
	// TraceIDKey is the context key carrying the request trace identifier
	TraceIDKey = "trace_id"
)

type contextKey string

// FromGinContext extracts the context.Context from *gin.Context.
func FromGinContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, contextKey(ginContextKey), c)
}

// GetGinContext extracts *gin.Context from context.Context if it exists.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	if c, ok := ctx.Value(contextKey(ginContextKey)).(*gin.Context); ok {
		return c, ok
	}
	return nil, false
}

// GetTraceID gets the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if c, ok := GetGinContext(ctx); ok {
		if val, exists := c.Get(TraceIDKey); exists {
			if id, ok := val.(string); ok {
				return id
			}
		}
	}
	if id, ok := ctx.Value(contextKey(TraceIDKey)).(string); ok {
		return id
	}
	return ""
}

// SetTraceID sets a trace ID on the context.
func SetTraceID(ctx context.Context, id string) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(TraceIDKey, id)
	}
	return context.WithValue(ctx, contextKey(TraceIDKey), id)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if id := GetTraceID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return SetTraceID(ctx, id), id
}
