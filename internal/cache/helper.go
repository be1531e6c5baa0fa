package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartCacheSpan starts a span for a cache operation. It returns nil when
// there is no Sentry hub in ctx.
func StartCacheSpan(ctx context.Context, operation, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache."+operation)
	span.Description = "cache." + operation
	span.Op = "cache." + operation
	span.SetData("cache.key", key)
	return span
}

// FinishSpan records whether the lookup hit and finishes the span. Nil spans
// are ignored.
func FinishSpan(span *sentry.Span, hit bool) {
	if span == nil {
		return
	}
	span.SetData("cache.hit", hit)
	span.Status = sentry.SpanStatusOK
	span.Finish()
}
