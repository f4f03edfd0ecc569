package mfa

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventResolveHit          ActivityEventType = "mfa.resolve.hit"
	ActivityEventResolveMiss         ActivityEventType = "mfa.resolve.miss"
	ActivityEventProviderUnavailable ActivityEventType = "mfa.provider.unavailable"
	ActivityEventPingSuccess         ActivityEventType = "mfa.ping.success"
	ActivityEventPingFailure         ActivityEventType = "mfa.ping.failure"
)

// ActivityEvent captures audit-friendly information about a resolution.
type ActivityEvent struct {
	EventType  ActivityEventType
	Username   string
	Status     AccountStatus
	Failure    FailureKind
	Message    string
	CacheHit   bool
	Latency    time.Duration
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
// Sinks run best-effort: errors are logged and never block resolution.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
