package mfa

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ResolutionRecord is the audit model for a single status resolution.
type ResolutionRecord struct {
	bun.BaseModel `bun:"table:mfa_resolutions,alias:mres"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string        `bun:"username,notnull" json:"username,omitempty"`
	EventType     string        `bun:"event_type,notnull" json:"event_type,omitempty"`
	Status        AccountStatus `bun:"status" json:"status,omitempty"`
	Failure       string        `bun:"failure_kind" json:"failure_kind,omitempty"`
	Message       string        `bun:"message" json:"message,omitempty"`
	CacheHit      bool          `bun:"cache_hit" json:"cache_hit,omitempty"`
	LatencyMS     int64         `bun:"latency_ms" json:"latency_ms,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// NewResolutionRecord builds an audit record from an activity event.
func NewResolutionRecord(event ActivityEvent) *ResolutionRecord {
	record := &ResolutionRecord{
		ID:        uuid.New(),
		Username:  event.Username,
		EventType: string(event.EventType),
		Status:    event.Status,
		Failure:   string(event.Failure),
		Message:   event.Message,
		CacheHit:  event.CacheHit,
		LatencyMS: event.Latency.Milliseconds(),
	}
	if !event.OccurredAt.IsZero() {
		occurred := event.OccurredAt
		record.CreatedAt = &occurred
	}
	return record
}
