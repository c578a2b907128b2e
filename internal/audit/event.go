// Package audit implements the Audit Logger (G): a stateless emitter of
// tagged security events, serialized as JSON lines with secret redaction
// and size-based rotation, in the same idiom as the teacher's logger
// package.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Variant discriminates the tagged AuditEvent union (§3).
type Variant string

const (
	OperationRequested Variant = "operation_requested"
	PolicyEvaluated     Variant = "policy_evaluated"
	OperationCompleted  Variant = "operation_completed"
	OperationFailed     Variant = "operation_failed"
	SecurityViolation   Variant = "security_violation"
)

// Severity is the log level an event maps to for downstream filtering.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// severityFor implements §4.7's mapping: requested/evaluated/completed are
// informational, failures are warnings, violations are errors.
func severityFor(v Variant) Severity {
	switch v {
	case OperationFailed:
		return SeverityWarn
	case SecurityViolation:
		return SeverityError
	default:
		return SeverityInfo
	}
}

// Event is one tagged audit record. OpType, Path, Allowed, Reason, Error and
// Compliance carry the variant-specific fields; Metadata carries free-form
// additional context. Reason, Error and Metadata values are redacted before
// serialization.
type Event struct {
	EventID       string                 `json:"event_id"`
	CorrelationID string                 `json:"correlation_id"`
	Timestamp     time.Time              `json:"timestamp"`
	Variant       Variant                `json:"event_type"`
	Severity      Severity               `json:"severity"`
	OpType        string                 `json:"op_type,omitempty"`
	Path          string                 `json:"path,omitempty"`
	Allowed       bool                   `json:"allowed,omitempty"`
	Reason        string                 `json:"reason,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Compliance    []string               `json:"compliance,omitempty"`
	Metadata      map[string]string      `json:"metadata,omitempty"`
}

// NewCorrelationID mints a fresh per-request correlation id that every event
// for a single tool invocation shares.
func NewCorrelationID() string {
	return uuid.NewString()
}

// newEvent stamps a fresh event id, timestamp, and severity for variant v.
func newEvent(correlationID string, v Variant) Event {
	return Event{
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Timestamp:     time.Now().UTC(),
		Variant:       v,
		Severity:      severityFor(v),
	}
}
