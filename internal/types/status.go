package types

// Status is a type for the lifecycle status of a persisted record.
// It tracks soft archival and is distinct from an invoice's workflow status.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)
