package domain

import "time"

// FaultEntry is a fault-dictionary record incidents can reference.
type FaultEntry struct {
	ID          string
	Code        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
