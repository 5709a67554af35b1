package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a discovery run record
type Run struct {
	ID                uuid.UUID  `json:"id"`
	InputPath         string     `json:"input_path"`
	TargetYears       []string   `json:"target_years"`
	OrganizationCount int        `json:"organization_count"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
