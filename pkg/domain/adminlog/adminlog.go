// Package adminlog records administrative actions for auditing.
package adminlog

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of admin operation performed.
type Action string

const (
	ActionViewDashboard       Action = "VIEW_DASHBOARD"
	ActionViewRegistrations   Action = "VIEW_REGISTRATIONS"
	ActionViewDonations       Action = "VIEW_DONATIONS"
	ActionExportRegistrations Action = "EXPORT_REGISTRATIONS"
	ActionExportDonations     Action = "EXPORT_DONATIONS"
)

// Entry is an append-only record of a single admin action.
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	AdminID   uuid.UUID      `json:"admin_id"`
	Action    Action         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// New creates a log entry stamped with the current time.
func New(adminID uuid.UUID, action Action, details map[string]any) *Entry {
	return &Entry{
		ID:        uuid.New(),
		AdminID:   adminID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
}
