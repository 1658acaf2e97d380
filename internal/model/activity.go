package model

import "time"

// ActivityLog is one entry in an organization's activity feed.
type ActivityLog struct {
	ID             string         `db:"id" json:"id"`
	OrganizationID string         `db:"organization_id" json:"organization_id"`
	UserID         string         `db:"user_id" json:"user_id"`
	Action         string         `db:"action" json:"action"`
	ResourceType   string         `db:"resource_type" json:"resource_type"`
	ResourceID     *string        `db:"resource_id" json:"resource_id,omitempty"`
	Details        map[string]any `db:"details" json:"details,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
