package model

import "time"

// Role is a profile's permission level inside its organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may create or modify tenant data.
func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// CanManageTeam reports whether the role may change other members' roles.
func (r Role) CanManageTeam() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Organization is the tenant boundary.
type Organization struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Profile links an auth user to an organization.
type Profile struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	FullName       *string   `db:"full_name" json:"full_name,omitempty"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	OrganizationID *string   `db:"organization_id" json:"organization_id,omitempty"`
	Role           Role      `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
