package models

import "time"

// Project roles ordered by privilege. Checks are "at least": a role
// satisfies a requirement when its rank is >= the required rank.
const (
	RoleViewer      = "viewer"
	RoleContributor = "contributor"
	RoleOwner       = "owner"
)

var roleRanks = map[string]int{
	RoleViewer:      1,
	RoleContributor: 2,
	RoleOwner:       3,
}

// RoleRank returns the ordinal rank of a project role, or 0 for an
// unknown role.
func RoleRank(role string) int { return roleRanks[role] }

// ValidRole reports whether role is one of the defined project roles.
func ValidRole(role string) bool { return roleRanks[role] != 0 }

// ProjectPermission grants a user a role on a project. At most one row
// exists per (user, project) pair. Revocation removes the row for
// real, no soft delete: a dead row would keep holding the unique
// index and block a later re-grant.
type ProjectPermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:50;default:viewer" json:"role"` // owner, contributor, viewer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectPermission) TableName() string { return "project_permissions" }
