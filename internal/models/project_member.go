package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MemberRoleProjectAdmin = "PROJECT_ADMIN"
	MemberRoleMember       = "MEMBER"
)

// ProjectMember joins a User to a Project with a role.
// A user holds at most one membership per project.
type ProjectMember struct {
	gorm.Model

	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_user_project"`
	Role      string    `gorm:"not null;default:MEMBER"`
	JoinedAt  time.Time `gorm:"not null;autoCreateTime"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
