package models

import "gorm.io/gorm"

const (
	RoleAdmin      = "ADMIN"
	RoleTeamMember = "TEAM_MEMBER"
)

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:TEAM_MEMBER"`
	IsActive     bool   `gorm:"not null;default:true"`

	// Relationships
	CreatedProjects    []Project       `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTasks      []Task          `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
