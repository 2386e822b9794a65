package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

type Task struct {
	gorm.Model

	ProjectID    uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Status       string          `gorm:"not null;default:TODO;index"`
	Priority     string          `gorm:"not null;default:MEDIUM"`
	DueDate      *datatypes.Date `gorm:"index"`
	AssignedToID *uint           `gorm:"index"`
	CreatedByID  uint            `gorm:"not null;index"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	CreatedBy  User    `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
