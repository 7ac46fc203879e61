package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is free text attached to a project or a task.
// Nothing prevents both references from being set.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    string    `json:"userId" gorm:"size:36;not null;index"`
	ProjectID *string   `json:"projectId" gorm:"size:36;index"`
	TaskID    *string   `json:"taskId" gorm:"size:36;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Task    *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
