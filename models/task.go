package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus is the closed set of task states
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s belongs to the closed status set
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority is the closed set of task priorities
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p belongs to the closed priority set
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work inside a project
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Title       string       `json:"title" gorm:"not null"`
	Description *string      `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"size:20;not null;default:'TODO';index"`
	Priority    TaskPriority `json:"priority" gorm:"size:10;not null;default:'MEDIUM';index"`
	DueDate     *time.Time   `json:"dueDate"`
	ProjectID   string       `json:"projectId" gorm:"size:36;not null;index"`
	AssigneeID  *string      `json:"assigneeId" gorm:"size:36;index"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time    `json:"updatedAt" gorm:"index"`

	// Relations
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignee *User     `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
