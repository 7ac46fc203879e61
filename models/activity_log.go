package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityAction names the mutation an activity log entry records
type ActivityAction string

const (
	ActionCreateTask ActivityAction = "CREATE_TASK"
	ActionUpdateTask ActivityAction = "UPDATE_TASK"
	ActionDeleteTask ActivityAction = "DELETE_TASK"
)

// ActivityLog is an append-only audit entry.
// The entity references are plain columns without foreign keys so that entries
// outlive the rows they describe; related records are attached by the repository.
type ActivityLog struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Action    ActivityAction `json:"action" gorm:"size:32;not null;index"`
	Message   *string        `json:"message" gorm:"type:text"`
	UserID    *string        `json:"userId" gorm:"size:36;index"`
	ProjectID *string        `json:"projectId" gorm:"size:36;index"`
	TaskID    *string        `json:"taskId" gorm:"size:36;index"`
	OldValue  datatypes.JSON `json:"oldValue,omitempty"`
	NewValue  datatypes.JSON `json:"newValue,omitempty"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`

	User    *User    `json:"user,omitempty" gorm:"-"`
	Project *Project `json:"project,omitempty" gorm:"-"`
	Task    *Task    `json:"task,omitempty" gorm:"-"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
