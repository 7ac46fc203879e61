package models

import (
	"time"

	"gorm.io/gorm"
)

// Project groups tasks and comments under one owner
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description" gorm:"type:text"`
	OwnerID     string    `json:"ownerId" gorm:"size:36;not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"index"`

	// Relations
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Tasks    []Task    `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
