package models

import (
	"time"
)

// Commentary is a free-text note a worker leaves on a task.
type Commentary struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	WorkerID  uint64    `gorm:"not null;index" json:"worker_id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Worker Worker `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE" json:"worker,omitempty"`
	Task   Task   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}
