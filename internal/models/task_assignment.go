package models

import (
	"time"
)

// TaskAssignment links a worker to a task they are responsible for.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	WorkerID  uint64    `gorm:"primarykey" json:"worker_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	Worker Worker `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE" json:"worker,omitempty"`
}
