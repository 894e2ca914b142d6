package models

import (
	"time"
)

type TaskPriority string

const (
	PriorityUrgent TaskPriority = "Urgent!!!"
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// ValidPriority reports whether p is one of the four known priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Deadline    *time.Time   `json:"deadline"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	Priority    TaskPriority `gorm:"type:varchar(63);not null" json:"priority"`
	Image       string       `gorm:"type:varchar(255)" json:"image"`
	TaskTypeID  uint64       `gorm:"not null;index" json:"task_type_id"`
	CreatorID   *uint64      `gorm:"index" json:"creator_id"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	TaskType     TaskType         `gorm:"foreignKey:TaskTypeID;constraint:OnDelete:CASCADE" json:"task_type,omitempty"`
	Creator      *Worker          `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"creator,omitempty"`
	Assignments  []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Commentaries []Commentary     `gorm:"foreignKey:TaskID" json:"commentaries,omitempty"`
}

// IsAssignee reports whether the worker appears in the task's loaded
// assignments. Assignments must be preloaded by the caller.
func (t *Task) IsAssignee(workerID uint64) bool {
	for _, a := range t.Assignments {
		if a.WorkerID == workerID {
			return true
		}
	}
	return false
}

// IsCreator reports whether the worker is the task's creator.
func (t *Task) IsCreator(workerID uint64) bool {
	return t.CreatorID != nil && *t.CreatorID == workerID
}
