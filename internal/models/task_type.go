package models

// TaskType is a named task category. Deleting a task type deletes its tasks.
type TaskType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`

	// Relations
	Tasks []Task `gorm:"foreignKey:TaskTypeID" json:"tasks,omitempty"`
}
