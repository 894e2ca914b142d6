package models

import (
	"time"
)

type Worker struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Avatar       string    `gorm:"type:varchar(255)" json:"avatar"`
	PositionID   *uint64   `gorm:"index" json:"position_id"`
	LinkedinURL  string    `gorm:"type:varchar(255)" json:"linkedin_url"`
	GithubURL    string    `gorm:"type:varchar(255)" json:"github_url"`
	InstagramURL string    `gorm:"type:varchar(255)" json:"instagram_url"`
	TelegramURL  string    `gorm:"type:varchar(255)" json:"telegram_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Position     *Position        `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	CreatedTasks []Task           `gorm:"foreignKey:CreatorID" json:"-"`
	Assignments  []TaskAssignment `gorm:"foreignKey:WorkerID" json:"-"`
	Commentaries []Commentary     `gorm:"foreignKey:WorkerID" json:"-"`
}
