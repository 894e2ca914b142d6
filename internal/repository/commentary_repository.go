package repository

import (
	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// GormCommentaryRepository is a GORM implementation of CommentaryRepository
type GormCommentaryRepository struct {
	db *gorm.DB
}

// NewCommentaryRepository creates a new CommentaryRepository
func NewCommentaryRepository(db *gorm.DB) CommentaryRepository {
	return &GormCommentaryRepository{db: db}
}

// Create creates a new commentary
func (r *GormCommentaryRepository) Create(commentary *models.Commentary) error {
	return r.db.Create(commentary).Error
}

// ListByTask lists a task's commentaries, oldest first
func (r *GormCommentaryRepository) ListByTask(taskID uint64) ([]models.Commentary, error) {
	var commentaries []models.Commentary
	err := r.db.Preload("Worker").
		Where("task_id = ?", taskID).
		Order("commentaries.created_at ASC").
		Find(&commentaries).Error
	if err != nil {
		return nil, err
	}
	return commentaries, nil
}
