package repository

import (
	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Create creates a new worker
func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	return r.db.Create(worker).Error
}

// FindByID finds a worker by ID with optional preloading
func (r *GormWorkerRepository) FindByID(id uint64, preload ...string) (*models.Worker, error) {
	var worker models.Worker
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&worker, id).Error; err != nil {
		return nil, err
	}

	return &worker, nil
}

// FindByUsername finds a worker by username
func (r *GormWorkerRepository) FindByUsername(username string) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("username = ?", username).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// List lists all workers with their positions
func (r *GormWorkerRepository) List() ([]models.Worker, int64, error) {
	var workers []models.Worker
	if err := r.db.Preload("Position").Order("workers.username ASC").Find(&workers).Error; err != nil {
		return nil, 0, err
	}
	return workers, int64(len(workers)), nil
}

// Update updates a worker
func (r *GormWorkerRepository) Update(worker *models.Worker) error {
	return r.db.Save(worker).Error
}

// Delete removes a worker. Their commentaries and assignments go with them;
// tasks they created survive with a null creator.
func (r *GormWorkerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("creator_id = ?", id).
			Update("creator_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", id).Delete(&models.Commentary{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Worker{}, id).Error
	})
}
