package repository

import (
	"errors"

	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// ErrPositionInUse is returned when deleting a position that workers still hold.
var ErrPositionInUse = errors.New("position repository: position is still referenced by workers")

// GormPositionRepository is a GORM implementation of PositionRepository
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &GormPositionRepository{db: db}
}

// Create creates a new position
func (r *GormPositionRepository) Create(position *models.Position) error {
	return r.db.Create(position).Error
}

// FindByID finds a position by ID
func (r *GormPositionRepository) FindByID(id uint64) (*models.Position, error) {
	var position models.Position
	if err := r.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// FindByName finds a position by its unique name
func (r *GormPositionRepository) FindByName(name string) (*models.Position, error) {
	var position models.Position
	if err := r.db.Where("name = ?", name).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// List lists all positions
func (r *GormPositionRepository) List() ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.Order("positions.name ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Delete refuses to remove a position that workers still hold
func (r *GormPositionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var workers int64
		if err := tx.Model(&models.Worker{}).
			Where("position_id = ?", id).
			Count(&workers).Error; err != nil {
			return err
		}
		if workers > 0 {
			return ErrPositionInUse
		}

		return tx.Delete(&models.Position{}, id).Error
	})
}
