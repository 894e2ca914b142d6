package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

var (
	ErrPositionNotFound  = errors.New("position not found")
	ErrPositionNameTaken = errors.New("position name already exists")
	ErrPositionInUse     = errors.New("position is still held by workers")
	ErrTaskTypeNameTaken = errors.New("task type name already exists")
	ErrLookupNameEmpty   = errors.New("name is required")
)

// LookupService manages the named categories: positions and task types.
type LookupService struct {
	positionRepo repository.PositionRepository
	taskTypeRepo repository.TaskTypeRepository
}

// NewLookupService creates a new LookupService
func NewLookupService(positionRepo repository.PositionRepository, taskTypeRepo repository.TaskTypeRepository) *LookupService {
	return &LookupService{
		positionRepo: positionRepo,
		taskTypeRepo: taskTypeRepo,
	}
}

// ListPositions lists all positions.
func (s *LookupService) ListPositions() ([]models.Position, error) {
	positions, err := s.positionRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// CreatePosition creates a uniquely named position.
func (s *LookupService) CreatePosition(name string) (*models.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLookupNameEmpty
	}

	if _, err := s.positionRepo.FindByName(name); err == nil {
		return nil, ErrPositionNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check position name: %w", err)
	}

	position := &models.Position{Name: name}
	if err := s.positionRepo.Create(position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// DeletePosition removes a position unless workers still hold it.
func (s *LookupService) DeletePosition(id uint64) error {
	if _, err := s.positionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return fmt.Errorf("failed to find position: %w", err)
	}

	if err := s.positionRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrPositionInUse) {
			return ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}

	return nil
}

// ListTaskTypes lists all task types.
func (s *LookupService) ListTaskTypes() ([]models.TaskType, error) {
	taskTypes, err := s.taskTypeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}
	return taskTypes, nil
}

// CreateTaskType creates a uniquely named task type.
func (s *LookupService) CreateTaskType(name string) (*models.TaskType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLookupNameEmpty
	}

	if _, err := s.taskTypeRepo.FindByName(name); err == nil {
		return nil, ErrTaskTypeNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check task type name: %w", err)
	}

	taskType := &models.TaskType{Name: name}
	if err := s.taskTypeRepo.Create(taskType); err != nil {
		return nil, fmt.Errorf("failed to create task type: %w", err)
	}

	return taskType, nil
}

// DeleteTaskType removes a task type together with every task of that type.
func (s *LookupService) DeleteTaskType(id uint64) error {
	if _, err := s.taskTypeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskTypeNotFound
		}
		return fmt.Errorf("failed to find task type: %w", err)
	}

	if err := s.taskTypeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task type: %w", err)
	}

	return nil
}
