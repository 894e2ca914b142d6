package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

var ErrNotProfileOwner = errors.New("workers may only edit their own profile")

// WorkerService handles team listing and profile management.
type WorkerService struct {
	workerRepo   repository.WorkerRepository
	positionRepo repository.PositionRepository
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo repository.WorkerRepository, positionRepo repository.PositionRepository) *WorkerService {
	return &WorkerService{
		workerRepo:   workerRepo,
		positionRepo: positionRepo,
	}
}

// ListTeam returns every worker with their position, plus the head count.
func (s *WorkerService) ListTeam() ([]models.Worker, int64, error) {
	workers, total, err := s.workerRepo.List()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, total, nil
}

// GetWorker returns a single worker with their position.
func (s *WorkerService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}
	return worker, nil
}

// UpdateProfileInput holds the editable profile fields. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Username     *string
	Email        *string
	FirstName    *string
	LastName     *string
	Avatar       *string
	PositionID   *uint64
	LinkedinURL  *string
	GithubURL    *string
	InstagramURL *string
	TelegramURL  *string
}

// UpdateProfile applies profile changes. Only the owning worker may edit.
func (s *WorkerService) UpdateProfile(workerID, actorID uint64, input UpdateProfileInput) (*models.Worker, error) {
	if workerID != actorID {
		return nil, ErrNotProfileOwner
	}

	worker, err := s.workerRepo.FindByID(workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if input.Username != nil && *input.Username != worker.Username {
		if _, err := s.workerRepo.FindByUsername(*input.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		worker.Username = *input.Username
	}
	if input.Email != nil {
		worker.Email = *input.Email
	}
	if input.FirstName != nil {
		worker.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		worker.LastName = *input.LastName
	}
	if input.Avatar != nil {
		worker.Avatar = *input.Avatar
	}
	if input.PositionID != nil {
		if _, err := s.positionRepo.FindByID(*input.PositionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPositionNotFound
			}
			return nil, fmt.Errorf("failed to verify position: %w", err)
		}
		worker.PositionID = input.PositionID
	}
	if input.LinkedinURL != nil {
		worker.LinkedinURL = *input.LinkedinURL
	}
	if input.GithubURL != nil {
		worker.GithubURL = *input.GithubURL
	}
	if input.InstagramURL != nil {
		worker.InstagramURL = *input.InstagramURL
	}
	if input.TelegramURL != nil {
		worker.TelegramURL = *input.TelegramURL
	}

	if err := s.workerRepo.Update(worker); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	return s.workerRepo.FindByID(worker.ID, "Position")
}
