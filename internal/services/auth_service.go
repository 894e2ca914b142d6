package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/internal/constants"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	workerRepo repository.WorkerRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(workerRepo repository.WorkerRepository) *AuthService {
	return &AuthService{
		workerRepo: workerRepo,
	}
}

// SignupInput represents the required information to register a worker.
type SignupInput struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	PositionID *uint64
}

// Signup registers a new worker with a hashed password.
func (s *AuthService) Signup(input SignupInput) (*models.Worker, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.workerRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	worker := &models.Worker{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PositionID:   input.PositionID,
	}

	if err := s.workerRepo.Create(worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return worker, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated worker.
func (s *AuthService) Login(input LoginInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return worker, nil
}

// GetWorker retrieves a worker by ID.
func (s *AuthService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	return worker, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(workerID uint64, current, next string) error {
	worker, err := s.workerRepo.FindByID(workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to find worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}
	if len(next) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	worker.PasswordHash = string(hashedPassword)
	if err := s.workerRepo.Update(worker); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
