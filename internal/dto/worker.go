package dto

import (
	"taskmanager/internal/models"
)

// PositionDTO represents a position in API responses
type PositionDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// WorkerDTO represents a worker in API responses
type WorkerDTO struct {
	ID           uint64       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Avatar       string       `json:"avatar,omitempty"`
	Position     *PositionDTO `json:"position,omitempty"`
	LinkedinURL  string       `json:"linkedin_url,omitempty"`
	GithubURL    string       `json:"github_url,omitempty"`
	InstagramURL string       `json:"instagram_url,omitempty"`
	TelegramURL  string       `json:"telegram_url,omitempty"`
}

// TeamResponse lists all workers with the head count
type TeamResponse struct {
	Team     []WorkerDTO `json:"team"`
	Quantity int64       `json:"quantity"`
}

// ToPositionDTO converts a Position model to PositionDTO
func ToPositionDTO(position models.Position) PositionDTO {
	return PositionDTO{
		ID:   position.ID,
		Name: position.Name,
	}
}

// ToWorkerDTO converts a Worker model to WorkerDTO
func ToWorkerDTO(worker models.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:           worker.ID,
		Username:     worker.Username,
		Email:        worker.Email,
		FirstName:    worker.FirstName,
		LastName:     worker.LastName,
		Avatar:       worker.Avatar,
		LinkedinURL:  worker.LinkedinURL,
		GithubURL:    worker.GithubURL,
		InstagramURL: worker.InstagramURL,
		TelegramURL:  worker.TelegramURL,
	}

	if worker.Position != nil {
		position := ToPositionDTO(*worker.Position)
		dto.Position = &position
	}

	return dto
}
