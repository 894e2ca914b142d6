package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/services"
)

// WorkerHandler coordinates team and profile HTTP handlers.
type WorkerHandler struct {
	workerService *services.WorkerService
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(workerService *services.WorkerService) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
	}
}

// ListTeam returns every worker with their position.
func (h *WorkerHandler) ListTeam(c *gin.Context) {
	workers, quantity, err := h.workerService.ListTeam()
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	team := make([]dto.WorkerDTO, len(workers))
	for i, worker := range workers {
		team[i] = dto.ToWorkerDTO(worker)
	}

	c.JSON(http.StatusOK, dto.TeamResponse{
		Team:     team,
		Quantity: quantity,
	})
}

// GetWorker returns a worker's profile.
func (h *WorkerHandler) GetWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorker(workerID)
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// UpdateProfile updates a worker's own profile.
func (h *WorkerHandler) UpdateProfile(c *gin.Context) {
	actorID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	workerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateProfileRequest struct {
		Username     *string `json:"username"`
		Email        *string `json:"email"`
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		Avatar       *string `json:"avatar"`
		PositionID   *uint64 `json:"position_id"`
		LinkedinURL  *string `json:"linkedin_url"`
		GithubURL    *string `json:"github_url"`
		InstagramURL *string `json:"instagram_url"`
		TelegramURL  *string `json:"telegram_url"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.workerService.UpdateProfile(workerID, actorID, services.UpdateProfileInput{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Avatar:       req.Avatar,
		PositionID:   req.PositionID,
		LinkedinURL:  req.LinkedinURL,
		GithubURL:    req.GithubURL,
		InstagramURL: req.InstagramURL,
		TelegramURL:  req.TelegramURL,
	})
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

func respondWorkerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkerNotFound),
		errors.Is(err, services.ErrPositionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProfileOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
