package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/services"
)

// LookupHandler serves the named category endpoints: positions and task types.
type LookupHandler struct {
	lookupService *services.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookupService *services.LookupService) *LookupHandler {
	return &LookupHandler{
		lookupService: lookupService,
	}
}

type createNamedRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListPositions lists all positions.
func (h *LookupHandler) ListPositions(c *gin.Context) {
	positions, err := h.lookupService.ListPositions()
	if err != nil {
		respondLookupError(c, err)
		return
	}

	result := make([]dto.PositionDTO, len(positions))
	for i, position := range positions {
		result[i] = dto.ToPositionDTO(position)
	}
	c.JSON(http.StatusOK, gin.H{"positions": result})
}

// CreatePosition creates a position.
func (h *LookupHandler) CreatePosition(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	position, err := h.lookupService.CreatePosition(req.Name)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPositionDTO(*position))
}

// DeletePosition deletes a position; refused while workers hold it.
func (h *LookupHandler) DeletePosition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.lookupService.DeletePosition(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position deleted"})
}

// ListTaskTypes lists all task types.
func (h *LookupHandler) ListTaskTypes(c *gin.Context) {
	taskTypes, err := h.lookupService.ListTaskTypes()
	if err != nil {
		respondLookupError(c, err)
		return
	}

	result := make([]dto.TaskTypeDTO, len(taskTypes))
	for i, taskType := range taskTypes {
		result[i] = dto.ToTaskTypeDTO(taskType)
	}
	c.JSON(http.StatusOK, gin.H{"task_types": result})
}

// CreateTaskType creates a task type.
func (h *LookupHandler) CreateTaskType(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	taskType, err := h.lookupService.CreateTaskType(req.Name)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskTypeDTO(*taskType))
}

// DeleteTaskType deletes a task type and every task of that type.
func (h *LookupHandler) DeleteTaskType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.lookupService.DeleteTaskType(id); err != nil {
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task type deleted"})
}

func respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrTaskTypeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPositionInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPositionNameTaken),
		errors.Is(err, services.ErrTaskTypeNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLookupNameEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
