package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/constants"
	"taskmanager/internal/dto"
	apierrors "taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/services"
	"taskmanager/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// queryInput extracts the filter/ordering parameters from the request.
func queryInput(c *gin.Context) (services.TaskQueryInput, error) {
	params := utils.GetPaginationParams(c)

	input := services.TaskQueryInput{
		NameContains: c.Query("name_task"),
		Priority:     c.Query("priority"),
		Ordering:     c.Query("ordering"),
		Page:         params.Page,
	}

	if raw := c.Query("task_type"); raw != "" {
		taskTypeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return services.TaskQueryInput{}, services.ErrInvalidFilter
		}
		input.TaskTypeID = &taskTypeID
	}

	return input, nil
}

// ListTasks returns the open (uncompleted) tasks with optional filters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input, err := queryInput(c)
	if err != nil {
		apierrors.InvalidQuery(c, err.Error())
		return
	}

	tasks, total, err := h.taskService.ListOpenTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks),
		Page:       input.Page,
		PageSize:   constants.DefaultPageSize,
		TotalCount: total,
	})
}

// ListMyTasks returns the tasks the worker created or is assigned to,
// together with the dashboard counters.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, err := queryInput(c)
	if err != nil {
		apierrors.InvalidQuery(c, err.Error())
		return
	}

	tasks, total, err := h.taskService.ListMyTasks(workerID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	stats, err := h.taskService.Dashboard(workerID, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":       dto.ToTaskDTOs(tasks),
		"total_count": total,
		"page":        input.Page,
		"dashboard":   stats,
	})
}

// GetTask returns a task with its relations and commentaries.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task with the acting worker as creator and notifies
// the assignees.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Priority    string   `json:"priority" binding:"required"`
		TaskTypeID  uint64   `json:"task_type_id" binding:"required"`
		Deadline    string   `json:"deadline"`
		Image       string   `json:"image"`
		AssigneeIDs []uint64 `json:"assignee_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		TaskTypeID:  req.TaskTypeID,
		Deadline:    req.Deadline,
		Image:       req.Image,
		AssigneeIDs: req.AssigneeIDs,
		CreatorID:   workerID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates a task's fields. Creator only; the creator itself is
// immutable.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		Priority      *string  `json:"priority"`
		TaskTypeID    *uint64  `json:"task_type_id"`
		Deadline      *string  `json:"deadline"`
		ClearDeadline bool     `json:"clear_deadline"`
		Image         *string  `json:"image"`
		AssigneeIDs   []uint64 `json:"assignee_ids"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, workerID, services.UpdateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		Priority:      req.Priority,
		TaskTypeID:    req.TaskTypeID,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
		Image:         req.Image,
		AssigneeIDs:   req.AssigneeIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CompleteTask marks a task done. Creator or assignee; idempotent.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(taskID, workerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task. Creator only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, workerID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// CreateCommentary adds a commentary to a task. Creator or assignee.
func (h *TaskHandler) CreateCommentary(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateCommentaryRequest struct {
		Content string `json:"content"`
	}

	var req CreateCommentaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	commentary, err := h.taskService.AddCommentary(taskID, workerID, req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentaryDTO(*commentary))
}

// parseIDParam parses the :id path parameter, responding on failure.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskTypeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskCreator),
		errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrdering),
		errors.Is(err, services.ErrInvalidFilter):
		apierrors.InvalidQuery(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDeadline),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMailDelivery):
		apierrors.MailDelivery(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
