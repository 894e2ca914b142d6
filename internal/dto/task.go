package dto

import (
	"time"

	"taskmanager/internal/models"
)

// TaskTypeDTO represents a task type in API responses
type TaskTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CommentaryDTO represents a commentary in API responses
type CommentaryDTO struct {
	ID        uint64     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Worker    *WorkerDTO `json:"worker,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Deadline     *time.Time          `json:"deadline"`
	IsCompleted  bool                `json:"is_completed"`
	Priority     models.TaskPriority `json:"priority"`
	Image        string              `json:"image"`
	TaskTypeID   uint64              `json:"task_type_id"`
	CreatorID    *uint64             `json:"creator_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	TaskType     *TaskTypeDTO        `json:"task_type,omitempty"`
	Creator      *WorkerDTO          `json:"creator,omitempty"`
	Assignees    []WorkerDTO         `json:"assignees,omitempty"`
	Commentaries []CommentaryDTO     `json:"commentaries,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToTaskTypeDTO converts a TaskType model to TaskTypeDTO
func ToTaskTypeDTO(taskType models.TaskType) TaskTypeDTO {
	return TaskTypeDTO{
		ID:   taskType.ID,
		Name: taskType.Name,
	}
}

// ToCommentaryDTO converts a Commentary model to CommentaryDTO
func ToCommentaryDTO(commentary models.Commentary) CommentaryDTO {
	dto := CommentaryDTO{
		ID:        commentary.ID,
		Content:   commentary.Content,
		CreatedAt: commentary.CreatedAt,
	}

	if commentary.Worker.ID != 0 {
		worker := ToWorkerDTO(commentary.Worker)
		dto.Worker = &worker
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline,
		IsCompleted: task.IsCompleted,
		Priority:    task.Priority,
		Image:       task.Image,
		TaskTypeID:  task.TaskTypeID,
		CreatorID:   task.CreatorID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include task type if preloaded
	if task.TaskType.ID != 0 {
		taskType := ToTaskTypeDTO(task.TaskType)
		dto.TaskType = &taskType
	}

	// Include creator if preloaded
	if task.Creator != nil && task.Creator.ID != 0 {
		creator := ToWorkerDTO(*task.Creator)
		dto.Creator = &creator
	}

	// Include assignees if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignees = make([]WorkerDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignees[i] = ToWorkerDTO(assignment.Worker)
		}
	}

	// Include commentaries if preloaded
	if len(task.Commentaries) > 0 {
		dto.Commentaries = make([]CommentaryDTO, len(task.Commentaries))
		for i, commentary := range task.Commentaries {
			dto.Commentaries[i] = ToCommentaryDTO(commentary)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
