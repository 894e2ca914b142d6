package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskmanager/internal/constants"
	"taskmanager/internal/mailer"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTypeNotFound     = errors.New("task type not found")
	ErrNotTaskCreator       = errors.New("only the task creator can perform this action")
	ErrTaskPermissionDenied = errors.New("only the task creator or an assignee can perform this action")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidPriority      = errors.New("priority must be one of: Urgent!!!, High, Medium, Low")
	ErrInvalidDeadline      = errors.New("deadline must use the format 2006-01-02T15:04")
	ErrInvalidOrdering      = errors.New("unknown ordering field")
	ErrInvalidFilter        = errors.New("invalid filter value")
	ErrInvalidAssignee      = errors.New("one or more assignees do not exist")
	ErrContentRequired      = errors.New("content is required")
	ErrMailDelivery         = errors.New("failed to deliver assignee notification")
)

// TaskService handles task querying, per-action authorization and mutations.
type TaskService struct {
	taskRepo       repository.TaskRepository
	taskTypeRepo   repository.TaskTypeRepository
	commentaryRepo repository.CommentaryRepository
	mail           mailer.Mailer
	baseURL        string
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	taskTypeRepo repository.TaskTypeRepository,
	commentaryRepo repository.CommentaryRepository,
	mail mailer.Mailer,
	baseURL string,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		taskTypeRepo:   taskTypeRepo,
		commentaryRepo: commentaryRepo,
		mail:           mail,
		baseURL:        baseURL,
	}
}

// TaskQueryInput holds the caller-controlled filter and ordering parameters.
// Every value is untrusted request input and is validated against the known
// fields before it reaches the store.
type TaskQueryInput struct {
	NameContains string
	TaskTypeID   *uint64
	Priority     string
	Ordering     string
	Page         int
}

// buildFilter validates query input and translates it into a repository filter.
func buildFilter(input TaskQueryInput) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		NameContains: input.NameContains,
		TaskTypeID:   input.TaskTypeID,
		Page:         input.Page,
		PageSize:     constants.DefaultPageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !models.ValidPriority(priority) {
			return repository.TaskFilter{}, ErrInvalidFilter
		}
		filter.Priority = &priority
	}

	if input.Ordering != "" {
		field := input.Ordering
		if strings.HasPrefix(field, "-") {
			filter.OrderDesc = true
			field = strings.TrimPrefix(field, "-")
		}
		if !repository.ValidOrderField(field) {
			return repository.TaskFilter{}, ErrInvalidOrdering
		}
		filter.OrderField = field
	}

	return filter, nil
}

// ListOpenTasks returns uncompleted tasks matching the query input.
func (s *TaskService) ListOpenTasks(input TaskQueryInput) ([]models.Task, int64, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, 0, err
	}

	open := false
	filter.Completed = &open

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// ListMyTasks returns the tasks a worker created or is assigned to, with the
// same filter and ordering contract as the open list.
func (s *TaskService) ListMyTasks(workerID uint64, input TaskQueryInput) ([]models.Task, int64, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, 0, err
	}

	filter.MemberID = &workerID

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// DashboardStats aggregates a worker's tasks. "Month" counters cover tasks
// created in the calendar month of the reference time.
type DashboardStats struct {
	TasksCount        int64 `json:"tasks_count"`
	TasksCountMonth   int64 `json:"tasks_count_month"`
	TasksDone         int64 `json:"tasks_done"`
	TasksDoneMonth    int64 `json:"tasks_done_month"`
	TasksNotDone      int64 `json:"tasks_not_done"`
	TasksNotDoneMonth int64 `json:"tasks_not_done_month"`
	TasksCreated      int64 `json:"tasks_created"`
	TasksCreatedMonth int64 `json:"tasks_created_month"`
}

// Dashboard computes aggregate counters over the worker's tasks. The
// reference time is injected so month-boundary behavior is deterministic.
func (s *TaskService) Dashboard(workerID uint64, now time.Time) (*DashboardStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	done, notDone := true, false

	base := repository.TaskFilter{MemberID: &workerID}
	inMonth := func(f repository.TaskFilter) repository.TaskFilter {
		f.CreatedFrom = &monthStart
		f.CreatedTo = &monthEnd
		return f
	}

	doneFilter := base
	doneFilter.Completed = &done
	notDoneFilter := base
	notDoneFilter.Completed = &notDone
	createdFilter := base
	createdFilter.CreatorID = &workerID

	stats := &DashboardStats{}
	counters := []struct {
		dst    *int64
		filter repository.TaskFilter
	}{
		{&stats.TasksCount, base},
		{&stats.TasksCountMonth, inMonth(base)},
		{&stats.TasksDone, doneFilter},
		{&stats.TasksDoneMonth, inMonth(doneFilter)},
		{&stats.TasksNotDone, notDoneFilter},
		{&stats.TasksNotDoneMonth, inMonth(notDoneFilter)},
		{&stats.TasksCreated, createdFilter},
		{&stats.TasksCreatedMonth, inMonth(createdFilter)},
	}

	for _, counter := range counters {
		count, err := s.taskRepo.Count(counter.filter)
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard: %w", err)
		}
		*counter.dst = count
	}

	return stats, nil
}

// GetTask returns a task with its relations and commentaries.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID,
		"Creator", "TaskType",
		"Assignments", "Assignments.Worker", "Assignments.Worker.Position",
		"Commentaries", "Commentaries.Worker",
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	Priority    string
	TaskTypeID  uint64
	Deadline    string
	Image       string
	AssigneeIDs []uint64
	CreatorID   uint64
}

// CreateTask validates input, persists the task with the acting worker as
// creator, and notifies every assignee by mail. A delivery failure fails the
// whole operation.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	priority := models.TaskPriority(input.Priority)
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	if _, err := s.taskTypeRepo.FindByID(input.TaskTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskTypeNotFound
		}
		return nil, fmt.Errorf("failed to verify task type: %w", err)
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := s.verifyAssignees(assigneeIDs); err != nil {
		return nil, err
	}

	image := input.Image
	if image == "" {
		image = constants.DefaultTaskImage
	}

	creatorID := input.CreatorID
	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Priority:    priority,
		TaskTypeID:  input.TaskTypeID,
		Deadline:    deadline,
		Image:       image,
		CreatorID:   &creatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.taskRepo.AssignWorkers(task.ID, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to assign workers: %w", err)
	}

	created, err := s.taskRepo.FindByID(task.ID,
		"Creator", "TaskType", "Assignments", "Assignments.Worker")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	if err := s.notifyAssignees(created); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; the creator is never touched.
type UpdateTaskInput struct {
	Name          *string
	Description   *string
	Priority      *string
	TaskTypeID    *uint64
	Deadline      *string
	ClearDeadline bool
	Image         *string
	AssigneeIDs   []uint64
}

// UpdateTask applies field updates to a task. Only the creator may update.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.IsCreator(actorID) {
		return nil, ErrNotTaskCreator
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		priority := models.TaskPriority(*input.Priority)
		if !models.ValidPriority(priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = priority
	}
	if input.TaskTypeID != nil {
		if _, err := s.taskTypeRepo.FindByID(*input.TaskTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskTypeNotFound
			}
			return nil, fmt.Errorf("failed to verify task type: %w", err)
		}
		task.TaskTypeID = *input.TaskTypeID
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		deadline, err := parseDeadline(*input.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = deadline
	}
	if input.Image != nil {
		task.Image = *input.Image
	}

	// Nothing is persisted until every part of the request is valid.
	if input.AssigneeIDs != nil {
		assigneeIDs := uniqueUint64(input.AssigneeIDs)
		if err := s.verifyAssignees(assigneeIDs); err != nil {
			return nil, err
		}
		if err := s.taskRepo.UpdateWithAssignees(task, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	} else if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID,
		"Creator", "TaskType", "Assignments", "Assignments.Worker")
}

// CompleteTask marks a task done. Permitted to the creator or any assignee.
// Completing an already completed task succeeds and changes nothing.
func (s *TaskService) CompleteTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.IsCreator(actorID) && !task.IsAssignee(actorID) {
		return nil, ErrTaskPermissionDenied
	}

	// Already completed: succeed without touching the row.
	if !task.IsCompleted {
		task.IsCompleted = true
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to complete task: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID,
		"Creator", "TaskType", "Assignments", "Assignments.Worker")
}

// DeleteTask removes a task. Only the creator may delete; commentaries and
// assignments go with it.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !task.IsCreator(actorID) {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AddCommentary attaches a commentary to a task. Permitted to the creator or
// any assignee; content must not be empty.
func (s *TaskService) AddCommentary(taskID, actorID uint64, content string) (*models.Commentary, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	task, err := s.taskRepo.FindByID(taskID, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.IsCreator(actorID) && !task.IsAssignee(actorID) {
		return nil, ErrTaskPermissionDenied
	}

	commentary := &models.Commentary{
		WorkerID: actorID,
		TaskID:   task.ID,
		Content:  content,
	}

	if err := s.commentaryRepo.Create(commentary); err != nil {
		return nil, fmt.Errorf("failed to create commentary: %w", err)
	}

	return commentary, nil
}

// notifyAssignees sends one notification per assignee. The first failure
// aborts and surfaces to the caller.
func (s *TaskService) notifyAssignees(task *models.Task) error {
	if len(task.Assignments) == 0 {
		return nil
	}

	creatorName := "unknown"
	if task.Creator != nil {
		creatorName = task.Creator.Username
	}

	subject := mailer.TaskCreatedSubject(task, creatorName)
	body := mailer.TaskCreatedBody(task, s.baseURL)

	for _, assignment := range task.Assignments {
		if err := s.mail.Send(assignment.Worker.Email, subject, body); err != nil {
			return fmt.Errorf("%w: %v", ErrMailDelivery, err)
		}
	}

	return nil
}

// verifyAssignees ensures every referenced worker exists.
func (s *TaskService) verifyAssignees(workerIDs []uint64) error {
	if len(workerIDs) == 0 {
		return nil
	}

	count, err := s.taskRepo.CountWorkersByIDs(workerIDs)
	if err != nil {
		return fmt.Errorf("failed to verify assignees: %w", err)
	}
	if int(count) != len(workerIDs) {
		return ErrInvalidAssignee
	}

	return nil
}

// parseDeadline parses an optional deadline string.
func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	deadline, err := time.Parse(constants.DeadlineLayout, value)
	if err != nil {
		return nil, ErrInvalidDeadline
	}

	return &deadline, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
