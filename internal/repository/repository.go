package repository

import (
	"time"

	"taskmanager/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, ordering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Count counts the tasks matching a filter
	Count(filter TaskFilter) (int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task along with its assignments and commentaries
	Delete(id uint64) error

	// AssignWorkers assigns multiple workers to a task
	AssignWorkers(taskID uint64, workerIDs []uint64) error

	// UpdateWithAssignees saves the task and replaces its assignee set in
	// one transaction
	UpdateWithAssignees(task *models.Task, workerIDs []uint64) error

	// CountWorkersByIDs counts how many of the given worker IDs exist
	CountWorkersByIDs(workerIDs []uint64) (int64, error)
}

// TaskFilter holds filtering, ordering and pagination options for tasks.
// OrderField must be one of the allow-listed request field names; the
// repository maps it to a column and rejects anything else.
type TaskFilter struct {
	Completed    *bool
	NameContains string
	TaskTypeID   *uint64
	Priority     *models.TaskPriority
	MemberID     *uint64 // tasks the worker created or is assigned to
	CreatorID    *uint64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	OrderField   string
	OrderDesc    bool
	Page         int
	PageSize     int
}

// WorkerRepository defines the interface for worker data access
type WorkerRepository interface {
	// Create creates a new worker
	Create(worker *models.Worker) error

	// FindByID finds a worker by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Worker, error)

	// FindByUsername finds a worker by username
	FindByUsername(username string) (*models.Worker, error)

	// List lists all workers with their positions
	List() ([]models.Worker, int64, error)

	// Update updates a worker
	Update(worker *models.Worker) error

	// Delete removes a worker; their tasks survive with creator set to null
	Delete(id uint64) error
}

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	Create(position *models.Position) error
	FindByID(id uint64) (*models.Position, error)
	FindByName(name string) (*models.Position, error)
	List() ([]models.Position, error)

	// Delete refuses to remove a position that workers still hold
	Delete(id uint64) error
}

// TaskTypeRepository defines the interface for task type data access
type TaskTypeRepository interface {
	Create(taskType *models.TaskType) error
	FindByID(id uint64) (*models.TaskType, error)
	FindByName(name string) (*models.TaskType, error)
	List() ([]models.TaskType, error)

	// Delete removes a task type and cascades to its tasks
	Delete(id uint64) error
}

// CommentaryRepository defines the interface for commentary data access
type CommentaryRepository interface {
	Create(commentary *models.Commentary) error
	ListByTask(taskID uint64) ([]models.Commentary, error)
}
