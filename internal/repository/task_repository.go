package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/internal/database"
	"taskmanager/internal/models"
)

// ErrUnknownOrderField is returned when a filter names an ordering field
// outside the allow-list.
var ErrUnknownOrderField = errors.New("task repository: unknown ordering field")

// orderColumns maps request-facing field names to the columns they sort by.
// Request input never reaches the ORDER BY clause directly.
var orderColumns = map[string]string{
	"name":         "tasks.name",
	"created":      "tasks.created_at",
	"deadline":     "tasks.deadline",
	"priority":     "tasks.priority",
	"is_completed": "tasks.is_completed",
}

// ValidOrderField reports whether field is an allow-listed ordering key.
func ValidOrderField(field string) bool {
	_, ok := orderColumns[field]
	return ok
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// apply builds the WHERE clause for a filter.
func (r *GormTaskRepository) apply(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})

	if filter.MemberID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.worker_id = ?", *filter.MemberID)
		query = query.Where("tasks.creator_id = ? OR EXISTS (?)", *filter.MemberID, assignmentSubQuery)
	}
	if filter.Completed != nil {
		query = query.Where("tasks.is_completed = ?", *filter.Completed)
	}
	if filter.NameContains != "" {
		pattern := "%" + strings.ToLower(filter.NameContains) + "%"
		query = query.Where("LOWER(tasks.name) LIKE ?", pattern)
	}
	if filter.TaskTypeID != nil {
		query = query.Where("tasks.task_type_id = ?", *filter.TaskTypeID)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("tasks.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("tasks.created_at < ?", *filter.CreatedTo)
	}

	return query
}

// List retrieves tasks with filtering, ordering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.apply(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderField != "" {
		column, ok := orderColumns[filter.OrderField]
		if !ok {
			return nil, 0, ErrUnknownOrderField
		}
		direction := "ASC"
		if filter.OrderDesc {
			direction = "DESC"
		}
		listQuery = listQuery.Order(fmt.Sprintf("%s %s", column, direction))
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Creator").Preload("TaskType").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Count counts the tasks matching a filter
func (r *GormTaskRepository) Count(filter TaskFilter) (int64, error) {
	var total int64
	if err := r.apply(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task along with its assignments and commentaries
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Commentary{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AssignWorkers assigns multiple workers to a task
func (r *GormTaskRepository) AssignWorkers(taskID uint64, workerIDs []uint64) error {
	if len(workerIDs) == 0 {
		return nil
	}

	assignments := make([]models.TaskAssignment, len(workerIDs))
	for i, workerID := range workerIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:   taskID,
			WorkerID: workerID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "worker_id"}},
			DoNothing: true,
		}).
		Create(&assignments).Error
}

// UpdateWithAssignees saves the task's fields and replaces its assignee set
// in a single transaction, so neither change lands without the other.
func (r *GormTaskRepository) UpdateWithAssignees(task *models.Task, workerIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if len(workerIDs) == 0 {
			return nil
		}

		assignments := make([]models.TaskAssignment, len(workerIDs))
		for i, workerID := range workerIDs {
			assignments[i] = models.TaskAssignment{
				TaskID:   task.ID,
				WorkerID: workerID,
			}
		}

		return tx.Create(&assignments).Error
	})
}

// CountWorkersByIDs counts how many of the given worker IDs exist
func (r *GormTaskRepository) CountWorkersByIDs(workerIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Worker{}).
		Where("workers.id IN ?", workerIDs).
		Count(&count).Error

	return count, err
}
