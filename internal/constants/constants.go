package constants

// Pagination
const DefaultPageSize = 10

// Session / context keys
const (
	ContextKeyWorkerID = "worker_id"
	SessionName        = "task_session"
)

// Validation
const (
	MinPasswordLength = 8
)

// DeadlineLayout is the accepted format for task deadlines in requests.
const DeadlineLayout = "2006-01-02T15:04"

// DefaultTaskImage is used when a task is created without an image.
const DefaultTaskImage = "task_images/default_task.jpg"
