package mailer

import (
	"fmt"

	"taskmanager/internal/models"
)

const deadlineDisplayLayout = "02 Jan 2006 15:04"

// TaskCreatedSubject builds the subject line of the new-task notification.
func TaskCreatedSubject(task *models.Task, creatorName string) string {
	return fmt.Sprintf("New Task %q from %s", task.Name, creatorName)
}

// TaskCreatedBody builds the notification body sent to each assignee.
// TaskType must be preloaded on the task.
func TaskCreatedBody(task *models.Task, baseURL string) string {
	deadline := "not set"
	if task.Deadline != nil {
		deadline = task.Deadline.Format(deadlineDisplayLayout)
	}

	return fmt.Sprintf(
		"Description: %s\n\n"+
			"Priority: %s\n"+
			"Deadline: %s\n"+
			"Type task: %s\n"+
			"URL: %s/api/tasks/%d\n",
		task.Description,
		task.Priority,
		deadline,
		task.TaskType.Name,
		baseURL,
		task.ID,
	)
}
