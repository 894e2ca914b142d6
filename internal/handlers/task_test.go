package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskmanager/internal/constants"
	"taskmanager/internal/database"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
	"taskmanager/internal/services"
)

// sentMail records a message delivered through the fake mailer.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	mail    *fakeMailer
	service *services.TaskService
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.Position{},
		&models.Worker{},
		&models.TaskType{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Commentary{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.mail = &fakeMailer{}
	suite.service = services.NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewTaskTypeRepository(suite.db),
		repository.NewCommentaryRepository(suite.db),
		suite.mail,
		"http://localhost:8080",
	)
	suite.handler = NewTaskHandler(suite.service)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskHandlerTestSuite) createTestWorker(username, email string) *models.Worker {
	worker := &models.Worker{
		Username:     username,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(worker)
	return worker
}

func (suite *TaskHandlerTestSuite) createTestTaskType(name string) *models.TaskType {
	taskType := &models.TaskType{Name: name}
	suite.db.Create(taskType)
	return taskType
}

func (suite *TaskHandlerTestSuite) createTestTask(name string, creatorID, taskTypeID uint64, priority models.TaskPriority) *models.Task {
	task := &models.Task{
		Name:       name,
		Priority:   priority,
		TaskTypeID: taskTypeID,
		CreatorID:  &creatorID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) assign(taskID, workerID uint64) {
	suite.db.Create(&models.TaskAssignment{TaskID: taskID, WorkerID: workerID})
}

// createAuthContext builds an authenticated request context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, workerID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyWorkerID, workerID)

	return c, w
}

func setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
}

// TestListTasks_ExcludesCompleted verifies completed tasks never appear in the open list
func (suite *TaskHandlerTestSuite) TestListTasks_ExcludesCompleted() {
	worker := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	suite.createTestTask("Open task", worker.ID, taskType.ID, models.PriorityHigh)
	done := suite.createTestTask("Done task", worker.ID, taskType.ID, models.PriorityLow)
	suite.db.Model(done).Update("is_completed", true)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Open task", tasks[0].(map[string]interface{})["name"])
}

// TestListTasks_FilterByTaskType verifies filtering by a type with no tasks is an empty success
func (suite *TaskHandlerTestSuite) TestListTasks_FilterByTaskType() {
	worker := suite.createTestWorker("alice", "alice@example.com")
	bugType := suite.createTestTaskType("Bug")
	emptyType := suite.createTestTaskType("Feature")
	suite.createTestTask("Fix crash", worker.ID, bugType.ID, models.PriorityHigh)

	c, w := suite.createAuthContext("GET", fmt.Sprintf("/api/tasks?task_type=%d", emptyType.ID), nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(suite.T(), response["tasks"])
}

// TestListTasks_NameFilterCaseInsensitive verifies the substring match ignores case
func (suite *TaskHandlerTestSuite) TestListTasks_NameFilterCaseInsensitive() {
	worker := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	suite.createTestTask("Fix LOGIN flow", worker.ID, taskType.ID, models.PriorityHigh)
	suite.createTestTask("Write docs", worker.ID, taskType.ID, models.PriorityLow)

	c, w := suite.createAuthContext("GET", "/api/tasks?name_task=login", nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Fix LOGIN flow", tasks[0].(map[string]interface{})["name"])
}

// TestListTasks_OrderingByName verifies allow-listed ordering is applied
func (suite *TaskHandlerTestSuite) TestListTasks_OrderingByName() {
	worker := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	suite.createTestTask("Banana", worker.ID, taskType.ID, models.PriorityHigh)
	suite.createTestTask("Apple", worker.ID, taskType.ID, models.PriorityHigh)

	c, w := suite.createAuthContext("GET", "/api/tasks?ordering=name", nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 2)
	assert.Equal(suite.T(), "Apple", tasks[0].(map[string]interface{})["name"])
	assert.Equal(suite.T(), "Banana", tasks[1].(map[string]interface{})["name"])
}

// TestListTasks_InvalidOrdering verifies unknown ordering fields are rejected
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidOrdering() {
	worker := suite.createTestWorker("alice", "alice@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks?ordering=nonexistent_field", nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_QUERY", response["code"])
}

// TestListTasks_InvalidPriorityFilter verifies unknown priority values are rejected
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidPriorityFilter() {
	worker := suite.createTestWorker("alice", "alice@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks?priority=Gigantic", nil, worker.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_QUERY", response["code"])
}

// TestCreateTask_Success covers the full creation flow: forced creator,
// placeholder image, one mail per assignee.
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Fix bug",
		"priority":     "High",
		"task_type_id": taskType.ID,
		"deadline":     "2024-06-01T10:00",
		"assignee_ids": []uint64{assignee.ID},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.Preload("Assignments").First(&stored).Error)
	suite.Require().NotNil(stored.CreatorID)
	assert.Equal(suite.T(), creator.ID, *stored.CreatorID)
	assert.False(suite.T(), stored.IsCompleted)
	assert.Equal(suite.T(), constants.DefaultTaskImage, stored.Image)
	suite.Require().NotNil(stored.Deadline)
	assert.Equal(suite.T(), "2024-06-01T10:00", stored.Deadline.Format(constants.DeadlineLayout))
	suite.Require().Len(stored.Assignments, 1)
	assert.Equal(suite.T(), assignee.ID, stored.Assignments[0].WorkerID)

	suite.Require().Len(suite.mail.sent, 1)
	assert.Equal(suite.T(), "bob@example.com", suite.mail.sent[0].To)
	assert.Contains(suite.T(), suite.mail.sent[0].Subject, "Fix bug")
	assert.Contains(suite.T(), suite.mail.sent[0].Body, "High")
}

// TestCreateTask_NoAssigneesNoMail verifies creation without assignees sends nothing
func (suite *TaskHandlerTestSuite) TestCreateTask_NoAssigneesNoMail() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Solo task",
		"priority":     "Low",
		"task_type_id": taskType.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Empty(suite.T(), suite.mail.sent)
}

// TestCreateTask_InvalidDeadline verifies malformed deadlines are a client error
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidDeadline() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Fix bug",
		"priority":     "High",
		"task_type_id": taskType.ID,
		"deadline":     "not-a-date",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestCreateTask_InvalidPriority verifies the priority enum is enforced
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidPriority() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Fix bug",
		"priority":     "Gigantic",
		"task_type_id": taskType.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_MissingTaskType verifies dangling type references are rejected
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTaskType() {
	creator := suite.createTestWorker("alice", "alice@example.com")

	requestBody := map[string]interface{}{
		"name":         "Fix bug",
		"priority":     "High",
		"task_type_id": 999,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_MailFailure verifies a delivery failure fails the request loudly
func (suite *TaskHandlerTestSuite) TestCreateTask_MailFailure() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")
	suite.mail.err = errors.New("smtp: connection refused")

	requestBody := map[string]interface{}{
		"name":         "Fix bug",
		"priority":     "High",
		"task_type_id": taskType.ID,
		"assignee_ids": []uint64{assignee.ID},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creator.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadGateway, w.Code)
}

// TestUpdateTask_NonCreatorForbidden verifies only the creator may update,
// and that a forbidden attempt leaves the task untouched.
func (suite *TaskHandlerTestSuite) TestUpdateTask_NonCreatorForbidden() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	other := suite.createTestWorker("carol", "carol@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Original", creator.ID, taskType.ID, models.PriorityHigh)
	suite.assign(task.ID, other.ID) // even an assignee may not update

	requestBody := map[string]interface{}{"name": "Hijacked"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, other.ID)
	setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Equal(suite.T(), "Original", stored.Name)
}

// TestUpdateTask_Success verifies the creator can change fields and the deadline
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Original", creator.ID, taskType.ID, models.PriorityHigh)

	requestBody := map[string]interface{}{
		"name":     "Renamed",
		"priority": "Low",
		"deadline": "2024-07-15T09:30",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, creator.ID)
	setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Equal(suite.T(), "Renamed", stored.Name)
	assert.Equal(suite.T(), models.PriorityLow, stored.Priority)
	suite.Require().NotNil(stored.CreatorID)
	assert.Equal(suite.T(), creator.ID, *stored.CreatorID)
}

// TestUpdateTask_InvalidDeadline verifies the deadline is re-validated on update
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidDeadline() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Original", creator.ID, taskType.ID, models.PriorityHigh)

	requestBody := map[string]interface{}{"deadline": "June first"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, creator.ID)
	setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCompleteTask_Idempotent verifies completing twice succeeds and changes nothing
func (suite *TaskHandlerTestSuite) TestCompleteTask_Idempotent() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Finish me", creator.ID, taskType.ID, models.PriorityMedium)

	for i := 0; i < 2; i++ {
		c, w := suite.createAuthContext("POST", "/api/tasks/1/done", nil, creator.ID)
		setIDParam(c, task.ID)

		suite.handler.CompleteTask(c)

		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var stored models.Task
		suite.db.First(&stored, task.ID)
		assert.True(suite.T(), stored.IsCompleted)
	}
}

// TestCompleteTask_AssigneeAllowed verifies assignees may mark tasks done
func (suite *TaskHandlerTestSuite) TestCompleteTask_AssigneeAllowed() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Finish me", creator.ID, taskType.ID, models.PriorityMedium)
	suite.assign(task.ID, assignee.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/done", nil, assignee.ID)
	setIDParam(c, task.ID)

	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestCompleteTask_OutsiderForbidden verifies unrelated workers get 403
func (suite *TaskHandlerTestSuite) TestCompleteTask_OutsiderForbidden() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	outsider := suite.createTestWorker("carol", "carol@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Finish me", creator.ID, taskType.ID, models.PriorityMedium)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/done", nil, outsider.ID)
	setIDParam(c, task.ID)

	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.False(suite.T(), stored.IsCompleted)
}

// TestDeleteTask_CascadesCommentaries verifies deleting a task removes its commentaries
func (suite *TaskHandlerTestSuite) TestDeleteTask_CascadesCommentaries() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Doomed", creator.ID, taskType.ID, models.PriorityLow)
	suite.db.Create(&models.Commentary{WorkerID: creator.ID, TaskID: task.ID, Content: "note"})

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, creator.ID)
	setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var taskCount, commentCount int64
	suite.db.Model(&models.Task{}).Count(&taskCount)
	suite.db.Model(&models.Commentary{}).Count(&commentCount)
	assert.Zero(suite.T(), taskCount)
	assert.Zero(suite.T(), commentCount)
}

// TestDeleteTask_NonCreatorForbidden verifies delete is creator-only
func (suite *TaskHandlerTestSuite) TestDeleteTask_NonCreatorForbidden() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Keep me", creator.ID, taskType.ID, models.PriorityLow)
	suite.assign(task.ID, assignee.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, assignee.ID)
	setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

// TestCreateCommentary_Success verifies an assignee can comment
func (suite *TaskHandlerTestSuite) TestCreateCommentary_Success() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Discuss", creator.ID, taskType.ID, models.PriorityMedium)
	suite.assign(task.ID, assignee.ID)

	body, _ := json.Marshal(map[string]string{"content": "Working on it"})
	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, assignee.ID)
	setIDParam(c, task.ID)

	suite.handler.CreateCommentary(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var stored models.Commentary
	suite.Require().NoError(suite.db.First(&stored).Error)
	assert.Equal(suite.T(), assignee.ID, stored.WorkerID)
	assert.Equal(suite.T(), "Working on it", stored.Content)
	assert.False(suite.T(), stored.CreatedAt.IsZero())
}

// TestCreateCommentary_EmptyContent verifies empty content is a client error
func (suite *TaskHandlerTestSuite) TestCreateCommentary_EmptyContent() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Discuss", creator.ID, taskType.ID, models.PriorityMedium)

	body, _ := json.Marshal(map[string]string{"content": "   "})
	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, creator.ID)
	setIDParam(c, task.ID)

	suite.handler.CreateCommentary(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateCommentary_OutsiderForbidden verifies unrelated workers may not comment
func (suite *TaskHandlerTestSuite) TestCreateCommentary_OutsiderForbidden() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	outsider := suite.createTestWorker("carol", "carol@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Discuss", creator.ID, taskType.ID, models.PriorityMedium)

	body, _ := json.Marshal(map[string]string{"content": "sneaky"})
	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, outsider.ID)
	setIDParam(c, task.ID)

	suite.handler.CreateCommentary(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Commentary{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestListMyTasks_Union verifies created and assigned tasks appear once each
func (suite *TaskHandlerTestSuite) TestListMyTasks_Union() {
	me := suite.createTestWorker("alice", "alice@example.com")
	other := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")

	created := suite.createTestTask("Created by me", me.ID, taskType.ID, models.PriorityHigh)
	suite.assign(created.ID, me.ID) // both creator and assignee, must not duplicate
	assigned := suite.createTestTask("Assigned to me", other.ID, taskType.ID, models.PriorityLow)
	suite.assign(assigned.ID, me.ID)
	suite.createTestTask("Unrelated", other.ID, taskType.ID, models.PriorityLow)

	c, w := suite.createAuthContext("GET", "/api/tasks/my", nil, me.ID)

	suite.handler.ListMyTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 2)

	names := map[string]bool{}
	for _, raw := range tasks {
		names[raw.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(suite.T(), names["Created by me"])
	assert.True(suite.T(), names["Assigned to me"])

	assert.Contains(suite.T(), response, "dashboard")
}

// TestListMyTasks_FilterContract verifies my-tasks rejects bad ordering too
func (suite *TaskHandlerTestSuite) TestListMyTasks_FilterContract() {
	me := suite.createTestWorker("alice", "alice@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks/my?ordering=-bogus", nil, me.ID)

	suite.handler.ListMyTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestGetTask_IncludesRelations verifies the detail view carries relations
func (suite *TaskHandlerTestSuite) TestGetTask_IncludesRelations() {
	creator := suite.createTestWorker("alice", "alice@example.com")
	assignee := suite.createTestWorker("bob", "bob@example.com")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Detailed", creator.ID, taskType.ID, models.PriorityUrgent)
	suite.assign(task.ID, assignee.ID)
	suite.db.Create(&models.Commentary{WorkerID: creator.ID, TaskID: task.ID, Content: "first"})

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, assignee.ID)
	setIDParam(c, task.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Detailed", response["name"])
	assert.Equal(suite.T(), "Urgent!!!", response["priority"])
	assert.Equal(suite.T(), "Bug", response["task_type"].(map[string]interface{})["name"])
	assert.Len(suite.T(), response["assignees"], 1)
	assert.Len(suite.T(), response["commentaries"], 1)
}

// TestGetTask_NotFound verifies a missing id is 404
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	worker := suite.createTestWorker("alice", "alice@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks/42", nil, worker.ID)
	setIDParam(c, 42)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
