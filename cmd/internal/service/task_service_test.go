package service

import (
	"net/http"
	"testing"
	"time"

	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/testutil"
	"orbit/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateDefaultsPriority(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, f.notifier, f.validate)

	task, apierr := svc.CreateTask(f.user, &contract.TaskRequest{Title: "  Write report  ", DueDate: ptr("2024-05-01")})
	require.Nil(t, apierr)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "MEDIUM", task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2024-05-01T00:00:00Z", *task.DueDate)
	assert.Eventually(t, func() bool { return f.notifier.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestTaskService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)

	_, apierr := svc.CreateTask(f.user, &contract.TaskRequest{Title: "", Priority: "CRITICAL"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, structured.Errors, "title")
	assert.Contains(t, structured.Errors, "priority")
}

func TestTaskService_CompletionStampsTimestamp(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)

	task, apierr := svc.CreateTask(f.user, &contract.TaskRequest{Title: "a"})
	require.Nil(t, apierr)

	updated, apierr := svc.UpdateTask(f.user, task.ID, &contract.UpdateTaskRequest{Completed: ptr(true)})
	require.Nil(t, apierr)
	assert.True(t, updated.Completed)
	assert.NotNil(t, updated.CompletedAt)

	updated, apierr = svc.UpdateTask(f.user, task.ID, &contract.UpdateTaskRequest{Completed: ptr(false)})
	require.Nil(t, apierr)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
}

func TestTaskService_ClearDueDate(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)

	task, _ := svc.CreateTask(f.user, &contract.TaskRequest{Title: "a", DueDate: ptr("2024-05-01")})
	updated, apierr := svc.UpdateTask(f.user, task.ID, &contract.UpdateTaskRequest{DueDate: ptr("")})
	require.Nil(t, apierr)
	assert.Nil(t, updated.DueDate)

	_, apierr = svc.UpdateTask(f.user, task.ID, &contract.UpdateTaskRequest{DueDate: ptr("someday")})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestTaskService_CreateWithEmptyDueDate(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)

	task, apierr := svc.CreateTask(f.user, &contract.TaskRequest{Title: "a", DueDate: ptr("")})
	require.Nil(t, apierr)
	assert.Nil(t, task.DueDate)
}

func TestTaskService_ForeignTaskIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)
	other := testutil.NewUser(t, f.db, "bob@example.com")

	task, apierr := svc.CreateTask(other, &contract.TaskRequest{Title: "secret"})
	require.Nil(t, apierr)

	_, apierr = svc.GetTaskByID(f.user, task.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	apierr = svc.DeleteTask(f.user, task.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = svc.GetTaskByID(other, task.ID)
	assert.Nil(t, apierr)
}

func TestTaskService_ListFiltersByCompletion(t *testing.T) {
	f := newFixture(t)
	svc := NewTaskService(f.tasks, NopNotifier{}, f.validate)

	done, _ := svc.CreateTask(f.user, &contract.TaskRequest{Title: "done"})
	_, _ = svc.CreateTask(f.user, &contract.TaskRequest{Title: "open"})
	_, apierr := svc.UpdateTask(f.user, done.ID, &contract.UpdateTaskRequest{Completed: ptr(true)})
	require.Nil(t, apierr)

	all, apierr := svc.GetTasks(f.user, nil)
	require.Nil(t, apierr)
	assert.Len(t, all, 2)

	open, apierr := svc.GetTasks(f.user, ptr(false))
	require.Nil(t, apierr)
	require.Len(t, open, 1)
	assert.Equal(t, "open", open[0].Title)
}
