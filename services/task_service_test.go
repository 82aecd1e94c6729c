package services_test

import (
	"testing"

	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTaskById(t *testing.T) {
	db, mock, closeDB := testutils.SetupMockDB()
	defer closeDB()

	taskID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "title", "completed", "status", "priority"}).
		AddRow(taskID, "Stored task", false, "pending", "medium")

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WithArgs(taskID.String(), 1).
		WillReturnRows(rows)

	service := &services.TaskService{}
	task, err := service.GetTaskById(db, taskID.String())

	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, "Stored task", task.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaskByIdNotFound(t *testing.T) {
	db, mock, closeDB := testutils.SetupMockDB()
	defer closeDB()

	missing := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WithArgs(missing.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	service := &services.TaskService{}
	_, err := service.GetTaskById(db, missing.String())

	assert.ErrorIs(t, err, services.ErrTaskNotFound)
}

func TestGetTasksWithFilters(t *testing.T) {
	db, mock, closeDB := testutils.SetupMockDB()
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "title", "completed", "status"}).
		AddRow(uuid.New(), "Done thing", true, "completed")

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE completed = \$1`).
		WithArgs(true).
		WillReturnRows(rows)

	service := &services.TaskService{}
	tasks, err := service.GetTasks(db, map[string]interface{}{"completed": "true"})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
}
