package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetCompletedStampsTimestampAndStatus(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Write report", Status: StatusInProgress}

	task.SetCompleted(true, now)

	assert.True(t, task.Completed)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestSetCompletedClearsTimestamp(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Write report"}
	task.SetCompleted(true, now)

	task.SetCompleted(false, now.Add(time.Minute))

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, StatusPending, task.Status)
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Water plants", Status: StatusPending}

	task.SetCompleted(!task.Completed, now)
	task.SetCompleted(!task.Completed, now.Add(time.Second))

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, StatusPending, task.Status)
}

func TestReconcileCompletionFlagChangeWins(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Review PR", Status: StatusPending}

	// The caller flipped the flag but left status stale.
	task.Completed = true
	task.ReconcileCompletion(false, now)

	assert.True(t, task.Completed)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
}

func TestReconcileCompletionStatusDrivesFlag(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Review PR", Status: StatusPending}

	// The caller set status to completed without touching the flag.
	task.Status = StatusCompleted
	task.ReconcileCompletion(false, now)

	assert.True(t, task.Completed)
	assert.NotNil(t, task.CompletedAt)
}

func TestReconcileCompletionLeavesConsistentStateAlone(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Review PR"}
	task.SetCompleted(true, now)
	originalStamp := *task.CompletedAt

	task.ReconcileCompletion(true, now.Add(time.Hour))

	assert.True(t, task.Completed)
	assert.Equal(t, originalStamp, *task.CompletedAt)
}

func TestReconcileCompletionUncompleteViaStatus(t *testing.T) {
	now := time.Now().UTC()
	task := Task{Title: "Review PR"}
	task.SetCompleted(true, now)

	task.Status = StatusInProgress
	task.ReconcileCompletion(true, now.Add(time.Minute))

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestValidPriorityAndStatus(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityUrgent))
	assert.False(t, ValidPriority("critical"))

	assert.True(t, ValidStatus(StatusOnHold))
	assert.True(t, ValidStatus(StatusArchived))
	assert.False(t, ValidStatus("done"))
}

func TestEnhancedTaskArchive(t *testing.T) {
	now := time.Now().UTC()
	task := EnhancedTask{Title: "Old project", Status: StatusOnHold}

	task.Archive(now)

	assert.True(t, task.IsArchived)
	assert.Equal(t, StatusArchived, task.Status)
	assert.NotNil(t, task.ArchivedAt)
	assert.Equal(t, now, *task.ArchivedAt)
}
