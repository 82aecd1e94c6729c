package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

func jsonbValue(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, strOk := value.(string); strOk {
			bytes = []byte(str)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(bytes, dest)
}

// StringList stores an ordered list of strings as JSONB
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *StringList) Scan(value interface{}) error {
	*l = StringList{}
	return jsonbScan(value, l)
}

// Subtask is an embedded task item stored inside its parent task
type Subtask struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Completed   bool         `json:"completed"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssignedTo  *uuid.UUID   `json:"assigned_to,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type SubtaskList []Subtask

func (l SubtaskList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *SubtaskList) Scan(value interface{}) error {
	*l = SubtaskList{}
	return jsonbScan(value, l)
}

// Comment is an embedded discussion entry stored inside its parent task
type Comment struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Author      string         `json:"author"`
	AuthorID    *uuid.UUID     `json:"author_id,omitempty"`
	Mentions    []uuid.UUID    `json:"mentions,omitempty"`
	Attachments AttachmentList `json:"attachments,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *CommentList) Scan(value interface{}) error {
	*l = CommentList{}
	return jsonbScan(value, l)
}

// Attachment holds file metadata only, never file content
type Attachment struct {
	Filename     string     `json:"filename"`
	OriginalName string     `json:"original_name,omitempty"`
	URL          string     `json:"url"`
	FileType     string     `json:"file_type,omitempty"`
	Size         int64      `json:"size,omitempty"`
	UploadedBy   *uuid.UUID `json:"uploaded_by,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}

type AttachmentList []Attachment

func (l AttachmentList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *AttachmentList) Scan(value interface{}) error {
	*l = AttachmentList{}
	return jsonbScan(value, l)
}

// Recurrence describes how a task repeats
type Recurrence struct {
	Pattern     string     `json:"pattern"`
	Interval    int        `json:"interval"`
	DaysOfWeek  []int      `json:"days_of_week,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Occurrences int        `json:"occurrences,omitempty"`
}

func (r Recurrence) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *Recurrence) Scan(value interface{}) error {
	*r = Recurrence{Pattern: "none", Interval: 1}
	return jsonbScan(value, r)
}

// TimeSession is one tracked work interval
type TimeSession struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  float64    `json:"duration"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
}

// TimeTracking accumulates estimated and actual effort
type TimeTracking struct {
	EstimatedHours float64       `json:"estimated_hours,omitempty"`
	ActualHours    float64       `json:"actual_hours"`
	Sessions       []TimeSession `json:"sessions,omitempty"`
}

func (t TimeTracking) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *TimeTracking) Scan(value interface{}) error {
	*t = TimeTracking{}
	return jsonbScan(value, t)
}

// DependencyType classifies a task-to-task relationship
type DependencyType string

const (
	DependencyBlocks    DependencyType = "blocks"
	DependencyBlockedBy DependencyType = "blocked_by"
	DependencyRelatesTo DependencyType = "relates_to"
)

// Dependency links a task to another task
type Dependency struct {
	TaskID uuid.UUID      `json:"task_id"`
	Type   DependencyType `json:"type"`
}

type DependencyList []Dependency

func (l DependencyList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *DependencyList) Scan(value interface{}) error {
	*l = DependencyList{}
	return jsonbScan(value, l)
}

// Snapshot stores an arbitrary document state as JSONB
type Snapshot map[string]interface{}

func (s Snapshot) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *Snapshot) Scan(value interface{}) error {
	*s = make(Snapshot)
	return jsonbScan(value, s)
}
