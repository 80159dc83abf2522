package domain

import (
	"errors"
	"time"
)

// TaskPriority orders work on the global board.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

// TaskStatus is the lifecycle state of a board task.
type TaskStatus string

const (
	StatusInProcess       TaskStatus = "InProcess"
	StatusCompleted       TaskStatus = "Completed"
	StatusWaitingForQuote TaskStatus = "Waiting for Quote"
)

var ErrTaskNotFound = errors.New("task not found")

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidTaskStatus reports whether s is a known status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusInProcess, StatusCompleted, StatusWaitingForQuote:
		return true
	}
	return false
}

// Task is a standalone entry on the global board, grouped by client.
type Task struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	ClientName  string       `json:"clientName" bson:"clientName"`
	ClientGroup string       `json:"clientGroup" bson:"clientGroup"`
	DueDate     *time.Time   `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	Status      TaskStatus   `json:"status" bson:"status"`
	CMS         string       `json:"cms,omitempty" bson:"cms,omitempty"`
	WebURL      string       `json:"webUrl,omitempty" bson:"webUrl,omitempty"`
	FigmaURL    string       `json:"figmaUrl,omitempty" bson:"figmaUrl,omitempty"`
	AssetURL    string       `json:"assetUrl,omitempty" bson:"assetUrl,omitempty"`
	TotalPrice  *float64     `json:"totalPrice,omitempty" bson:"totalPrice,omitempty"`
	Deposit     *float64     `json:"deposit,omitempty" bson:"deposit,omitempty"`
	Invoiced    bool         `json:"invoiced" bson:"invoiced"`
	Paid        bool         `json:"paid" bson:"paid"`
	Assignees   []string     `json:"assignees" bson:"assignees"`
	Notes       string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Completed   bool         `json:"completed" bson:"completed"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Normalize enforces the payment/completion coupling before every write:
// a paid task is always Completed, and the completed flag mirrors status.
func (t *Task) Normalize() {
	if t.Paid {
		t.Status = StatusCompleted
	}
	t.Completed = t.Status == StatusCompleted
}
