package domain

import (
	"errors"
	"time"
)

const (
	// MaxClientTaskTitleLen bounds embedded task titles.
	MaxClientTaskTitleLen = 100
	// MaxClientTaskContentLen bounds embedded task bodies.
	MaxClientTaskContentLen = 5000
)

var ErrClientNotFound = errors.New("client not found")
var ErrDuplicateClientName = errors.New("client name already exists")
var ErrClientTaskNotFound = errors.New("client task not found")
var ErrLoginDetailNotFound = errors.New("login detail not found")

// ErrRevisionConflict signals a concurrent write to the same client document.
var ErrRevisionConflict = errors.New("client document was modified concurrently")

// ClientTask is a work note embedded in a client record. The id is generated
// at append time, not by the database.
type ClientTask struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Content     string     `json:"content" bson:"content"`
	CreatedBy   string     `json:"createdBy" bson:"createdBy"`
	EditedBy    string     `json:"editedBy" bson:"editedBy"`
	AssignedTo  string     `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	CompletedBy string     `json:"completedBy,omitempty" bson:"completedBy,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// SetCompleted moves the task between completion states, keeping the
// completedBy/completedAt pair present iff completed is true.
func (ct *ClientTask) SetCompleted(completed bool, by string, now time.Time) {
	ct.Completed = completed
	if completed {
		ct.CompletedBy = by
		at := now
		ct.CompletedAt = &at
	} else {
		ct.CompletedBy = ""
		ct.CompletedAt = nil
	}
}

// LoginDetail is a stored credential entry embedded in a client record.
// The password here is third-party site material supplied by the client,
// not an account password; it is stored as given.
type LoginDetail struct {
	ID        string    `json:"id" bson:"id"`
	Website   string    `json:"website" bson:"website"`
	URL       string    `json:"url,omitempty" bson:"url,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"password" bson:"password"`
	CreatedBy string    `json:"createdBy" bson:"createdBy"`
	EditedBy  string    `json:"editedBy" bson:"editedBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Client is the aggregate root owning its embedded tasks and credentials.
// Revision is the optimistic-concurrency counter checked on every write.
type Client struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Tasks        []ClientTask  `json:"tasks" bson:"tasks"`
	LoginDetails []LoginDetail `json:"loginDetails" bson:"loginDetails"`
	Revision     int64         `json:"-" bson:"revision"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// TaskByID returns a pointer into the embedded task list, or nil.
func (c *Client) TaskByID(id string) *ClientTask {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i]
		}
	}
	return nil
}

// RemoveTask splices the embedded task out of the list. Returns false when absent.
func (c *Client) RemoveTask(id string) bool {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// LoginByID returns a pointer into the embedded credential list, or nil.
func (c *Client) LoginByID(id string) *LoginDetail {
	for i := range c.LoginDetails {
		if c.LoginDetails[i].ID == id {
			return &c.LoginDetails[i]
		}
	}
	return nil
}

// RemoveLogin splices the credential out of the list. Returns false when absent.
func (c *Client) RemoveLogin(id string) bool {
	for i := range c.LoginDetails {
		if c.LoginDetails[i].ID == id {
			c.LoginDetails = append(c.LoginDetails[:i], c.LoginDetails[i+1:]...)
			return true
		}
	}
	return false
}
