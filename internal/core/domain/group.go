package domain

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("group not found")
var ErrDuplicateGroupName = errors.New("group name already exists")

// Group is a label used to bucket board tasks.
type Group struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
