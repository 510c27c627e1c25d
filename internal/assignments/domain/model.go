package domain

import "errors"

// ErrNotFound is returned when an assignment id has no record in the store.
var ErrNotFound = errors.New("assignment not found")

// Role is the position a user holds on a project.
type Role string

const (
	RoleLead   Role = "lead"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleLead || r == RoleMember
}

// Status is the lifecycle state of an assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Assignment links a user to a project. ProjectID and UserID are weak
// references: the referent may have been deleted, and reads resolve them with
// an explicit unknown fallback instead of failing.
type Assignment struct {
	ID        string  `json:"id" dynamodbav:"id"`
	ProjectID string  `json:"project_id" dynamodbav:"project_id"`
	UserID    string  `json:"user_id" dynamodbav:"user_id"`
	Role      Role    `json:"role" dynamodbav:"role"`
	Status    Status  `json:"status" dynamodbav:"status"`
	StartDate string  `json:"start_date" dynamodbav:"start_date"`
	EndDate   *string `json:"end_date" dynamodbav:"end_date"`
	Notes     string  `json:"notes" dynamodbav:"notes"`
	CreatedAt string  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt string  `json:"updated_at" dynamodbav:"updated_at"`
}
