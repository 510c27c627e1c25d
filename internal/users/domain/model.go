package domain

import "errors"

// ErrNotFound is returned when a user id has no record in the store.
var ErrNotFound = errors.New("user not found")

// Role is the authorization level of a user.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// Status is the account state of a user.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Metadata holds the free-form profile attributes of a user.
type Metadata struct {
	Department string   `json:"department" dynamodbav:"department"`
	Position   string   `json:"position" dynamodbav:"position"`
	Skills     []string `json:"skills" dynamodbav:"skills"`
}

// User is the canonical user record. CognitoUsername links the record to its
// identity-service account; the two must never silently diverge.
type User struct {
	ID              string   `json:"id" dynamodbav:"id"`
	Email           string   `json:"email" dynamodbav:"email"`
	Name            string   `json:"name" dynamodbav:"name"`
	Role            Role     `json:"role" dynamodbav:"role"`
	Status          Status   `json:"status" dynamodbav:"status"`
	Metadata        Metadata `json:"metadata" dynamodbav:"metadata"`
	CognitoUsername string   `json:"cognito_username" dynamodbav:"cognito_username"`
	CreatedAt       string   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       string   `json:"updated_at" dynamodbav:"updated_at"`
}
