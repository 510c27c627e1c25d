package domain

import "errors"

// ErrNotFound is returned when a project id has no record in the store.
var ErrNotFound = errors.New("project not found")

// Status is the lifecycle state of a project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Difficulty is the skill level a project targets.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// TeamSize bounds the number of people a project expects.
type TeamSize struct {
	Min int `json:"min" dynamodbav:"min"`
	Max int `json:"max" dynamodbav:"max"`
}

// Metadata carries the descriptive attributes of a project.
type Metadata struct {
	Type          string     `json:"type" dynamodbav:"type"`
	EstimatedTime string     `json:"estimatedTime" dynamodbav:"estimatedTime"`
	TeamSize      TeamSize   `json:"teamSize" dynamodbav:"teamSize"`
	Difficulty    Difficulty `json:"difficulty" dynamodbav:"difficulty"`
	Tags          []string   `json:"tags" dynamodbav:"tags"`
}

// Deliverable is one expected output of a project. Older records stored bare
// strings here; the reconciler lifts those into the Title field.
type Deliverable struct {
	ID           string   `json:"id,omitempty" dynamodbav:"id,omitempty"`
	Title        string   `json:"title" dynamodbav:"title"`
	Description  string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Type         string   `json:"type,omitempty" dynamodbav:"type,omitempty"`
	Requirements []string `json:"requirements,omitempty" dynamodbav:"requirements,omitempty"`
}

// TechStack groups technology names by category. Absent categories are empty.
type TechStack struct {
	Frontend       []string `json:"frontend" dynamodbav:"frontend"`
	Backend        []string `json:"backend" dynamodbav:"backend"`
	Database       []string `json:"database" dynamodbav:"database"`
	Infrastructure []string `json:"infrastructure" dynamodbav:"infrastructure"`
	Tools          []string `json:"tools" dynamodbav:"tools"`
	Other          []string `json:"other" dynamodbav:"other"`
}

// Section is one free-form content block of a project description. The
// canonical shape is an ordered slice; records written under the older
// map-of-sections revision are converted by the reconciler.
type Section struct {
	Key     string `json:"key" dynamodbav:"key"`
	Title   string `json:"title" dynamodbav:"title"`
	Content string `json:"content" dynamodbav:"content"`
}

// Project is the canonical project record. It is the only project shape that
// exists past the store boundary; every stored revision is reconciled into it.
type Project struct {
	ID             string        `json:"id" dynamodbav:"id"`
	Title          string        `json:"title" dynamodbav:"title"`
	Overview       string        `json:"overview" dynamodbav:"overview"`
	Status         Status        `json:"status" dynamodbav:"status"`
	Objectives     []string      `json:"objectives" dynamodbav:"objectives"`
	Deliverables   []Deliverable `json:"deliverables" dynamodbav:"deliverables"`
	Considerations []string      `json:"considerations" dynamodbav:"considerations"`
	TechStack      TechStack     `json:"techStack" dynamodbav:"techStack"`
	Metadata       Metadata      `json:"metadata" dynamodbav:"metadata"`
	Sections       []Section     `json:"sections" dynamodbav:"sections"`
	CreatedAt      string        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      string        `json:"updated_at" dynamodbav:"updated_at"`
}
