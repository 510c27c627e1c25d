// Package service resolves the weak references an assignment carries at read
// time. A deleted project or user must render as an explicit unknown, never
// as an error.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/assignments/domain"
	projdomain "github.com/devforge-portal/portal-backend/internal/projects/domain"
	userdomain "github.com/devforge-portal/portal-backend/internal/users/domain"
)

const (
	// Fallback display values for dangling references.
	UnknownProject = "Unknown Project"
	UnknownUser    = "Unknown User"
)

// ProjectLookup fetches a project by id.
type ProjectLookup interface {
	Get(ctx context.Context, id string) (projdomain.Project, error)
}

// UserLookup fetches a user by id.
type UserLookup interface {
	Get(ctx context.Context, id string) (userdomain.User, error)
}

// View is an assignment enriched with display names for its references.
type View struct {
	domain.Assignment
	ProjectTitle string `json:"project_title"`
	UserName     string `json:"user_name"`
}

// Resolver attaches project and user display names to assignments.
type Resolver struct {
	projects ProjectLookup
	users    UserLookup
	log      *zap.Logger
}

func NewResolver(projects ProjectLookup, users UserLookup, log *zap.Logger) *Resolver {
	return &Resolver{projects: projects, users: users, log: log}
}

// Resolve builds the read view for one assignment. Lookup failures other than
// not-found are logged and degrade to the unknown fallback; the assignment
// itself is always returned.
func (r *Resolver) Resolve(ctx context.Context, a domain.Assignment) View {
	v := View{Assignment: a, ProjectTitle: UnknownProject, UserName: UnknownUser}

	if p, err := r.projects.Get(ctx, a.ProjectID); err == nil {
		v.ProjectTitle = p.Title
	} else if !errors.Is(err, projdomain.ErrNotFound) {
		r.log.Error("resolve assignment project", zap.String("project_id", a.ProjectID), zap.Error(err))
	}

	if u, err := r.users.Get(ctx, a.UserID); err == nil {
		v.UserName = u.Name
	} else if !errors.Is(err, userdomain.ErrNotFound) {
		r.log.Error("resolve assignment user", zap.String("user_id", a.UserID), zap.Error(err))
	}

	return v
}

// ResolveAll builds read views for a list of assignments. Referents are
// fetched once per distinct id.
func (r *Resolver) ResolveAll(ctx context.Context, items []domain.Assignment) []View {
	projectTitles := map[string]string{}
	userNames := map[string]string{}

	views := make([]View, 0, len(items))
	for _, a := range items {
		v := View{Assignment: a}

		title, ok := projectTitles[a.ProjectID]
		if !ok {
			title = UnknownProject
			if p, err := r.projects.Get(ctx, a.ProjectID); err == nil {
				title = p.Title
			} else if !errors.Is(err, projdomain.ErrNotFound) {
				r.log.Error("resolve assignment project", zap.String("project_id", a.ProjectID), zap.Error(err))
			}
			projectTitles[a.ProjectID] = title
		}
		v.ProjectTitle = title

		name, ok := userNames[a.UserID]
		if !ok {
			name = UnknownUser
			if u, err := r.users.Get(ctx, a.UserID); err == nil {
				name = u.Name
			} else if !errors.Is(err, userdomain.ErrNotFound) {
				r.log.Error("resolve assignment user", zap.String("user_id", a.UserID), zap.Error(err))
			}
			userNames[a.UserID] = name
		}
		v.UserName = name

		views = append(views, v)
	}
	return views
}
