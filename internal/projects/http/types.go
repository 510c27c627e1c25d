package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/projects/domain"
)

// Store is the persistence surface the handlers need. The DynamoDB
// repository satisfies it; tests substitute an in-memory fake.
type Store interface {
	Create(ctx context.Context, p domain.Project) error
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Project, error)
	Update(ctx context.Context, id string, p domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}
