package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/assignments/domain"
	"github.com/devforge-portal/portal-backend/internal/assignments/service"
)

// Store is the persistence surface the handlers need.
type Store interface {
	Create(ctx context.Context, a domain.Assignment) error
	Get(ctx context.Context, id string) (domain.Assignment, error)
	List(ctx context.Context, projectID, userID string) ([]domain.Assignment, error)
	Update(ctx context.Context, id string, a domain.Assignment) (domain.Assignment, error)
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for assignment HTTP endpoints.
type Handler struct {
	store    Store
	resolver *service.Resolver
	log      *zap.Logger
}

func New(store Store, resolver *service.Resolver, log *zap.Logger) *Handler {
	return &Handler{store: store, resolver: resolver, log: log}
}
