package http

import (
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/users/service"
)

// Handler bundles the dependencies for user HTTP endpoints. All store and
// identity access goes through the service, which owns the ordering rules
// between the two.
type Handler struct {
	svc *service.UserService
	log *zap.Logger
}

func New(svc *service.UserService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}
