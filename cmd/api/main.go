package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/config"
	assignmentrepo "github.com/devforge-portal/portal-backend/internal/assignments/repository"
	"github.com/devforge-portal/portal-backend/internal/bootstrap"
	"github.com/devforge-portal/portal-backend/internal/identity"
	projectrepo "github.com/devforge-portal/portal-backend/internal/projects/repository"
	userrepo "github.com/devforge-portal/portal-backend/internal/users/repository"
	userservice "github.com/devforge-portal/portal-backend/internal/users/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	clients, err := bootstrap.NewClients(context.Background(), cfg)
	if err != nil {
		logger.Fatal("aws clients", zap.Error(err))
	}

	idp := identity.NewCognito(clients.Cognito, cfg.Identity.UserPoolID)

	projects := projectrepo.NewProjectRepository(clients.DB, cfg.Tables.Projects)
	users := userrepo.NewUserRepository(clients.DB, cfg.Tables.Users)
	assignments := assignmentrepo.NewAssignmentRepository(clients.DB, cfg.Tables.Assignments)

	bootstrap.SetGinMode(cfg.App.Environment)
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "portal-backend",
		Version:       cfg.App.Version,
		DevBypassAuth: cfg.Identity.DevBypassAuth,
		Log:           logger,
		Projects:      projects,
		Users:         userservice.NewUserService(users, idp, logger),
		Assignments:   assignments,
	})

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
