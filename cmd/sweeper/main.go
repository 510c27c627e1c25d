// The sweeper keeps the user store and the identity pool from silently
// diverging. It runs one consistency pass at startup and then nightly.
package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/config"
	"github.com/devforge-portal/portal-backend/internal/bootstrap"
	"github.com/devforge-portal/portal-backend/internal/identity"
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
	users := userrepo.NewUserRepository(clients.DB, cfg.Tables.Users)
	svc := userservice.NewUserService(users, idp, logger)

	run := func() {
		report, err := svc.SweepIdentities(context.Background())
		if err != nil {
			logger.Error("sweep failed", zap.Error(err))
			return
		}
		logger.Info("sweep finished",
			zap.Int("checked", report.Checked),
			zap.Strings("marked_inactive", report.MarkedInactive),
			zap.Strings("orphan_accounts", report.OrphanAccounts))
	}

	run()

	c := cron.New()
	if _, err := c.AddFunc("0 0 * * *", run); err != nil {
		logger.Fatal("schedule sweep", zap.Error(err))
	}
	logger.Info("sweeper scheduled nightly at 00:00")
	c.Run()
}
