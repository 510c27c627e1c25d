package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/devforge-portal/portal-backend/internal/api/http"
	assignmenthttp "github.com/devforge-portal/portal-backend/internal/assignments/http"
	assignmentservice "github.com/devforge-portal/portal-backend/internal/assignments/service"
	"github.com/devforge-portal/portal-backend/internal/auth"
	projecthttp "github.com/devforge-portal/portal-backend/internal/projects/http"
	userhttp "github.com/devforge-portal/portal-backend/internal/users/http"
	userservice "github.com/devforge-portal/portal-backend/internal/users/service"
)

// RouterDeps carries everything BuildRouter wires together. Stores and the
// user service are interfaces/structs built by the caller so tests can pass
// in-memory fakes.
type RouterDeps struct {
	ServiceName   string
	Version       string
	DevBypassAuth bool
	Log           *zap.Logger

	Projects    projecthttp.Store
	Users       *userservice.UserService
	Assignments assignmenthttp.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// Preflight answers and response headers match what every client of the
	// old API was written against.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type", "X-Amz-Date", "Authorization", "X-Api-Key",
			"X-Amz-Security-Token", "X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           600 * time.Second,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version)
	healthHandler.RegisterRoutes(r)

	r.Use(auth.ClaimsMiddleware(dep.DevBypassAuth))

	projectHandler := projecthttp.New(dep.Projects, dep.Log)
	projectHandler.Register(r.Group("/projects"))

	userHandler := userhttp.New(dep.Users, dep.Log)
	userHandler.Register(r.Group("/users"))

	resolver := assignmentservice.NewResolver(dep.Projects, dep.Users, dep.Log)
	assignmentHandler := assignmenthttp.New(dep.Assignments, resolver, dep.Log)
	assignmentHandler.Register(r.Group("/assignments"))

	return r
}
