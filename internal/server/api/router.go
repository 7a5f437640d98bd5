package api

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Users          UserService
	Jobs           JobService
	Tokens         TokenVerifier
	DB             Pinger
	Logger         logging.Logger
	AllowedOrigins []string
}

// corsConfig allows the configured origins. An empty list or "*" allows
// every origin. Browser extension origins are accepted.
func corsConfig(origins []string) (cors.Config, error) {
	cfg := cors.Config{
		AllowMethods:           []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:           []string{"Origin", "Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName},
		ExposeHeaders:          []string{common.RequestIDHeaderName},
		AllowBrowserExtensions: true,
		MaxAge:                 12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	if err := cfg.Validate(); err != nil {
		return cors.Config{}, fmt.Errorf("cors: %w", err)
	}
	return cfg, nil
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(d Deps) (*gin.Engine, error) {
	corsCfg, err := corsConfig(d.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	h := &handlers{users: d.Users, jobs: d.Jobs, db: d.DB, logger: d.Logger}

	r := gin.New()
	r.Use(RequestLogger(d.Logger), Recovery(d.Logger), cors.New(corsCfg))

	r.GET("/health", h.health)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	jobs := r.Group("/api/jobs", Authenticate(d.Tokens))
	jobs.GET("", h.listJobs)
	jobs.POST("", h.createJob)
	jobs.GET("/:id", h.getJob)
	jobs.PUT("/:id", h.updateJob)
	jobs.DELETE("/:id", h.deleteJob)

	return r, nil
}
