package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// JobService is the per-user job CRUD behind /api/jobs.
type JobService interface {
	List(ctx context.Context, userID string) ([]*models.Job, error)
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	Create(ctx context.Context, userID string, in services.JobInput) (*models.Job, error)
	Update(ctx context.Context, userID, id string, in services.JobInput) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) error
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

type handlers struct {
	users  UserService
	jobs   JobService
	db     Pinger
	logger logging.Logger
}

func (h *handlers) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (h *handlers) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// userID reads the identity set by Authenticate. A missing identity means
// the route was wired without the gate, which is answered with 401.
func userID(c *gin.Context) (string, bool) {
	id, ok := UserIDFromContext(c.Request.Context())
	if !ok {
		abortWithError(c, common.ErrorUnauthenticated)
	}
	return id, ok
}

func (h *handlers) listJobs(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.List(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobListResponse(jobs))
}

func (h *handlers) getJob(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobResponse(job))
}

func (h *handlers) createJob(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newJobResponse(job))
}

func (h *handlers) updateJob(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), uid, c.Param("id"), req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobResponse(job))
}

func (h *handlers) deleteJob(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
