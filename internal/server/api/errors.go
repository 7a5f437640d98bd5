package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error onto an HTTP status and a client-safe
// message. Unknown errors become 500 without detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, common.ErrorInvalidCredentials.Error()
	case errors.Is(err, common.ErrorUnauthenticated):
		return http.StatusUnauthorized, common.ErrorUnauthenticated.Error()
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusForbidden, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound.Error()
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
