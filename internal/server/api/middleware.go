package api

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	requestIDKey ctxKey = "requestID"

	// ginUserIDKey is where the gate stores the user id in gin.Context.Keys.
	ginUserIDKey = "user_id"

	maxRequestIDLen = 128
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserIDFromContext returns the user id the gate attached to ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// RequestIDFromContext returns the id of the current request, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// bearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme is optional and matched case-insensitively.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, common.BearerScheme) {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(header, common.BearerScheme) {
		return ""
	}
	return header
}

// Authenticate is the authorization gate. A missing token is answered with
// 401, a token that fails verification with 403. On success the user id is
// stored in the gin context and in the request context.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if token == "" {
			abortWithError(c, common.ErrorUnauthenticated)
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			abortWithError(c, common.ErrInvalidToken)
			return
		}

		c.Set(ginUserIDKey, userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(logging.ContextWith(ctx, "user_id", userID))
		c.Next()
	}
}

func newRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming != "" {
		if len(incoming) > maxRequestIDLen {
			incoming = incoming[:maxRequestIDLen]
		}
		return incoming
	}
	if id, err := common.MakeRandHexString(16); err == nil {
		return id
	}
	return uuid.NewString()
}

// RequestLogger assigns a request id, echoes it in the response and logs
// one line per request once the handler chain is done.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := newRequestID(c.GetHeader(common.RequestIDHeaderName))
		c.Header(common.RequestIDHeaderName, id)
		ctx := context.WithValue(c.Request.Context(), requestIDKey, id)
		c.Request = c.Request.WithContext(logging.ContextWith(ctx, "request_id", id))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if status >= 500 {
			log.Error(c.Request.Context(), "request", args...)
			return
		}
		log.Info(c.Request.Context(), "request", args...)
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.Error(c.Request.Context(), "panic recovered", "error", err)
		abortWithError(c, common.ErrorInternal)
	})
}
