package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"merchly/shop-api/internal/identity"
	"merchly/shop-api/internal/model"
)

const (
	authUserKey  = "authUser"
	authTokenKey = "authToken"
)

// Authenticator resolves a bearer token to its account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// NewAuthMiddleware guards a route group with bearer-token authentication.
// On success the resolved account and the raw token are attached to the
// context; handlers read them back through CurrentUser and CurrentToken, so
// an authenticated request is distinguishable from a plain one by type, not
// by convention.
func NewAuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"error":     identity.ErrUnauthorized.Message,
				"requestID": requestID,
			})
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := identity.ErrUnauthorized.Message

			var ie *identity.Error
			if !errors.As(err, &ie) {
				status = http.StatusInternalServerError
				msg = "Internal server error"

				zap.L().Error("Failed to authenticate request", zap.Error(err), zap.String("requestID", requestID))
			}

			c.AbortWithStatusJSON(status, gin.H{
				"success":   false,
				"error":     msg,
				"requestID": requestID,
			})
			return
		}

		c.Set(authUserKey, user)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the account resolved by the auth middleware.
func CurrentUser(c *gin.Context) *model.User {
	return c.MustGet(authUserKey).(*model.User)
}

// CurrentToken returns the raw bearer token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.MustGet(authTokenKey).(string)
}
