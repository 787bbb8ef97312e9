package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"github.com/sednex/community-backend/pkg/logger"
)

const identityKey = "identity"

// Authenticator resolves a bearer token to a registered, active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*types.Identity, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
		return "", false
	}
	return strings.TrimSpace(tokenString), true
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// Authenticate rejects requests without a valid bearer token. Failures are
// answered with a bare {message} body.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithMessage(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *types.AppError
			if errors.As(err, &appErr) {
				abortWithMessage(c, utils.StatusFor(appErr.Kind), appErr.Message)
				return
			}
			logger.WithFields(logger.Fields{"error": err.Error()}).Error("Token verification failed")
			abortWithMessage(c, http.StatusInternalServerError, "Authentication unavailable")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a usable token is sent
// and lets the request through either way.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// RequireRole lets through callers holding one of roles. It must run after
// Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	message := "Access denied"
	if len(roles) == 1 && roles[0] == types.RoleAdmin {
		message = "Admin access only"
	}
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			abortWithMessage(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !identity.HasRole(roles...) {
			abortWithMessage(c, http.StatusForbidden, message)
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(types.RoleAdmin)
}

func UserOrAdmin() gin.HandlerFunc {
	return RequireRole(types.RoleUser, types.RoleAdmin)
}

// CurrentIdentity returns the caller set by Authenticate or OptionalAuth,
// or nil.
func CurrentIdentity(c *gin.Context) *types.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*types.Identity)
	return identity
}
