package middlewares

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/gin-gonic/gin"
)

const roleLookupTimeout = 3 * time.Second

// UserLoader loads the current user, the role is not part of the session token.
type UserLoader interface {
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

// RequireRole must run after AuthRequired. Users with another role get 403.
func RequireRole(users UserLoader, roles ...domain.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, roleLookupTimeout)
		defer cancel()

		user, err := users.Me(ctx, CurrentUserID(c))
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
			return
		}
		if !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden for role " + string(user.Role)})
			return
		}
		c.Next()
	}
}
