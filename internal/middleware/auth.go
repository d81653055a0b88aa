package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/productivity-api/internal/auth"
	"github.com/yukikurage/productivity-api/internal/constants"
	apierrors "github.com/yukikurage/productivity-api/internal/errors"
)

const bearerPrefix = "Bearer "

// RequireAuth authenticates the request from its Authorization header and
// stores the user ID in the context. The token is trusted on signature
// alone; no database lookup happens here.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c, "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, bearerPrefix), secret)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidSubject) {
				apierrors.Unauthorized(c, "Invalid user ID in token")
			} else {
				apierrors.Unauthorized(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}
