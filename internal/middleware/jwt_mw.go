package middleware

import (
	"context"
	"net/http"
	"strings"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	AuthUserKey     = "authUser"
	AuthUsernameKey = "authUsername"
	AuthRoleKey     = "authRole"
)

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// AccountLookup resolves the account a token was issued for.
// service.AuthService satisfies it.
type AccountLookup interface {
	GetProfile(ctx context.Context, userID int) (*model.User, error)
}

// JWTAuthMiddleware creates a middleware for JWT authentication. A missing or
// malformed Authorization header is answered with 401, a token that fails
// verification with 403. The role placed in the context is the one currently
// stored for the account, not one frozen into the token.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithMessage(c, http.StatusUnauthorized, "Access token required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithMessage(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			log.WithField("request_id", c.GetString(RequestIDKey)).WithError(err).Debug("rejected bearer token")
			abortWithMessage(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		user, err := accounts.GetProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			status := apperror.HTTPStatus(err)
			if status >= http.StatusInternalServerError {
				log.WithFields(log.Fields{
					"request_id": c.GetString(RequestIDKey),
					"user_id":    claims.UserID,
				}).WithError(err).Error("failed to load token account")
			}
			abortWithMessage(c, status, apperror.PublicMessage(err))
			return
		}

		c.Set(AuthUserKey, user.ID)
		c.Set(AuthUsernameKey, user.Username)
		c.Set(AuthRoleKey, user.Role)

		c.Next()
	}
}
