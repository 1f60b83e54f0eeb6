package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
)

// Claims is the bearer token payload. Only the email matters: every engine
// re-resolves the member from it on each call.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the Authorization bearer token and stores the caller's
// email in the request context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		var claims Claims
		_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || claims.Email == "" {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// GetEmail retrieves the authenticated member's email from the context.
func GetEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyEmail)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
