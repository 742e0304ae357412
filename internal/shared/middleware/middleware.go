package middleware

import (
	"net/http"
	"strings"

	"gatherly/internal/shared/config"
	"gatherly/internal/shared/utils/response"
	"gatherly/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by JWTAuth and read by the feature controllers.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// JWTAuth creates a JWT authentication middleware
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, cfg)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims["user_id"])
		c.Set(ContextUserEmail, claims["email"])
		c.Set(ContextUserRole, claims["role"])
		c.Next()
	}
}

// parseBearerToken extracts and validates the access token from the
// Authorization header. On failure it writes the error response, aborts
// the request and returns ok=false.
func parseBearerToken(c *gin.Context, cfg *config.Config) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header is required")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "authorization header format must be Bearer {token}")
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		abortUnauthorized(c, "invalid or expired token")
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abortUnauthorized(c, "invalid token claims")
		return nil, false
	}

	// Refresh tokens are only good for the refresh endpoint
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
		abortUnauthorized(c, "invalid token type")
		return nil, false
	}

	return claims, true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.RespondJSON(c, "error", http.StatusUnauthorized, message, nil, nil)
	c.Abort()
}

// RequireRoles checks that the authenticated user holds one of the given roles.
// It must run after JWTAuth.
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserRole)
		if !exists {
			abortUnauthorized(c, "user role not found in context")
			return
		}

		userRole, ok := value.(string)
		if !ok {
			abortUnauthorized(c, "user role not found in context")
			return
		}

		for _, role := range requiredRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
	}
}

// RequireAdmin restricts the route to admin accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(string(users.RoleAdmin))
}
