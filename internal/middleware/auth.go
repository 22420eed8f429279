package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/LunaStudioApps/salon-scheduler/internal/config"
)

const (
	ContextUserID         = "userID"
	ContextSalonID        = "salonID"
	ContextUserRole       = "userRole"
	ContextProfessionalID = "professionalID"
)

const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		c.Set(ContextUserRole, role)

		if sub, ok := claims["sub"].(float64); ok {
			c.Set(ContextUserID, uint(sub))
		}
		if salonID, ok := claims["salonId"].(float64); ok {
			c.Set(ContextSalonID, uint(salonID))
		}
		if proID, ok := claims["professionalId"].(float64); ok {
			c.Set(ContextProfessionalID, uint(proID))
		}

		// owners and professionals always act inside one salon
		if role != RoleAdmin {
			if _, has := c.Get(ContextSalonID); !has {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
				return
			}
		}

		c.Next()
	}
}

// RequireRole gates a route group to one role; run it after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(ContextUserRole)
		if got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
			return
		}
		c.Next()
	}
}
