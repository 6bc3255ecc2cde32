package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAccessTokenType is the claim value that marks a token as an admin
// access token. Regular user tokens carry no type claim and never pass.
const AdminAccessTokenType = "ADMIN_ACCESS_TOKEN"

const superAdminRole = "SUPER_ADMIN"

// AdminAuth gates a route behind an admin access token. When allowedRoles is
// non-empty the token's role claim must match one of them; SUPER_ADMIN
// satisfies every requirement. All failures collapse into the same 401 so
// callers cannot tell which check tripped.
func AdminAuth(secret string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		tokenType, _ := claims["type"].(string)
		if tokenType != AdminAccessTokenType {
			abortUnauthorized(c)
			return
		}

		if len(allowedRoles) > 0 {
			role, _ := claims["role"].(string)
			if !roleAllowed(role, allowedRoles) {
				abortUnauthorized(c)
				return
			}
		}

		c.Set("adminClaims", claims)
		c.Next()
	}
}

func roleAllowed(role string, allowedRoles []string) bool {
	if role == superAdminRole {
		return true
	}
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
