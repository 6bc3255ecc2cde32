package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type AdminSigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminSignin authenticates an active admin and issues an access token typed
// as an admin token and carrying the role claim the guard checks.
func AdminSignin(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminSigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{
			"email":    email,
			"isActive": true,
		}).Decode(&admin)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[ADMIN-AUTH] [ERROR] signin lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			log.Println("[ADMIN-AUTH] [ERROR] invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		claims := jwt.MapClaims{
			"sub":   admin.ID.Hex(),
			"email": admin.Email,
			"role":  admin.Role,
			"type":  middleware.AdminAccessTokenType,
			"exp":   time.Now().Add(cfg.AccessTokenTTL).Unix(),
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Println("[ADMIN-AUTH] [ERROR] token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[ADMIN-AUTH] [INFO] admin signed in:", email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken":    signed,
			"accessTokenTtl": cfg.AccessTokenTTLMinutes(),
			"admin": gin.H{
				"id":       admin.ID.Hex(),
				"username": admin.Username,
				"email":    admin.Email,
				"role":     admin.Role,
				"avatar":   admin.Avatar,
			},
		})
	}
}
