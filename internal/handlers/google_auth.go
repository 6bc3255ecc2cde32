package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/config"
	"storefront/internal/models"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleScopes      = "openid email profile"

	googleProviderName = "google"
)

// GoogleProfile is the subset of the Google userinfo payload the auth flow
// consumes.
type GoogleProfile struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleAuthURL hands the client the Google authorization URL to redirect to.
func GoogleAuthURL(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := url.Values{}
		params.Set("client_id", cfg.GoogleClientID)
		params.Set("redirect_uri", cfg.GoogleRedirectURI)
		params.Set("scope", googleScopes)
		params.Set("response_type", "code")

		c.JSON(http.StatusOK, gin.H{"url": googleAuthURL + "?" + params.Encode()})
	}
}

// GoogleCallback exchanges the authorization code, fetches the userinfo
// profile and signs the user in, creating or linking the account by email.
func GoogleCallback(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Query("code"))
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		profile, err := fetchGoogleProfile(ctx, cfg, code)
		if err != nil {
			log.Println("[AUTH] [ERROR] google exchange failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "google authentication failed"})
			return
		}

		handleGoogleAuth(c, db, cfg, profile)
	}
}

func handleGoogleAuth(c *gin.Context, db *mongo.Database, cfg config.Config, profile GoogleProfile) {
	if !profile.VerifiedEmail {
		log.Println("[AUTH] [ERROR] google email not verified:", profile.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google email not verified"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users := db.Collection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	switch {
	case err == nil:
		if !user.HasProvider(googleProviderName) {
			update := bson.M{
				"$push": bson.M{"providers": models.Provider{
					Provider:   googleProviderName,
					ProviderID: email,
				}},
				"$set": bson.M{"updatedAt": time.Now()},
			}
			opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
			if err := users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&user); err != nil {
				log.Println("[AUTH] [ERROR] google provider link failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
		}
	case err == mongo.ErrNoDocuments:
		now := time.Now()
		user = models.User{
			Email:    email,
			Username: profile.Name,
			Avatar:   profile.Picture,
			Password: "",
			Providers: []models.Provider{{
				Provider:   googleProviderName,
				ProviderID: email,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		res, err := users.InsertOne(ctx, user)
		if err != nil {
			log.Println("[AUTH] [ERROR] google signup insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)
	default:
		log.Println("[AUTH] [ERROR] google user lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	tokens, err := issueTokenPair(user.ID, user.Email, cfg)
	if err != nil {
		log.Println("[AUTH] [ERROR] google token generation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	log.Println("[AUTH] [INFO] google sign-in succeeded:", email)
	c.JSON(http.StatusOK, authResponse(user, tokens, cfg))
}

func fetchGoogleProfile(ctx context.Context, cfg config.Config, code string) (GoogleProfile, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", cfg.GoogleClientID)
	form.Set("client_secret", cfg.GoogleClientSecret)
	form.Set("redirect_uri", cfg.GoogleRedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return GoogleProfile{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return GoogleProfile{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return GoogleProfile{}, err
	}
	if res.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("token exchange failed with status %d", res.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return GoogleProfile{}, err
	}
	if token.AccessToken == "" {
		return GoogleProfile{}, fmt.Errorf("token exchange returned no access token")
	}

	infoReq, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return GoogleProfile{}, err
	}
	infoReq.Header.Set("Authorization", "Bearer "+token.AccessToken)

	infoRes, err := http.DefaultClient.Do(infoReq)
	if err != nil {
		return GoogleProfile{}, err
	}
	defer infoRes.Body.Close()

	if infoRes.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("userinfo fetch failed with status %d", infoRes.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(infoRes.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, err
	}
	return profile, nil
}
