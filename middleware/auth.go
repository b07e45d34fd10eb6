package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	jwtv4 "github.com/golang-jwt/jwt/v4"

	"iconstore-backend/models"
	"iconstore-backend/utils"
)

// TokenVerifier checks a bearer token and returns its claims. Two
// implementations exist: self-issued HS256 tokens (native mode) and
// identity-provider RS256 tokens verified against a JWKS endpoint
// (federated mode).
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// NativeVerifier validates tokens this service issued itself.
type NativeVerifier struct{}

func (NativeVerifier) Verify(token string) (*utils.Claims, error) {
	return utils.ValidateToken(token)
}

// FederatedVerifier validates RS256 tokens against the provider's JWKS,
// cached and refreshed in the background.
type FederatedVerifier struct {
	jwks *keyfunc.JWKS
}

func NewFederatedVerifier(jwksURL string) (*FederatedVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &FederatedVerifier{jwks: jwks}, nil
}

func (v *FederatedVerifier) Verify(tokenString string) (*utils.Claims, error) {
	token, err := jwtv4.Parse(tokenString, v.jwks.Keyfunc,
		jwtv4.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, err
	}
	mapClaims, ok := token.Claims.(jwtv4.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	claims := &utils.Claims{Role: models.RoleUser}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok && role != "" {
		claims.Role = role
	}
	return claims, nil
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
