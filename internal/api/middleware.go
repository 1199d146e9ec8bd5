package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitlog/workout-tracker/internal/repository"
	"fitlog/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey      = "userID"
	ContextTokenIDKey     = "tokenID"
	ContextTokenExpiryKey = "tokenExpiry"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Tokens that have been revoked via logout are rejected even if they
// have not expired yet.
func AuthMiddleware(jwtSecret string, tokenRepo repository.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		// Parse and validate the token
		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Validate the alg is what we expect:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			// Return the secret key
			return []byte(jwtSecret), nil
		})

		// Handle errors during parsing/validation
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" || claims.ID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
			abortWithError(c, http.StatusUnauthorized, "Token has expired (claim check)")
			return
		}

		// Reject tokens invalidated by an earlier logout.
		revoked, err := tokenRepo.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to verify token status")
			return
		}
		if revoked {
			abortWithError(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		// --- Token is valid ---
		// Set user information in the context for downstream handlers
		c.Set(ContextUserIDKey, claims.UserID) // Store UserID as string (Hex representation)
		c.Set(ContextTokenIDKey, claims.ID)    // jti, needed by the logout handler
		c.Set(ContextTokenExpiryKey, claims.ExpiresAt.Time)

		// Continue to the next handler
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}

// getOwnerIDFromContext returns the authenticated user's ID as an ObjectID.
// Every protected handler resolves its owner through this helper, so a
// request can never act on another user's data.
func getOwnerIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	ownerID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID format in context")
	}
	return ownerID, nil
}

// getTokenIDFromContext returns the jti of the token carried by the request.
func getTokenIDFromContext(c *gin.Context) (string, time.Time, error) {
	idRaw, exists := c.Get(ContextTokenIDKey)
	if !exists {
		return "", time.Time{}, errors.New("token ID not found in context")
	}
	tokenID, ok := idRaw.(string)
	if !ok {
		return "", time.Time{}, errors.New("invalid token ID type in context")
	}
	expRaw, exists := c.Get(ContextTokenExpiryKey)
	if !exists {
		return "", time.Time{}, errors.New("token expiry not found in context")
	}
	expiresAt, ok := expRaw.(time.Time)
	if !ok {
		return "", time.Time{}, errors.New("invalid token expiry type in context")
	}
	return tokenID, expiresAt, nil
}
