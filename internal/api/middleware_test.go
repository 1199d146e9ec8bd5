package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitlog/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-test-secret"

// memoryTokenRepo is a minimal in-memory revocation store for tests.
type memoryTokenRepo struct {
	revoked map[string]time.Time
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{revoked: make(map[string]time.Time)}
}

func (r *memoryTokenRepo) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *memoryTokenRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func newProtectedRouter(tokenRepo *memoryTokenRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(testSecret, tokenRepo), func(c *gin.Context) {
		ownerID, err := getOwnerIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"ownerId": ownerID.Hex()})
	})
	return router
}

func signToken(t *testing.T, secret, jti string, expiresAt time.Time) string {
	t.Helper()
	claims := &service.Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newProtectedRouter(newMemoryTokenRepo())
	rec := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(newMemoryTokenRepo())
	rec := doRequest(router, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := newProtectedRouter(newMemoryTokenRepo())
	token := signToken(t, "some-other-secret", "jti-1", time.Now().Add(time.Hour))
	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := newProtectedRouter(newMemoryTokenRepo())
	token := signToken(t, testSecret, "jti-1", time.Now().Add(-time.Minute))
	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	tokenRepo := newMemoryTokenRepo()
	router := newProtectedRouter(tokenRepo)

	token := signToken(t, testSecret, "jti-revoked", time.Now().Add(time.Hour))

	// Valid before revocation.
	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, tokenRepo.Revoke(context.Background(), "jti-revoked", time.Now().Add(time.Hour)))

	rec = doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := newProtectedRouter(newMemoryTokenRepo())
	token := signToken(t, testSecret, "jti-ok", time.Now().Add(time.Hour))
	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ownerId")
}

func TestCurrentUser_EchoesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(testSecret, newMemoryTokenRepo()), currentUser)

	token := signToken(t, testSecret, "jti-me", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "userId")
}

func TestCurrentUser_MissingIdentityIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// No auth middleware: the handler finds no identity in the context and
	// maps it to 401 like every other handler.
	router.GET("/me", currentUser)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
