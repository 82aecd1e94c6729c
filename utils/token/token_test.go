package token

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateToken(userID, "user@example.com", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signed, err := GenerateToken(uuid.New(), "user@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(signed, []byte("other-secret"))
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	signed, err := GenerateToken(uuid.New(), "user@example.com", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func testContext(target string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	c := testContext("/api/tasks", map[string]string{"Authorization": "Bearer abc123"})

	extracted, err := ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "abc123", extracted)
}

func TestExtractTokenPrefersQueryParam(t *testing.T) {
	c := testContext("/ws?token=from-query", map[string]string{"Authorization": "Bearer from-header"})

	extracted, err := ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "from-query", extracted)
}

func TestExtractTokenMissing(t *testing.T) {
	c := testContext("/api/tasks", nil)

	_, err := ExtractToken(c)
	assert.ErrorIs(t, err, ErrAuthHeaderMissing)
}

func TestExtractTokenMalformedHeader(t *testing.T) {
	c := testContext("/api/tasks", map[string]string{"Authorization": "Token abc123"})

	_, err := ExtractToken(c)
	assert.ErrorIs(t, err, ErrInvalidAuthFormat)
}
