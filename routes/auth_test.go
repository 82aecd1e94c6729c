package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/middleware"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthService struct{}

func (s *stubAuthService) Register(db *database.Database, input services.RegisterInput) (models.User, string, error) {
	if input.Email == "taken@example.com" {
		return models.User{}, "", services.ErrResourceExists
	}
	return models.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
	}, "signed-token", nil
}

func (s *stubAuthService) Login(db *database.Database, email, password string) (models.User, string, error) {
	if email == "user@example.com" && password == "correct-horse" {
		return models.User{ID: uuid.New(), Email: email}, "signed-token", nil
	}
	if email == "inactive@example.com" {
		return models.User{}, "", services.ErrAccountDeactivated
	}
	return models.User{}, "", services.ErrInvalidCredentials
}

func (s *stubAuthService) ValidateToken(tokenString string) (*services.JWTClaims, error) {
	return nil, services.ErrInvalidToken
}

func (s *stubAuthService) HashPassword(password string) (string, error) { return password, nil }

func (s *stubAuthService) ComparePasswords(hashedPassword, password string) error { return nil }

type stubUserService struct{}

func (s *stubUserService) GetUserById(db *database.Database, id string) (models.User, error) {
	return models.User{ID: uuid.Must(uuid.Parse(id)), Email: "user@example.com"}, nil
}

func (s *stubUserService) UpdateProfile(db *database.Database, id string, updates map[string]interface{}) (models.User, error) {
	user := models.User{ID: uuid.Must(uuid.Parse(id))}
	if firstName, ok := updates["first_name"].(string); ok {
		user.FirstName = firstName
	}
	return user, nil
}

func (s *stubUserService) ChangePassword(db *database.Database, id, currentPassword, newPassword string) error {
	if currentPassword != "correct-horse" {
		return services.ErrInvalidCredentials
	}
	return nil
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	public := router.Group("/api")
	RegisterAuthRoutes(public, &database.Database{}, &stubAuthService{})

	authenticated := router.Group("/api")
	authenticated.Use(middleware.AuthMiddleware(testJWTSecret))
	RegisterUserRoutes(authenticated, &database.Database{}, &stubUserService{})

	return router
}

func TestRegister(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"newuser","email":"new@example.com","password":"longenough1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "newuser", resp.User.Username)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"another","email":"taken@example.com","password":"longenough1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"username":"newuser","email":"new@example.com","password":"short"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")
}

func TestLogin(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"email":"user@example.com","password":"correct-horse"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"email":"user@example.com","password":"wrong"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	router := setupAuthRouter()

	body := []byte(`{"email":"inactive@example.com","password":"whatever1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	router := setupAuthRouter()

	userID := uuid.New()
	signed, err := token.GenerateToken(userID, "user@example.com", "user", testJWTSecret, time.Hour)
	assert.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, userID, user.ID)
}

func TestGetCurrentUserWithoutToken(t *testing.T) {
	router := setupAuthRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	router := setupAuthRouter()

	signed, err := token.GenerateToken(uuid.New(), "user@example.com", "user", testJWTSecret, time.Hour)
	assert.NoError(t, err)

	body := []byte(`{"currentPassword":"wrong","newPassword":"longenough1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/change-password", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
