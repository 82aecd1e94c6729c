package services

import (
	"errors"
	"time"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/utils/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, string, error)
	Login(db *database.Database, email, password string) (models.User, string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

func (s *AuthService) Register(db *database.Database, input RegisterInput) (models.User, string, error) {
	var existing int64
	err := db.DB.Model(&models.User{}).
		Where("email = ? OR username = ?", input.Email, input.Username).
		Count(&existing).Error
	if err != nil {
		return models.User{}, "", err
	}
	if existing > 0 {
		return models.User{}, "", ErrResourceExists
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return models.User{}, "", err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, "", tx.Error
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	event, err := models.NewEvent(string(broker.UserRegistered), "user", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
	})
	if err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}
	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	signed, err := token.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return models.User{}, "", err
	}

	return user, signed, nil
}

func (s *AuthService) Login(db *database.Database, email, password string) (models.User, string, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, "", ErrAccountDeactivated
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := db.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
		return models.User{}, "", err
	}

	signed, err := token.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return models.User{}, "", err
	}

	return user, signed, nil
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
