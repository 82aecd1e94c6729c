package services

import (
	"errors"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceInterface interface {
	GetUserById(db *database.Database, id string) (models.User, error)
	UpdateProfile(db *database.Database, id string, updates map[string]interface{}) (models.User, error)
	ChangePassword(db *database.Database, id, currentPassword, newPassword string) error
}

type UserService struct {
	auth AuthServiceInterface
}

func NewUserService(auth AuthServiceInterface) *UserService {
	return &UserService{auth: auth}
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile updates only the caller-editable profile fields.
func (s *UserService) UpdateProfile(db *database.Database, id string, updates map[string]interface{}) (models.User, error) {
	user, err := s.GetUserById(db, id)
	if err != nil {
		return models.User{}, err
	}

	if firstName, ok := updates["first_name"].(string); ok {
		user.FirstName = firstName
	}
	if lastName, ok := updates["last_name"].(string); ok {
		user.LastName = lastName
	}
	if avatar, ok := updates["avatar"].(string); ok {
		user.Avatar = avatar
	}
	if preferences, ok := updates["preferences"].(map[string]interface{}); ok {
		user.Preferences = models.Snapshot(preferences)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := db.DB.Save(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(db *database.Database, id, currentPassword, newPassword string) error {
	user, err := s.GetUserById(db, id)
	if err != nil {
		return err
	}

	if err := s.auth.ComparePasswords(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return db.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}).Error
}

// bumpUserStats adjusts the activity counters kept on the user record.
// Counters are advisory; a missing user is not an error here.
func bumpUserStats(tx *gorm.DB, userID uuid.UUID, createdDelta, completedDelta int) error {
	if userID == uuid.Nil {
		return nil
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.Stats.TasksCreated += createdDelta
	user.Stats.TasksCompleted += completedDelta
	if user.Stats.TasksCompleted < 0 {
		user.Stats.TasksCompleted = 0
	}

	return tx.Model(&user).Update("stats", user.Stats).Error
}

var UserServiceInstance UserServiceInterface
