package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// UserStats tracks per-user activity counters
type UserStats struct {
	TasksCreated   int `json:"tasks_created"`
	TasksCompleted int `json:"tasks_completed"`
}

func (s UserStats) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *UserStats) Scan(value interface{}) error {
	*s = UserStats{}
	return jsonbScan(value, s)
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"unique;not null" json:"username"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         UserRole   `gorm:"default:'user'" json:"role"`
	Avatar       string     `json:"avatar,omitempty"`
	Preferences  Snapshot   `gorm:"type:jsonb" json:"preferences,omitempty"`
	Stats        UserStats  `gorm:"type:jsonb" json:"stats"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
