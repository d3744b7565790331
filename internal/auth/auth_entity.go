package auth

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Username       string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email          string    `gorm:"type:varchar(255);not null"`
	DepartmentCode string    `gorm:"type:varchar(64);not null"`
	Role           string    `gorm:"type:varchar(32);not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}
