package auth

import (
	"context"

	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers inserts one account per role when the users table is empty.
// Intended for local development and first boot; production environments
// should register real accounts and rotate these away.
func SeedUsers(ctx context.Context, repo Repository, clk clock.Clock, logger *zap.Logger) error {
	count, err := repo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		employeeID string
		username   string
		email      string
		department string
		role       string
		password   string
	}{
		{"E001", "employee", "employee@lifeswap.local", "ENG", RoleEmployee, "Employee123!"},
		{"M001", "manager", "manager@lifeswap.local", "ENG", RoleManager, "Manager123!"},
		{"HR001", "hr", "hr@lifeswap.local", "HR", RoleHR, "Hr123456!"},
		{"ADMIN001", "admin", "admin@lifeswap.local", "OPS", RoleAdmin, "Admin123!"},
	}

	now := clk.Now()
	for _, s := range seeds {
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &User{
			ID:             uuid.New(),
			EmployeeID:     s.employeeID,
			Username:       s.username,
			Email:          s.email,
			DepartmentCode: s.department,
			Role:           s.role,
			PasswordHash:   string(hashed),
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("seeded user", zap.String("employee_id", s.employeeID), zap.String("role", s.role))
	}

	return nil
}
