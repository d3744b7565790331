package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "github.com/CosmosChiang/LifeSwap/internal/auth/errors"
	"github.com/CosmosChiang/LifeSwap/internal/config"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx context.Context, input LoginInput) (LoginResponse, error)
	Register(ctx context.Context, input RegisterInput) (UserResponse, error)
	GetMe(ctx context.Context, employeeID string) (UserResponse, error)
}

type service struct {
	repo   Repository
	cfg    config.JWTConfig
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, cfg config.JWTConfig, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, cfg: cfg, clock: clk, logger: l}
}

func (s *service) Login(ctx context.Context, input LoginInput) (LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("employee_id", user.EmployeeID))

	return LoginResponse{
		AccessToken: token,
		User:        mapToUserResponse(user),
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	department := strings.TrimSpace(input.DepartmentCode)
	if department == "" {
		department = request.DefaultDepartmentCode
	}

	now := s.clock.Now()
	user := &User{
		ID:             uuid.New(),
		EmployeeID:     strings.TrimSpace(input.EmployeeID),
		Username:       strings.TrimSpace(input.Username),
		Email:          strings.TrimSpace(input.Email),
		DepartmentCode: department,
		Role:           input.Role,
		PasswordHash:   string(hashed),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return UserResponse{}, autherrors.ErrUsernameTaken
		}
		return UserResponse{}, err
	}

	s.logger.Info("user registered", zap.String("employee_id", user.EmployeeID), zap.String("role", user.Role))

	return mapToUserResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (UserResponse, error) {
	user, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToUserResponse(user), nil
}

func (s *service) generateToken(user *User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.EmployeeID,
		"department":  user.DepartmentCode,
		"role":        user.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(s.cfg.AccessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
