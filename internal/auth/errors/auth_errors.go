package autherrors

import (
	"net/http"

	"github.com/CosmosChiang/LifeSwap/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "Invalid username or password",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidToken = &apperror.AppError{
		Code:       "INVALID_TOKEN",
		Message:    "Token is invalid",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrTokenExpired = &apperror.AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    "Token has expired",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrForbidden = &apperror.AppError{
		Code:       apperror.CodeForbidden,
		Message:    "You do not have permission to perform this action",
		HTTPStatus: http.StatusForbidden,
	}
	ErrUserNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}
	ErrUserInactive = &apperror.AppError{
		Code:       apperror.CodeForbidden,
		Message:    "User account is inactive",
		HTTPStatus: http.StatusForbidden,
	}
	ErrUsernameTaken = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "Username or employee ID is already registered",
		HTTPStatus: http.StatusConflict,
	}
)
