package reporterrors

import (
	"net/http"

	"github.com/CosmosChiang/LifeSwap/internal/shared/apperror"
)

var (
	ErrInvalidMonthlyLimit = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_overtime_hour_limit must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidRequestTypeFilter = apperror.New(
		apperror.CodeInvalidInput,
		"request_type must be OVERTIME or COMP_OFF",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonthlyLimitFormat = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_overtime_hour_limit must be a number",
		http.StatusBadRequest,
	)
)
