package requesterrors

import (
	"net/http"

	"github.com/CosmosChiang/LifeSwap/internal/shared/apperror"
)

var (
	ErrEmployeeIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrOvertimeTimesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"overtime request requires start_time and end_time",
		http.StatusBadRequest,
	)
	ErrInvalidRequestType = apperror.New(
		apperror.CodeInvalidInput,
		"request_type must be OVERTIME or COMP_OFF",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid request status transition",
		http.StatusBadRequest,
	)
	ErrReviewerIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reviewer_id is required",
		http.StatusBadRequest,
	)
)
