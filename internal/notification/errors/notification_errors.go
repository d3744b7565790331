package notificationerrors

import (
	"net/http"

	"github.com/CosmosChiang/LifeSwap/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"notification belongs to another employee",
		http.StatusForbidden,
	)
)
