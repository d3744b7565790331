package notification

import (
	"context"
	"errors"

	notificationerrors "github.com/CosmosChiang/LifeSwap/internal/notification/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListForRecipient(ctx context.Context, recipientEmployeeID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientEmployeeID, id string) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListForRecipient(ctx context.Context, recipientEmployeeID string) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByRecipient(ctx, recipientEmployeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// MarkRead flips the read flag. The read flag is the only mutable field of
// a notification; recipients may only touch their own rows.
func (s *service) MarkRead(ctx context.Context, recipientEmployeeID, id string) (NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if n.RecipientEmployeeID != recipientEmployeeID {
		s.logger.Warn("mark read denied",
			zap.String("notification_id", id),
			zap.String("recipient", n.RecipientEmployeeID),
			zap.String("actor", recipientEmployeeID),
		)
		return NotificationResponse{}, notificationerrors.ErrNotRecipient
	}

	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			s.logger.Error("mark read persist failed", zap.String("notification_id", id), zap.Error(err))
			return NotificationResponse{}, err
		}
		n.IsRead = true
	}

	return mapToResponse(*n), nil
}
