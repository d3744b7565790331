package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/events"
	"github.com/CosmosChiang/LifeSwap/internal/messaging/kafka"
	"github.com/CosmosChiang/LifeSwap/internal/notification"
	requesterrors "github.com/CosmosChiang/LifeSwap/internal/request/errors"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier is the outbound channel contract. Failures are logged and
// swallowed; a transition never rolls back because a webhook is down.
type Notifier interface {
	SendMessage(ctx context.Context, message string) error
}

type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (RequestResponse, error)
	GetAll(ctx context.Context, employeeID, status string) ([]RequestResponse, error)
	GetByID(ctx context.Context, id string) (RequestResponse, error)
	Submit(ctx context.Context, id string) (RequestResponse, error)
	Approve(ctx context.Context, id string, input ReviewRequestInput) (RequestResponse, error)
	Reject(ctx context.Context, id string, input ReviewRequestInput) (RequestResponse, error)
	Cancel(ctx context.Context, id string) (RequestResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	notifications notification.Repository
	outbox        kafka.OutboxRepository
	notifier      Notifier
	clock         clock.Clock
	eventTopic    string
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	notifications notification.Repository,
	outbox kafka.OutboxRepository,
	notifier Notifier,
	clk clock.Clock,
	eventTopic string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		notifications: notifications,
		outbox:        outbox,
		notifier:      notifier,
		clock:         clk,
		eventTopic:    eventTopic,
		logger:        l,
	}
}

func (s *service) Create(ctx context.Context, input CreateRequestInput) (RequestResponse, error) {
	s.logger.Debug("create request requested",
		zap.String("request_type", input.RequestType),
		zap.String("employee_id", input.EmployeeID),
		zap.String("request_date", input.RequestDate),
	)

	req, err := buildRequest(input)
	if err != nil {
		s.logger.Warn("create request validation failed", zap.Error(err))
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, req); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("create request success",
		zap.String("request_id", req.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*req), nil
}

func (s *service) GetAll(ctx context.Context, employeeID, status string) ([]RequestResponse, error) {
	rows, err := s.repo.FindAll(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RequestResponse, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	return mapToResponse(*req), nil
}

func (s *service) Submit(ctx context.Context, id string) (RequestResponse, error) {
	return s.transition(ctx, id, StatusSubmitted, func(req *Request, now time.Time) error {
		if !canSubmit(req) {
			return requesterrors.ErrInvalidStatusTransition
		}
		req.Status = StatusSubmitted
		req.SubmittedAt = &now
		return nil
	}, nil)
}

func (s *service) Approve(ctx context.Context, id string, input ReviewRequestInput) (RequestResponse, error) {
	reviewerID := strings.TrimSpace(input.ReviewerID)
	if reviewerID == "" {
		return RequestResponse{}, requesterrors.ErrReviewerIDRequired
	}

	return s.transition(ctx, id, StatusApproved, func(req *Request, now time.Time) error {
		if !canApprove(req) {
			return requesterrors.ErrInvalidStatusTransition
		}
		req.Status = StatusApproved
		req.ReviewerID = &reviewerID
		req.ReviewComment = input.Comment
		req.ReviewedAt = &now
		return nil
	}, func(req *Request) *notification.Notification {
		return reviewNotification(req, notification.TitleRequestApproved,
			fmt.Sprintf("你的申請 %s 已核准。", req.ID))
	})
}

func (s *service) Reject(ctx context.Context, id string, input ReviewRequestInput) (RequestResponse, error) {
	reviewerID := strings.TrimSpace(input.ReviewerID)
	if reviewerID == "" {
		return RequestResponse{}, requesterrors.ErrReviewerIDRequired
	}

	return s.transition(ctx, id, StatusRejected, func(req *Request, now time.Time) error {
		if !canReject(req) {
			return requesterrors.ErrInvalidStatusTransition
		}
		req.Status = StatusRejected
		req.ReviewerID = &reviewerID
		req.ReviewComment = input.Comment
		req.ReviewedAt = &now
		return nil
	}, func(req *Request) *notification.Notification {
		return reviewNotification(req, notification.TitleRequestRejected,
			fmt.Sprintf("你的申請 %s 已被拒絕。", req.ID))
	})
}

func (s *service) Cancel(ctx context.Context, id string) (RequestResponse, error) {
	return s.transition(ctx, id, StatusCancelled, func(req *Request, now time.Time) error {
		if !canCancel(req) {
			return requesterrors.ErrInvalidStatusTransition
		}
		req.Status = StatusCancelled
		req.CancelledAt = &now
		return nil
	}, nil)
}

// transition applies a guarded status change inside one transaction. The
// outbox row and any in-store notification commit atomically with the
// request row; the Teams forward happens after commit and is best-effort.
func (s *service) transition(
	ctx context.Context,
	id string,
	targetStatus string,
	apply func(req *Request, now time.Time) error,
	notify func(req *Request) *notification.Notification,
) (RequestResponse, error) {
	s.logger.Debug("transition request status requested",
		zap.String("request_id", id),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	req, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	now := s.clock.Now()
	if err := apply(req, now); err != nil {
		s.logger.Warn("transition request status invalid",
			zap.String("request_id", id),
			zap.String("from_status", req.Status),
			zap.String("to_status", targetStatus),
		)
		return RequestResponse{}, err
	}

	if err := qtx.Update(ctx, req); err != nil {
		s.logger.Error("transition request persist failed",
			zap.String("request_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if notify != nil {
		if err := s.notifications.WithTx(tx).Create(ctx, notify(req)); err != nil {
			s.logger.Error("transition request notification failed",
				zap.String("request_id", id),
				zap.Error(err),
			)
			return RequestResponse{}, err
		}
	}

	if err := s.createOutboxEvent(ctx, tx, req, now); err != nil {
		s.logger.Error("transition request outbox failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition request commit failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("transition request status success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)

	s.forwardStatusChanged(ctx, req)

	return mapToResponse(*req), nil
}

func (s *service) createOutboxEvent(ctx context.Context, tx *sql.Tx, req *Request, now time.Time) error {
	payload, err := json.Marshal(events.RequestStatusChangedEvent{
		RequestID:      req.ID.String(),
		RequestType:    req.RequestType,
		EmployeeID:     req.EmployeeID,
		DepartmentCode: req.DepartmentCode,
		Status:         req.Status,
		OccurredAt:     now,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: events.AggregateTypeRequest,
		AggregateID:   req.ID.String(),
		EventType:     events.EventTypeRequestStatusChanged,
		Topic:         s.eventTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) forwardStatusChanged(ctx context.Context, req *Request) {
	message := fmt.Sprintf(
		"[LifeSwap] Request %s is %s. Employee: %s, Department: %s, Date: %s.",
		req.ID, req.Status, req.EmployeeID, req.DepartmentCode, req.RequestDate.Format("2006-01-02"),
	)
	if err := s.notifier.SendMessage(ctx, message); err != nil {
		s.logger.Warn("forward status change failed",
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
	}
}

func reviewNotification(req *Request, title, message string) *notification.Notification {
	id := req.ID
	return &notification.Notification{
		ID:                  uuid.New(),
		RecipientEmployeeID: req.EmployeeID,
		Title:               title,
		Message:             message,
		RequestID:           &id,
	}
}

func buildRequest(input CreateRequestInput) (*Request, error) {
	if input.RequestType != TypeOvertime && input.RequestType != TypeCompOff {
		return nil, requesterrors.ErrInvalidRequestType
	}

	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		return nil, requesterrors.ErrEmployeeIDRequired
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, requesterrors.ErrReasonRequired
	}

	if input.RequestType == TypeOvertime && (!hasTimeValue(input.StartTime) || !hasTimeValue(input.EndTime)) {
		return nil, requesterrors.ErrOvertimeTimesRequired
	}

	requestDate, err := parseDate(input.RequestDate)
	if err != nil {
		return nil, err
	}

	startTime, err := parseTimeOfDay(requestDate, input.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTimeOfDay(requestDate, input.EndTime)
	if err != nil {
		return nil, err
	}

	departmentCode := strings.TrimSpace(input.DepartmentCode)
	if departmentCode == "" {
		departmentCode = DefaultDepartmentCode
	}

	return &Request{
		ID:             uuid.New(),
		RequestType:    input.RequestType,
		EmployeeID:     employeeID,
		DepartmentCode: departmentCode,
		RequestDate:    requestDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Reason:         reason,
		Status:         StatusDraft,
	}, nil
}

// hasTimeValue treats a whitespace-only value the same as an absent one,
// matching what parseTimeOfDay would later store.
func hasTimeValue(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// parseTimeOfDay anchors an HH:MM value on the request date, in UTC. An
// end before the start is stored as-is; Hours treats it as zero rather
// than wrapping to the next day.
func parseTimeOfDay(date time.Time, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}

	t, err := time.Parse("15:04", strings.TrimSpace(*v))
	if err != nil {
		return nil, requesterrors.ErrInvalidTimeFormat
	}

	anchored := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &anchored, nil
}
