package automation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/config"
	"github.com/CosmosChiang/LifeSwap/internal/notification"
	"github.com/CosmosChiang/LifeSwap/internal/report"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestStore is the slice of request storage the jobs read.
type RequestStore interface {
	FindSubmittedBefore(ctx context.Context, cutoff time.Time) ([]request.Request, error)
}

// NotificationStore writes job notifications and answers the reminder
// dedup lookup keyed on (request id, day).
type NotificationStore interface {
	Create(ctx context.Context, n *notification.Notification) error
	HasForRequestSince(ctx context.Context, requestID uuid.UUID, title string, since time.Time) (bool, error)
}

// Reports computes the daily digest through the same aggregation the
// on-demand reporting surface uses.
type Reports interface {
	Summary(ctx context.Context, q report.Query) (report.Summary, error)
}

type Notifier interface {
	SendMessage(ctx context.Context, message string) error
}

// Workflow holds the two automation jobs. Each job is a single idempotent
// iteration; the Scheduler owns timing and fault isolation.
type Workflow struct {
	requests      RequestStore
	notifications NotificationStore
	reports       Reports
	notifier      Notifier
	cfg           config.AutomationConfig
	clock         clock.Clock
	logger        *zap.Logger
}

func NewWorkflow(
	requests RequestStore,
	notifications NotificationStore,
	reports Reports,
	notifier Notifier,
	cfg config.AutomationConfig,
	clk clock.Clock,
	logger ...*zap.Logger,
) *Workflow {
	l := zap.L().Named("automation.workflow")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("automation.workflow")
	}
	return &Workflow{
		requests:      requests,
		notifications: notifications,
		reports:       reports,
		notifier:      notifier,
		cfg:           cfg,
		clock:         clk,
		logger:        l,
	}
}

// RunReminderOnce notifies the configured recipient about requests still
// awaiting review past the configured threshold. At most one reminder per
// request per UTC day: already-notified requests are silently skipped.
func (w *Workflow) RunReminderOnce(ctx context.Context) error {
	now := w.clock.Now().UTC()
	cutoff := now.Add(-time.Duration(w.cfg.PendingReminderAfterHours) * time.Hour)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	pending, err := w.requests.FindSubmittedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for i := range pending {
		req := &pending[i]

		alreadyNotified, err := w.notifications.HasForRequestSince(ctx, req.ID, notification.TitlePendingReminder, todayStart)
		if err != nil {
			return err
		}
		if alreadyNotified {
			continue
		}

		submittedAt := ""
		if req.SubmittedAt != nil {
			submittedAt = req.SubmittedAt.UTC().Format("2006-01-02 15:04")
		}
		message := fmt.Sprintf(
			"申請 %s 仍在待審（員工 %s，部門 %s，送審時間 %s UTC）。",
			req.ID, req.EmployeeID, req.DepartmentCode, submittedAt,
		)

		requestID := req.ID
		if err := w.notifications.Create(ctx, &notification.Notification{
			ID:                  uuid.New(),
			RecipientEmployeeID: w.cfg.ReminderRecipientEmployeeID,
			Title:               notification.TitlePendingReminder,
			Message:             message,
			RequestID:           &requestID,
		}); err != nil {
			return err
		}

		w.forward(ctx, "[LifeSwap][Reminder] "+message)
	}

	w.logger.Info("reminder workflow completed", zap.Time("at", now), zap.Int("pending", len(pending)))
	return nil
}

// RunPeriodicReportOnce posts a digest of the last two calendar days.
// Unlike the reminder job it never deduplicates: every run produces
// exactly one new report notification.
func (w *Workflow) RunPeriodicReportOnce(ctx context.Context) error {
	now := w.clock.Now().UTC()
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startDate := endDate.AddDate(0, 0, -1)

	summary, err := w.reports.Summary(ctx, report.Query{StartDate: &startDate, EndDate: &endDate})
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"日報（%s ~ %s） | 總申請: %d, 送審中: %d, 核准: %d, 拒絕: %d, 取消: %d, 核准加班時數: %s.",
		summary.StartDate, summary.EndDate,
		summary.TotalRequests, summary.SubmittedCount, summary.ApprovedCount,
		summary.RejectedCount, summary.CancelledCount,
		strconv.FormatFloat(summary.ApprovedOvertimeHours, 'f', -1, 64),
	)

	if err := w.notifications.Create(ctx, &notification.Notification{
		ID:                  uuid.New(),
		RecipientEmployeeID: w.cfg.ReportRecipientEmployeeID,
		Title:               notification.TitlePeriodicReport,
		Message:             message,
	}); err != nil {
		return err
	}

	w.forward(ctx, "[LifeSwap][Report] "+message)

	w.logger.Info("periodic report workflow completed", zap.Time("at", now))
	return nil
}

func (w *Workflow) forward(ctx context.Context, message string) {
	if err := w.notifier.SendMessage(ctx, message); err != nil {
		w.logger.Warn("forward automation message failed", zap.Error(err))
	}
}
