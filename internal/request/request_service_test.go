package request_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/messaging/kafka"
	"github.com/CosmosChiang/LifeSwap/internal/notification"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	requesterrors "github.com/CosmosChiang/LifeSwap/internal/request/errors"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRequestRepository struct {
	withTxFn              func(tx *sql.Tx) request.Repository
	createFn              func(ctx context.Context, req *request.Request) error
	findAllFn             func(ctx context.Context, employeeID, status string) ([]request.Request, error)
	findByIDFn            func(ctx context.Context, id string) (*request.Request, error)
	updateFn              func(ctx context.Context, req *request.Request) error
	findSubmittedBeforeFn func(ctx context.Context, cutoff time.Time) ([]request.Request, error)
	findInRangeFn         func(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]request.Request, error)
}

func (f *fakeRequestRepository) WithTx(tx *sql.Tx) request.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRequestRepository) Create(ctx context.Context, req *request.Request) error {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return nil
}

func (f *fakeRequestRepository) FindAll(ctx context.Context, employeeID, status string) ([]request.Request, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, employeeID, status)
	}
	return nil, nil
}

func (f *fakeRequestRepository) FindByID(ctx context.Context, id string) (*request.Request, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepository) Update(ctx context.Context, req *request.Request) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, req)
	}
	return nil
}

func (f *fakeRequestRepository) FindSubmittedBefore(ctx context.Context, cutoff time.Time) ([]request.Request, error) {
	if f.findSubmittedBeforeFn != nil {
		return f.findSubmittedBeforeFn(ctx, cutoff)
	}
	return nil, nil
}

func (f *fakeRequestRepository) FindInRange(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]request.Request, error) {
	if f.findInRangeFn != nil {
		return f.findInRangeFn(ctx, startDate, endDate, requestType, department)
	}
	return nil, nil
}

type fakeNotificationRepository struct {
	createFn func(ctx context.Context, n *notification.Notification) error
	created  []notification.Notification
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository {
	return f
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepository) FindByRecipient(ctx context.Context, recipientEmployeeID string) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return nil
}

func (f *fakeNotificationRepository) HasForRequestSince(ctx context.Context, requestID uuid.UUID, title string, since time.Time) (bool, error) {
	return false, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(ctx context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

var fixedNow = time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

type requestServiceDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	service       request.Service
	repo          *fakeRequestRepository
	notifications *fakeNotificationRepository
	outbox        *fakeOutboxRepository
	notifier      *fakeNotifier
}

func setupRequestServiceTest(t *testing.T) *requestServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRequestRepository{}
	notifications := &fakeNotificationRepository{}
	outbox := &fakeOutboxRepository{}
	notifier := &fakeNotifier{}
	svc := request.NewService(db, repo, notifications, outbox, notifier, clock.Fixed(fixedNow), "lifeswap.request-events")

	return &requestServiceDeps{
		db:            db,
		sqlMock:       sqlMock,
		service:       svc,
		repo:          repo,
		notifications: notifications,
		outbox:        outbox,
		notifier:      notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string {
	return &v
}

func requestInState(status string) *request.Request {
	req := &request.Request{
		ID:             uuid.New(),
		RequestType:    request.TypeOvertime,
		EmployeeID:     "E001",
		DepartmentCode: "ENG",
		RequestDate:    time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Reason:         "Release support",
		Status:         status,
		CreatedAt:      fixedNow.Add(-24 * time.Hour),
	}
	if status != request.StatusDraft {
		submitted := fixedNow.Add(-12 * time.Hour)
		req.SubmittedAt = &submitted
	}
	return req
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success overtime", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var persisted *request.Request
		deps.repo.createFn = func(ctx context.Context, req *request.Request) error {
			persisted = req
			return nil
		}

		resp, err := deps.service.Create(ctx, request.CreateRequestInput{
			RequestType: request.TypeOvertime,
			EmployeeID:  "E001",
			RequestDate: "2026-02-09",
			StartTime:   strPtr("18:00"),
			EndTime:     strPtr("20:30"),
			Reason:      "Release support",
		})

		assert.NoError(t, err)
		assert.NotNil(t, persisted)
		assert.Equal(t, request.StatusDraft, resp.Status)
		assert.Equal(t, "2026-02-09", resp.RequestDate)
		assert.Equal(t, "18:00", *resp.StartTime)
		assert.Equal(t, "20:30", *resp.EndTime)
		assert.InDelta(t, 2.5, persisted.Hours(), 0.0001)
	})

	t.Run("blank department defaults to UNASSIGNED", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, request.CreateRequestInput{
			RequestType:    request.TypeCompOff,
			EmployeeID:     "E001",
			DepartmentCode: "   ",
			RequestDate:    "2026-02-09",
			Reason:         "Recover overtime",
		})

		assert.NoError(t, err)
		assert.Equal(t, request.DefaultDepartmentCode, resp.DepartmentCode)
	})

	t.Run("overtime requires both times", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, request.CreateRequestInput{
			RequestType: request.TypeOvertime,
			EmployeeID:  "E001",
			RequestDate: "2026-02-09",
			StartTime:   strPtr("18:00"),
			Reason:      "Release support",
		})

		assert.ErrorIs(t, err, requesterrors.ErrOvertimeTimesRequired)
	})

	t.Run("comp off does not require times", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, request.CreateRequestInput{
			RequestType: request.TypeCompOff,
			EmployeeID:  "E001",
			RequestDate: "2026-02-09",
			Reason:      "Recover overtime",
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.StartTime)
		assert.Nil(t, resp.EndTime)
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name    string
			input   request.CreateRequestInput
			wantErr error
		}{
			{
				name: "blank employee id",
				input: request.CreateRequestInput{
					RequestType: request.TypeCompOff,
					EmployeeID:  "   ",
					RequestDate: "2026-02-09",
					Reason:      "Recover overtime",
				},
				wantErr: requesterrors.ErrEmployeeIDRequired,
			},
			{
				name: "blank reason",
				input: request.CreateRequestInput{
					RequestType: request.TypeCompOff,
					EmployeeID:  "E001",
					RequestDate: "2026-02-09",
					Reason:      "   ",
				},
				wantErr: requesterrors.ErrReasonRequired,
			},
			{
				name: "unknown type",
				input: request.CreateRequestInput{
					RequestType: "VACATION",
					EmployeeID:  "E001",
					RequestDate: "2026-02-09",
					Reason:      "Recover overtime",
				},
				wantErr: requesterrors.ErrInvalidRequestType,
			},
			{
				name: "whitespace-only overtime times",
				input: request.CreateRequestInput{
					RequestType: request.TypeOvertime,
					EmployeeID:  "E001",
					RequestDate: "2026-02-09",
					StartTime:   strPtr("   "),
					EndTime:     strPtr("   "),
					Reason:      "Release support",
				},
				wantErr: requesterrors.ErrOvertimeTimesRequired,
			},
			{
				name: "bad date",
				input: request.CreateRequestInput{
					RequestType: request.TypeCompOff,
					EmployeeID:  "E001",
					RequestDate: "09-02-2026",
					Reason:      "Recover overtime",
				},
				wantErr: requesterrors.ErrInvalidDateFormat,
			},
			{
				name: "bad time",
				input: request.CreateRequestInput{
					RequestType: request.TypeOvertime,
					EmployeeID:  "E001",
					RequestDate: "2026-02-09",
					StartTime:   strPtr("25:99"),
					EndTime:     strPtr("20:00"),
					Reason:      "Release support",
				},
				wantErr: requesterrors.ErrInvalidTimeFormat,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				deps := setupRequestServiceTest(t)
				defer deps.db.Close()

				_, err := deps.service.Create(ctx, tc.input)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success from draft", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := requestInState(request.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
			return req, nil
		}

		var updated *request.Request
		deps.repo.updateFn = func(ctx context.Context, r *request.Request) error {
			updated = r
			return nil
		}

		resp, err := deps.service.Submit(ctx, req.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, request.StatusSubmitted, resp.Status)
		assert.NotNil(t, updated.SubmittedAt)
		assert.Equal(t, fixedNow, *updated.SubmittedAt)
		assert.Empty(t, deps.notifications.created)
		assert.Len(t, deps.outbox.created, 1)
		assert.Len(t, deps.notifier.messages, 1)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Submit(ctx, uuid.New().String())
		assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
	})
}

func TestRequestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("success from submitted", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := requestInState(request.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
			return req, nil
		}

		resp, err := deps.service.Approve(ctx, req.ID.String(), request.ReviewRequestInput{
			ReviewerID: "M001",
			Comment:    strPtr("Approved for release night"),
		})

		assert.NoError(t, err)
		assert.Equal(t, request.StatusApproved, resp.Status)
		assert.Equal(t, "M001", *resp.ReviewerID)
		assert.NotNil(t, resp.ReviewedAt)

		assert.Len(t, deps.notifications.created, 1)
		created := deps.notifications.created[0]
		assert.Equal(t, notification.TitleRequestApproved, created.Title)
		assert.Equal(t, req.EmployeeID, created.RecipientEmployeeID)
		assert.Contains(t, created.Message, req.ID.String())
		assert.Equal(t, req.ID, *created.RequestID)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "lifeswap.request-events", deps.outbox.created[0].Topic)
	})

	t.Run("reviewer required", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, uuid.New().String(), request.ReviewRequestInput{ReviewerID: "  "})
		assert.ErrorIs(t, err, requesterrors.ErrReviewerIDRequired)
	})

	t.Run("notifier failure does not fail the transition", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := requestInState(request.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
			return req, nil
		}
		deps.notifier.err = errors.New("webhook down")

		resp, err := deps.service.Approve(ctx, req.ID.String(), request.ReviewRequestInput{ReviewerID: "M001"})

		assert.NoError(t, err)
		assert.Equal(t, request.StatusApproved, resp.Status)
	})
}

func TestRequestService_Reject(t *testing.T) {
	ctx := context.Background()

	deps := setupRequestServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	req := requestInState(request.StatusSubmitted)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
		return req, nil
	}

	resp, err := deps.service.Reject(ctx, req.ID.String(), request.ReviewRequestInput{
		ReviewerID: "M001",
		Comment:    strPtr("Not enough coverage"),
	})

	assert.NoError(t, err)
	assert.Equal(t, request.StatusRejected, resp.Status)
	assert.Len(t, deps.notifications.created, 1)
	assert.Equal(t, notification.TitleRequestRejected, deps.notifications.created[0].Title)
}

func TestRequestService_Cancel(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{request.StatusDraft, request.StatusSubmitted} {
		t.Run("success from "+status, func(t *testing.T) {
			deps := setupRequestServiceTest(t)
			defer deps.db.Close()

			expectTx(t, deps.sqlMock, true)

			req := requestInState(status)
			deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
				return req, nil
			}

			resp, err := deps.service.Cancel(ctx, req.ID.String())

			assert.NoError(t, err)
			assert.Equal(t, request.StatusCancelled, resp.Status)
			assert.NotNil(t, resp.CancelledAt)
			assert.Empty(t, deps.notifications.created)
		})
	}
}

func TestRequestService_IllegalTransitions(t *testing.T) {
	ctx := context.Background()
	review := request.ReviewRequestInput{ReviewerID: "M001"}

	type op struct {
		name string
		run  func(svc request.Service, id string) error
	}
	ops := map[string]op{
		"submit": {name: "submit", run: func(svc request.Service, id string) error {
			_, err := svc.Submit(ctx, id)
			return err
		}},
		"approve": {name: "approve", run: func(svc request.Service, id string) error {
			_, err := svc.Approve(ctx, id, review)
			return err
		}},
		"reject": {name: "reject", run: func(svc request.Service, id string) error {
			_, err := svc.Reject(ctx, id, review)
			return err
		}},
		"cancel": {name: "cancel", run: func(svc request.Service, id string) error {
			_, err := svc.Cancel(ctx, id)
			return err
		}},
	}

	illegal := map[string][]string{
		request.StatusDraft:     {"approve", "reject"},
		request.StatusSubmitted: {"submit"},
		request.StatusApproved:  {"submit", "approve", "reject", "cancel"},
		request.StatusRejected:  {"submit", "approve", "reject", "cancel"},
		request.StatusCancelled: {"submit", "approve", "reject", "cancel"},
	}

	for status, opNames := range illegal {
		for _, opName := range opNames {
			operation := ops[opName]
			t.Run(status+"/"+operation.name, func(t *testing.T) {
				deps := setupRequestServiceTest(t)
				defer deps.db.Close()

				expectTx(t, deps.sqlMock, false)

				req := requestInState(status)
				deps.repo.findByIDFn = func(ctx context.Context, id string) (*request.Request, error) {
					return req, nil
				}

				err := operation.run(deps.service, req.ID.String())

				assert.ErrorIs(t, err, requesterrors.ErrInvalidStatusTransition)
				assert.Equal(t, status, req.Status)
				assert.Empty(t, deps.outbox.created)
				assert.Empty(t, deps.notifier.messages)
			})
		}
	}
}
