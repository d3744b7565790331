package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_ListPendingIncludesFailedRetries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id",
		"event_type", "topic", "payload", "status", "retry_count",
	}).
		AddRow("evt-1", "req-1", "request", "req-1", "request.status_changed", "request-events", []byte(`{}`), OutboxStatusPending, 0).
		AddRow("evt-2", "req-2", "request", "req-2", "request.status_changed", "request-events", []byte(`{}`), OutboxStatusFailed, 3)

	mock.ExpectQuery(`WHERE status IN \(\$1, \$2\)`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 10).
		WillReturnRows(rows)

	repo := NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, OutboxStatusFailed, events[1].Status)
	assert.Equal(t, 3, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedSchedulesRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(OutboxStatusFailed, "broker unreachable", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	err = repo.MarkFailed(context.Background(), "evt-1", "broker unreachable")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
