package events

import "time"

const (
	EventTypeRequestStatusChanged = "request.status_changed"

	AggregateTypeRequest = "request"
)

// RequestStatusChangedEvent is emitted through the outbox whenever a
// request changes externally-visible status.
type RequestStatusChangedEvent struct {
	RequestID      string    `json:"request_id"`
	RequestType    string    `json:"request_type"`
	EmployeeID     string    `json:"employee_id"`
	DepartmentCode string    `json:"department_code"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
