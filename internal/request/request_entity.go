package request

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOvertime = "OVERTIME"
	TypeCompOff  = "COMP_OFF"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// DefaultDepartmentCode is assigned when a request arrives without one.
const DefaultDepartmentCode = "UNASSIGNED"

// Request is a single time-off or overtime entry. Rows are never deleted;
// terminal statuses (APPROVED, REJECTED, CANCELLED) end the lifecycle.
type Request struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestType    string    `gorm:"type:varchar(20);not null;index:idx_requests_type_status"`
	EmployeeID     string    `gorm:"type:varchar(50);not null;index:idx_requests_employee"`
	DepartmentCode string    `gorm:"type:varchar(50);not null;default:'UNASSIGNED'"`

	RequestDate time.Time  `gorm:"type:date;not null;index:idx_requests_date"`
	StartTime   *time.Time `gorm:"type:timestamptz"`
	EndTime     *time.Time `gorm:"type:timestamptz"`
	Reason      string     `gorm:"type:text;not null"`

	Status        string  `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_requests_type_status"`
	ReviewerID    *string `gorm:"type:varchar(50)"`
	ReviewComment *string `gorm:"type:text"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	CancelledAt *time.Time
}

func (Request) TableName() string {
	return "requests"
}

// Hours returns the request duration in fractional hours. Missing times or
// an end at/before the start count as zero; durations never wrap past
// midnight. Reporting and automation both rely on this single definition.
func (r *Request) Hours() float64 {
	if r.StartTime == nil || r.EndTime == nil {
		return 0
	}

	duration := r.EndTime.Sub(*r.StartTime)
	if duration <= 0 {
		return 0
	}

	return duration.Hours()
}
