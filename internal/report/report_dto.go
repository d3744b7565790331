package report

import "time"

// Query carries the shared report filters. Nil dates fall back to the
// defaults resolved by resolveRange; nil type/department mean no filter.
type Query struct {
	StartDate   *time.Time
	EndDate     *time.Time
	RequestType *string
	Department  *string
}

type Summary struct {
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	RequestType           *string `json:"request_type,omitempty"`
	Department            *string `json:"department,omitempty"`
	TotalRequests         int     `json:"total_requests"`
	SubmittedCount        int     `json:"submitted_count"`
	ApprovedCount         int     `json:"approved_count"`
	RejectedCount         int     `json:"rejected_count"`
	CancelledCount        int     `json:"cancelled_count"`
	ApprovedOvertimeHours float64 `json:"approved_overtime_hours"`
	ApprovalRate          float64 `json:"approval_rate"`
}

type TrendPoint struct {
	Date                  string  `json:"date"`
	TotalRequests         int     `json:"total_requests"`
	SubmittedCount        int     `json:"submitted_count"`
	ApprovedCount         int     `json:"approved_count"`
	RejectedCount         int     `json:"rejected_count"`
	CancelledCount        int     `json:"cancelled_count"`
	ApprovedOvertimeHours float64 `json:"approved_overtime_hours"`
}

const (
	SeverityWarning  = "Warning"
	SeverityCritical = "Critical"
)

type ComplianceWarning struct {
	EmployeeID               string  `json:"employee_id"`
	Year                     int     `json:"year"`
	Month                    int     `json:"month"`
	ApprovedOvertimeHours    float64 `json:"approved_overtime_hours"`
	MonthlyOvertimeHourLimit float64 `json:"monthly_overtime_hour_limit"`
	Severity                 string  `json:"severity"`
	Message                  string  `json:"message"`
}
