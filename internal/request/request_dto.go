package request

import "time"

type CreateRequestInput struct {
	RequestType    string  `json:"request_type" binding:"required,oneof=OVERTIME COMP_OFF"`
	EmployeeID     string  `json:"employee_id" binding:"required"`
	DepartmentCode string  `json:"department_code"`
	RequestDate    string  `json:"request_date" binding:"required"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Reason         string  `json:"reason" binding:"required"`
}

type ReviewRequestInput struct {
	ReviewerID string  `json:"reviewer_id" binding:"required"`
	Comment    *string `json:"comment"`
}

type RequestResponse struct {
	ID             string  `json:"id"`
	RequestType    string  `json:"request_type"`
	EmployeeID     string  `json:"employee_id"`
	DepartmentCode string  `json:"department_code"`
	RequestDate    string  `json:"request_date"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ReviewerID     *string `json:"reviewer_id,omitempty"`
	ReviewComment  *string `json:"review_comment,omitempty"`
	CreatedAt      string  `json:"created_at"`
	SubmittedAt    *string `json:"submitted_at,omitempty"`
	ReviewedAt     *string `json:"reviewed_at,omitempty"`
	CancelledAt    *string `json:"cancelled_at,omitempty"`
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:             r.ID.String(),
		RequestType:    r.RequestType,
		EmployeeID:     r.EmployeeID,
		DepartmentCode: r.DepartmentCode,
		RequestDate:    r.RequestDate.Format("2006-01-02"),
		Reason:         r.Reason,
		Status:         r.Status,
		ReviewerID:     r.ReviewerID,
		ReviewComment:  r.ReviewComment,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.StartTime != nil {
		v := r.StartTime.Format("15:04")
		resp.StartTime = &v
	}
	if r.EndTime != nil {
		v := r.EndTime.Format("15:04")
		resp.EndTime = &v
	}
	if r.SubmittedAt != nil {
		v := r.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if r.CancelledAt != nil {
		v := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}

func mapToListResponse(rows []Request) []RequestResponse {
	resp := make([]RequestResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
