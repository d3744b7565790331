package notification

import "time"

type NotificationResponse struct {
	ID                  string  `json:"id"`
	RecipientEmployeeID string  `json:"recipient_employee_id"`
	Title               string  `json:"title"`
	Message             string  `json:"message"`
	RequestID           *string `json:"request_id,omitempty"`
	IsRead              bool    `json:"is_read"`
	CreatedAt           string  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:                  n.ID.String(),
		RecipientEmployeeID: n.RecipientEmployeeID,
		Title:               n.Title,
		Message:             n.Message,
		IsRead:              n.IsRead,
		CreatedAt:           n.CreatedAt.Format(time.RFC3339),
	}
	if n.RequestID != nil {
		v := n.RequestID.String()
		resp.RequestID = &v
	}
	return resp
}

func mapToListResponse(rows []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp
}
