package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification titles. The product surface is zh-TW; the literal strings
// double as the contract the frontend filters on, so they stay verbatim.
const (
	TitleRequestApproved = "申請已核准"
	TitleRequestRejected = "申請已拒絕"
	TitlePendingReminder = "待審提醒"
	TitlePeriodicReport  = "定期報告"
)

// Notification is an in-store message for one recipient. Only the read
// flag is ever mutated after creation; rows are never deleted.
type Notification struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientEmployeeID string    `gorm:"type:varchar(50);not null;index:idx_notifications_recipient"`
	Title               string    `gorm:"type:varchar(100);not null"`
	Message             string    `gorm:"type:text;not null"`

	// RequestID links reminders back to the request they concern and is
	// the dedup key for the daily reminder job.
	RequestID *uuid.UUID `gorm:"type:uuid;index:idx_notifications_request"`

	IsRead    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
