package models

import "time"

// NotificationType classifies a dispatched message.
type NotificationType string

const (
	NotificationTypeSignal       NotificationType = "SIGNAL"
	NotificationTypeAlert        NotificationType = "ALERT"
	NotificationTypeMarketUpdate NotificationType = "MARKET_UPDATE"
)

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification records a message dispatched (or attempted) to the
// messaging collaborator. Append-only once recorded.
type Notification struct {
	Base
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	Message   string             `gorm:"not null" json:"message"`
	Timestamp time.Time          `gorm:"not null" json:"timestamp"`
	Type      NotificationType   `gorm:"not null" json:"type"`
	Status    NotificationStatus `gorm:"not null" json:"status"`
}
