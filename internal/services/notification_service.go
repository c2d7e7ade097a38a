package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
	"tradepilot/internal/pagination"
)

// notificationService handles notification business logic.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// CreateNotification records a dispatched (or attempted) message.
func (s *notificationService) CreateNotification(userID uint, message string, timestamp time.Time, notificationType models.NotificationType, status models.NotificationStatus) (*models.Notification, error) {
	if message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "message is required")
	}

	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		Timestamp: timestamp,
		Type:      notificationType,
		Status:    status,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return notification, nil
}

// GetNotificationByID retrieves a notification by ID
func (s *notificationService) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &notification, nil
}

// GetUserNotifications lists the user's notifications in insertion order.
func (s *notificationService) GetUserNotifications(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(notifications, page.Page, page.PageSize, total)
	return &resp, nil
}
