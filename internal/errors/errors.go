// Package errors provides custom error types for the TradePilot API.
// All service-layer errors should use AppError so that handlers can map
// failures to consistent JSON responses without leaking internals.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Trade errors.
var (
	ErrTradeNotFound      = &AppError{Code: "TRADE_NOT_FOUND", Message: "Trade not found", StatusCode: http.StatusNotFound}
	ErrTradeAlreadyClosed = &AppError{Code: "TRADE_ALREADY_CLOSED", Message: "Trade is already closed", StatusCode: http.StatusConflict}
)

// Signal errors.
var (
	ErrSignalNotFound  = &AppError{Code: "SIGNAL_NOT_FOUND", Message: "Trading signal not found", StatusCode: http.StatusNotFound}
	ErrUnknownSymbol   = &AppError{Code: "UNKNOWN_SYMBOL", Message: "Symbol not found", StatusCode: http.StatusNotFound}
)

// Notification errors.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)

// External connector errors.
var (
	ErrBrokerNotConnected   = &AppError{Code: "BROKER_NOT_CONNECTED", Message: "Not connected to broker", StatusCode: http.StatusBadRequest}
	ErrTelegramNotConnected = &AppError{Code: "TELEGRAM_NOT_CONNECTED", Message: "Telegram bot not connected", StatusCode: http.StatusBadRequest}
	ErrMessageNotFound      = &AppError{Code: "MESSAGE_NOT_FOUND", Message: "Message not found", StatusCode: http.StatusNotFound}
)
