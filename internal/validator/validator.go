// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("trade_type", validateTradeType)
		_ = v.RegisterValidation("order_type", validateOrderType)
		_ = v.RegisterValidation("signal_type", validateSignalType)
		_ = v.RegisterValidation("notification_type", validateNotificationType)
		_ = v.RegisterValidation("instrument_type", validateInstrumentType)
	}
}

func validateTradeType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "BUY", "SELL":
		return true
	}
	return false
}

func validateOrderType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MARKET", "LIMIT", "SL", "SL-M":
		return true
	}
	return false
}

func validateSignalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "BUY", "SELL", "STOP_LOSS", "HOLD":
		return true
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "SIGNAL", "ALERT", "MARKET_UPDATE":
		return true
	}
	return false
}

func validateInstrumentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Stocks & Options", "Stocks Only", "Options Only", "Futures Only":
		return true
	}
	return false
}
