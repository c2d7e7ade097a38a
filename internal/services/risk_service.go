package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
)

// riskService handles risk-settings business logic.
type riskService struct {
	db *gorm.DB
}

// NewRiskService creates a new RiskServicer.
func NewRiskService(db *gorm.DB) RiskServicer {
	return &riskService{db: db}
}

// GetOrCreateRiskSettings returns the user's settings, creating the
// default record on first access. Repeated calls return the same record.
func (s *riskService) GetOrCreateRiskSettings(userID uint) (*models.RiskSettings, error) {
	settings, err := s.getByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.createDefaults(userID)
}

// UpdateRiskSettings merges the supplied fields over the existing record,
// leaving unspecified fields unchanged. When no record exists yet, the
// defaults are created first and the supplied fields applied on top.
func (s *riskService) UpdateRiskSettings(userID uint, update RiskSettingsUpdate) (*models.RiskSettings, error) {
	settings, err := s.getByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		settings, err = s.createDefaults(userID)
		if err != nil {
			return nil, err
		}
	}

	applyUpdate(settings, update)

	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// SetAutoTrading toggles just the auto-trading flag, creating the default
// record first if none exists. The requested value is applied either way.
func (s *riskService) SetAutoTrading(userID uint, enabled bool) (*models.RiskSettings, error) {
	return s.UpdateRiskSettings(userID, RiskSettingsUpdate{AutoTradingEnabled: &enabled})
}

func (s *riskService) getByUserID(userID uint) (*models.RiskSettings, error) {
	var settings models.RiskSettings
	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *riskService) createDefaults(userID uint) (*models.RiskSettings, error) {
	settings := models.DefaultRiskSettings(userID)
	if err := s.db.Create(settings).Error; err != nil {
		// A concurrent caller may have created the record between the
		// lookup and the insert; the unique index makes that visible.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.getByUserID(userID)
			if lookupErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, lookupErr)
			}
			return existing, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

func applyUpdate(settings *models.RiskSettings, update RiskSettingsUpdate) {
	if update.MaxCapitalPerTrade != nil {
		settings.MaxCapitalPerTrade = *update.MaxCapitalPerTrade
	}
	if update.StopLossPercentage != nil {
		settings.StopLossPercentage = *update.StopLossPercentage
	}
	if update.TakeProfitPercentage != nil {
		settings.TakeProfitPercentage = *update.TakeProfitPercentage
	}
	if update.AIConfidenceThreshold != nil {
		settings.AIConfidenceThreshold = *update.AIConfidenceThreshold
	}
	if update.DefaultLotSize != nil {
		settings.DefaultLotSize = *update.DefaultLotSize
	}
	if update.InstrumentTypes != nil {
		settings.InstrumentTypes = *update.InstrumentTypes
	}
	if update.AutoTradingEnabled != nil {
		settings.AutoTradingEnabled = *update.AutoTradingEnabled
	}
}
