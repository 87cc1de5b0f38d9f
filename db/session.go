package db

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Session holds the logged-in user's token pair and the phone number used
// at login. A single row (id=1) represents the current session.
type Session struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	Phone        string `json:"phone,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// GetSessionRecord retrieves the session record from the database.
// A missing record is not an error; it returns (nil, nil) so callers can
// treat absence as "logged out".
func GetSessionRecord() (*Session, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var session Session
	if err := Db.First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No session stored
		}
		log.Error().Err(err).Msg("Failed to retrieve session data")
		return nil, err
	}

	return &session, nil
}

// UpsertSessionRecord inserts or updates the session record in the database.
func UpsertSessionRecord(session *Session) error {
	if Db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	var existing Session
	err := Db.First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Failed to check existing session")
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := Db.Create(session).Error; err != nil {
			log.Error().Err(err).Msg("Failed to insert new session")
			return err
		}
		log.Info().Msg("Session inserted successfully")
	} else {
		if err := Db.Model(&existing).Where("1 = 1").Updates(map[string]interface{}{
			"phone":         session.Phone,
			"access_token":  session.AccessToken,
			"refresh_token": session.RefreshToken,
		}).Error; err != nil {
			log.Error().Err(err).Msg("Failed to update session")
			return err
		}
		log.Info().Msg("Session updated successfully")
	}

	return nil
}

// ClearSessionRecord removes the stored session. It is idempotent; clearing
// an already-empty store succeeds.
func ClearSessionRecord() error {
	if Db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if err := Db.Unscoped().Where("1 = 1").Delete(&Session{}).Error; err != nil {
		log.Error().Err(err).Msg("Failed to clear session data")
		return err
	}

	log.Info().Msg("Session cleared successfully")
	return nil
}
