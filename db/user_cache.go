package db

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CachedUser is a locally cached copy of a platform user fetched from the
// admin API, kept so listings and searches work without a round trip.
type CachedUser struct {
	ID        string `gorm:"primaryKey" json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `gorm:"index" json:"phone"`
	Role      string `gorm:"index" json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// PutCachedUser inserts or updates a user record in the local cache.
func PutCachedUser(user CachedUser) error {
	if Db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if err := Db.Clauses(
		clause.OnConflict{
			UpdateAll: true, // Updates all fields if there's a conflict on the primary key (ID).
		},
	).Create(&user).Error; err != nil {
		log.Error().Err(err).Msgf("Failed to upsert cached user with ID %s", user.ID)
		return err
	}

	return nil
}

// GetCachedUsers retrieves all users in the local cache, optionally
// filtered by role. An empty role returns every cached user.
func GetCachedUsers(role string) ([]CachedUser, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var users []CachedUser
	query := Db
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch users from the local cache")
		return nil, err
	}

	log.Info().Msgf("Retrieved %d users from the local cache", len(users))
	return users, nil
}

// GetCachedUserByID retrieves a user from the local cache by ID.
// It returns (nil, nil) when the user is not cached.
func GetCachedUserByID(id string) (*CachedUser, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var user CachedUser
	if err := Db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // User not cached
		}
		return nil, fmt.Errorf("failed to retrieve cached user with ID %s: %w", id, err)
	}

	return &user, nil
}

// SearchCachedUsers searches cached users by name or phone substring.
func SearchCachedUsers(term string) ([]CachedUser, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var users []CachedUser
	pattern := "%" + term + "%"
	if err := Db.Where(
		"first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?",
		pattern, pattern, pattern,
	).Find(&users).Error; err != nil {
		log.Error().Err(err).Msgf("Failed to search cached users for: %s", term)
		return nil, err
	}

	return users, nil
}

// EmptyUserCache removes all records from the local user cache.
func EmptyUserCache() error {
	if Db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if err := Db.Unscoped().Where("1 = 1").Delete(&CachedUser{}).Error; err != nil {
		log.Error().Err(err).Msg("Failed to empty the user cache")
		return err
	}

	log.Info().Msg("User cache emptied successfully")
	return nil
}
