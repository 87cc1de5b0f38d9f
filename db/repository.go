package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository defines decoupled operations for session persistence.
type SessionRepository interface {
	Get(ctx context.Context) (*Session, error)
	Upsert(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

// UserCacheRepository defines decoupled operations for the local user cache.
type UserCacheRepository interface {
	Put(ctx context.Context, user CachedUser) error
	GetByID(ctx context.Context, id string) (*CachedUser, error)
	List(ctx context.Context, role string) ([]CachedUser, error)
	Search(ctx context.Context, term string) ([]CachedUser, error)
	Clear(ctx context.Context) error
}

// gormSessionRepo is a GORM-backed implementation of SessionRepository.
// Use constructor NewSessionRepository to obtain an instance.
type gormSessionRepo struct{ db *gorm.DB }

// gormUserCacheRepo is a GORM-backed implementation of UserCacheRepository.
// Use constructor NewUserCacheRepository to obtain an instance.
type gormUserCacheRepo struct{ db *gorm.DB }

// NewSessionRepository creates a SessionRepository. Accepts *gorm.DB to avoid global access.
func NewSessionRepository(db *gorm.DB) SessionRepository { return &gormSessionRepo{db: db} }

// NewUserCacheRepository creates a UserCacheRepository. Accepts *gorm.DB to avoid global access.
func NewUserCacheRepository(db *gorm.DB) UserCacheRepository { return &gormUserCacheRepo{db: db} }

func (r *gormSessionRepo) Get(ctx context.Context) (*Session, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var session Session
	err := r.db.WithContext(ctx).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *gormSessionRepo) Upsert(ctx context.Context, session *Session) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	session.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "access_token", "refresh_token"}),
	}).Create(session).Error
}

func (r *gormSessionRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Session{}).Error
}

func (r *gormUserCacheRepo) Put(ctx context.Context, user CachedUser) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&user).Error
}

func (r *gormUserCacheRepo) GetByID(ctx context.Context, id string) (*CachedUser, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var user CachedUser
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserCacheRepo) List(ctx context.Context, role string) ([]CachedUser, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var users []CachedUser
	query := r.db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserCacheRepo) Search(ctx context.Context, term string) ([]CachedUser, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var users []CachedUser
	pattern := "%" + term + "%"
	if err := r.db.WithContext(ctx).Where(
		"first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?",
		pattern, pattern, pattern,
	).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserCacheRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&CachedUser{}).Error
}
