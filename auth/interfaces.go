package auth

import (
	"context"

	"github.com/craigmindset/softdrop-cli/db"
)

// SessionStorer defines the contract for any component that can store and retrieve the session.
type SessionStorer interface {
	GetSessionRecord() (*db.Session, error)
	UpsertSessionRecord(session *db.Session) error
	ClearSessionRecord() error
}

// Exchanger defines the contract for any component that can exchange login credentials for a token pair.
type Exchanger interface {
	PerformLogin(ctx context.Context, phone, password string) (accessToken string, refreshToken string, err error)
}
