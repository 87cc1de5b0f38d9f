package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craigmindset/softdrop-cli/auth"
	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/db"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&db.Session{}))
	return gormDB
}

// TestLoginThroughRealExchanger drives the manager through an AuthClient
// against a test server, then reuses the session for an authenticated call.
func TestLoginThroughRealExchanger(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"accessToken":"acc","refreshToken":"ref"}}`)
	})
	mux.HandleFunc("/admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"data":{"totalSenders":7}}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := db.NewSessionRepository(setupAuthTestDB(t))
	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: ts.URL})
	manager.Restore()

	require.NoError(t, manager.Login(context.Background(), "08012345678", "hunter2"))

	api := client.New(ts.URL, manager)
	stats, err := api.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalSenders)
}

// TestExpiredSessionForcesLogout exercises the terminal path: the refresh
// exchange is rejected, the caller applies the logout policy, and the
// store ends up empty.
func TestExpiredSessionForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"refresh token revoked"}`)
	})
	mux.HandleFunc("/admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := db.NewSessionRepository(setupAuthTestDB(t))
	require.NoError(t, repo.Upsert(context.Background(), &db.Session{Phone: "08012345678", AccessToken: "stale", RefreshToken: "revoked"}))

	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: ts.URL})
	require.Equal(t, auth.StateLoggedIn, manager.Restore())

	api := client.New(ts.URL, manager)
	_, err := api.DashboardStats(context.Background())
	require.ErrorIs(t, err, client.ErrSessionExpired)

	// The caller-side policy for an expired session.
	manager.Logout()

	stored, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Equal(t, auth.StateLoggedOut, manager.State())
}
