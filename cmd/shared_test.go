package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craigmindset/softdrop-cli/auth"
	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/db"
	"github.com/craigmindset/softdrop-cli/pkg/clierr"
)

func TestServerURL_Default(t *testing.T) {
	t.Setenv("SOFTDROP_SERVER_URL", "")
	assert.Equal(t, defaultServerURL, serverURL())
}

func TestServerURL_EnvOverride(t *testing.T) {
	t.Setenv("SOFTDROP_SERVER_URL", "http://localhost:9000")
	assert.Equal(t, "http://localhost:9000", serverURL())
}

func setupSharedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&db.Session{}))
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newCaptureCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

// An expired session must be cleared from the store so the next command
// prompts for a fresh login instead of replaying dead tokens.
func TestReportRequestError_SessionExpiredForcesLogout(t *testing.T) {
	gdb := setupSharedTestDB(t)
	repo := db.NewSessionRepository(gdb)
	require.NoError(t, repo.Upsert(context.Background(), &db.Session{
		Phone:        "+15550001111",
		AccessToken:  "stale-access",
		RefreshToken: "stale-refresh",
	}))

	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: "http://unused"})
	require.Equal(t, auth.StateLoggedIn, manager.Restore())

	cmd, buf := newCaptureCmd()
	reportRequestError(cmd, manager, client.ErrSessionExpired)

	assert.Contains(t, buf.String(), "Your session has expired")
	record, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestReportRequestError_UnauthorizedForcesLogout(t *testing.T) {
	gdb := setupSharedTestDB(t)
	repo := db.NewSessionRepository(gdb)
	require.NoError(t, repo.Upsert(context.Background(), &db.Session{
		Phone:        "+15550001111",
		AccessToken:  "stale-access",
		RefreshToken: "stale-refresh",
	}))

	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: "http://unused"})
	require.Equal(t, auth.StateLoggedIn, manager.Restore())

	cmd, buf := newCaptureCmd()
	reportRequestError(cmd, manager, &client.APIError{Status: 401, Body: []byte(`{"message":"token invalid"}`)})

	assert.Contains(t, buf.String(), "Your session has expired")
	record, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestReportRequestError_OtherErrorsKeepSession(t *testing.T) {
	gdb := setupSharedTestDB(t)
	repo := db.NewSessionRepository(gdb)
	require.NoError(t, repo.Upsert(context.Background(), &db.Session{
		Phone:        "+15550001111",
		AccessToken:  "access",
		RefreshToken: "refresh",
	}))

	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: "http://unused"})
	require.Equal(t, auth.StateLoggedIn, manager.Restore())

	cmd, buf := newCaptureCmd()
	reportRequestError(cmd, manager, &client.APIError{Status: 500, Body: []byte(`{"message":"upstream exploded"}`)})

	assert.Contains(t, buf.String(), "upstream exploded")
	assert.False(t, strings.Contains(buf.String(), "session has expired"))
	record, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "access", record.AccessToken)
}

func TestClassifyRequestError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want clierr.Type
	}{
		{"session expired", client.ErrSessionExpired, clierr.Unauthorized},
		{"401 api error", &client.APIError{Status: 401}, clierr.Unauthorized},
		{"transport failure", &client.TransportError{Err: errors.New("refused")}, clierr.Network},
		{"server error", &client.APIError{Status: 500}, clierr.Internal},
		{"anything else", errors.New("boom"), clierr.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyRequestError(tc.err)
			assert.Equal(t, tc.want, got.Type)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestReportRequestError_TransportError(t *testing.T) {
	gdb := setupSharedTestDB(t)
	repo := db.NewSessionRepository(gdb)
	manager := auth.NewManagerWithRepo(repo, &client.AuthClient{BaseURL: "http://unused"})

	cmd, buf := newCaptureCmd()
	reportRequestError(cmd, manager, &client.TransportError{Err: errors.New("connection refused")})

	assert.Contains(t, buf.String(), "Could not reach the server. Please check your connection.")
}
