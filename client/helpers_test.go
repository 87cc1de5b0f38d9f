package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fakeSession is an in-memory SessionSource for tests.
type fakeSession struct {
	mu       sync.Mutex
	access   string
	refresh  string
	setCalls int
}

func (s *fakeSession) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *fakeSession) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *fakeSession) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	s.setCalls++
	return nil
}

func (s *fakeSession) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

// signedJWT builds a HS256-signed token expiring at the given time.
func signedJWT(expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test-user",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}
