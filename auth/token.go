package auth

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenStore is the persistent admin token, the console's counterpart of the browser's
// localStorage "token" entry. It serves as the oauth2.TokenSource of the admin API client.
type TokenStore struct {
	mu   sync.Mutex
	path string
	raw  string
}

func NewTokenStore(path string, fallback string) *TokenStore {
	s := &TokenStore{path: path, raw: strings.TrimSpace(fallback)}
	if path == "" {
		return s
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read token file %s: %v", path, err)
		}
		return s
	}
	if stored := strings.TrimSpace(string(content)); stored != "" {
		s.raw = stored
	}
	return s
}

// Token never fails on a missing token: the admin API answers 401 and that is the only signal.
func (s *TokenStore) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	raw := s.raw
	s.mu.Unlock()
	if raw == "" {
		return &oauth2.Token{}, nil
	}
	token := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if expiry, err := TokenExpiry(raw); err == nil {
		token.Expiry = expiry
	}
	return token, nil
}

func (s *TokenStore) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := os.WriteFile(s.path, []byte(raw), 0o600); err != nil {
			return fmt.Errorf("failed to persist token: %v", err)
		}
	}
	s.raw = raw
	return nil
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %v", err)
	}
	return nil
}

// TokenExpiry reads the exp claim without verifying the signature; only the backend can
// verify admin tokens. Opaque tokens yield an error and a zero time.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// WarnIfExpired logs when the stored token is already expired.
func (s *TokenStore) WarnIfExpired() {
	token, _ := s.Token()
	if token.AccessToken == "" {
		log.Println("no admin token configured, mutating admin API calls will be rejected")
		return
	}
	if !token.Expiry.IsZero() && token.Expiry.Before(time.Now()) {
		log.Printf("admin token expired at %s", token.Expiry.Format(time.RFC3339))
	}
}
