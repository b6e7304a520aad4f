// Package auth loads the stored platform session and answers whether the
// CLI can make authenticated calls. Interactive login is out of scope: the
// session file is written by the user (or an external helper) and only read
// here.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

const sessionFile = "auth.json"

// Cookie names the platform requires on authenticated requests.
const (
	sessionCookie = "LEETCODE_SESSION"
	csrfCookie    = "csrftoken"
)

// Session holds the cookies and extra headers for authenticated requests.
type Session struct {
	User    string            `json:"username,omitempty"`
	Cookies map[string]string `json:"cookies"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Load reads the session file from dir. A missing file yields an empty,
// unauthenticated session rather than an error; a corrupt file is reported.
func Load(dir string) (*Session, error) {
	data, err := os.ReadFile(filepath.Join(dir, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// Save writes the session to dir with owner-only permissions.
func Save(dir string, s *Session) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, sessionFile), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the session carries the cookies needed
// for authenticated calls.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Cookies[sessionCookie] != "" && s.Cookies[csrfCookie] != ""
}

// Username identifies the account this session belongs to, for keying
// per-account state. Session files that predate the username field fall
// back to a fingerprint of the session cookie, so two accounts never share
// a key.
func (s *Session) Username() string {
	if s == nil {
		return ""
	}
	if s.User != "" {
		return s.User
	}
	if token := s.Cookies[sessionCookie]; token != "" {
		sum := sha256.Sum256([]byte(token))
		return hex.EncodeToString(sum[:4])
	}
	return ""
}

// CSRFToken returns the csrf token, or "" when absent.
func (s *Session) CSRFToken() string {
	if s == nil {
		return ""
	}
	return s.Cookies[csrfCookie]
}

// Apply attaches the session cookies and headers to req.
func (s *Session) Apply(req *http.Request) {
	if s == nil {
		return
	}
	for name, value := range s.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	for name, value := range s.Headers {
		req.Header.Set(name, value)
	}
}
