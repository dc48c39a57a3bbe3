package cookie

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

const (
	DefaultFile = "weread_cookies.json"
	MaxAge      = 24 * time.Hour
)

var (
	ErrNotFound = errors.New("cookie: no saved cookie")
	ErrExpired  = errors.New("cookie: saved cookie expired")
)

type record struct {
	CookieString string `json:"cookie_string"`
	Timestamp    int64  `json:"timestamp"`
}

// Store keeps the last browser cookie in a JSON file.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved cookie string. A missing file or empty cookie is
// ErrNotFound; one saved more than MaxAge ago is ErrExpired.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cookie file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("decode cookie file %s: %w", s.path, err)
	}
	if rec.CookieString == "" {
		return "", ErrNotFound
	}
	if s.now().Sub(time.Unix(rec.Timestamp, 0)) > MaxAge {
		return "", ErrExpired
	}
	return rec.CookieString, nil
}

func (s *Store) Save(cookie string) error {
	data, err := json.MarshalIndent(record{CookieString: cookie, Timestamp: s.now().Unix()}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}
