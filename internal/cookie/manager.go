package cookie

import (
	"context"
	"errors"
	"fmt"
	"log"
)

type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Manager serves the cached cookie and falls back to the browser.
type Manager struct {
	store   *Store
	fetcher Fetcher
}

func NewManager(store *Store, fetcher Fetcher) *Manager {
	return &Manager{store: store, fetcher: fetcher}
}

// Cookie returns a usable cookie string. The saved one is used unless force
// is set or it is missing or expired; a fetched cookie is saved.
func (m *Manager) Cookie(ctx context.Context, force bool) (string, error) {
	if !force {
		s, err := m.store.Load()
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) {
			log.Printf("cookie cache unreadable path=%s err=%v", m.store.Path(), err)
		} else {
			log.Printf("cookie cache miss path=%s reason=%v", m.store.Path(), err)
		}
	}

	s, err := m.fetcher.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", ErrNoSession
	}
	if err := m.store.Save(s); err != nil {
		return "", fmt.Errorf("save cookie: %w", err)
	}
	log.Printf("cookie saved path=%s", m.store.Path())
	return s, nil
}

// RefreshCookie always goes to the browser; the client only asks after
// the current cookie was rejected.
func (m *Manager) RefreshCookie(ctx context.Context) (string, error) {
	return m.Cookie(ctx, true)
}
