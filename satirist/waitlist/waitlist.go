// Package waitlist records people waiting for an MVP seat.
package waitlist

import (
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/satirist/server/internal/jsonfile"
)

const FileName = "waitlist-data.json"

var ErrInvalidEmail = errors.New("a valid email is required")

type Entry struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Position  int       `json:"position"`
}

type Store struct {
	file *jsonfile.Array[Entry]
	now  func() time.Time
}

// creates a store backed by waitlist-data.json in dataDir
func NewStore(dataDir string) *Store {
	return &Store{
		file: jsonfile.NewArray[Entry](filepath.Join(dataDir, FileName)),
		now:  time.Now,
	}
}

// adds email to the waitlist. an email already present, compared
// case-insensitively, returns its original entry and existing=true
func (s *Store) Join(email, name string) (entry Entry, existing bool, err error) {
	email = strings.TrimSpace(email)

	addr, parseErr := mail.ParseAddress(email)
	if email == "" || parseErr != nil || addr.Address != email {
		return Entry{}, false, ErrInvalidEmail
	}

	err = s.file.Update(func(items []Entry) ([]Entry, error) {
		for _, item := range items {
			if strings.EqualFold(item.Email, email) {
				entry, existing = item, true
				return nil, errUnchanged
			}
		}

		entry = Entry{
			Email:     email,
			Name:      strings.TrimSpace(name),
			Timestamp: s.now().UTC(),
			Position:  len(items) + 1,
		}

		return append(items, entry), nil
	})

	if errors.Is(err, errUnchanged) {
		return entry, true, nil
	}

	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to save waitlist entry: %w", err)
	}

	return entry, existing, nil
}

func (s *Store) List() ([]Entry, error) {
	return s.file.Load()
}

// aborts the update without rewriting the file
var errUnchanged = errors.New("unchanged")
