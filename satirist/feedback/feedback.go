// Package feedback stores user feedback in an append-only JSON file.
package feedback

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/satirist/server/internal/jsonfile"
)

const maxMessageChars = 5000

type Store struct {
	file *jsonfile.Array[Entry]
	now  func() time.Time
}

// creates a store backed by feedback-data.json in dataDir
func NewStore(dataDir string) *Store {
	return &Store{
		file: jsonfile.NewArray[Entry](filepath.Join(dataDir, FileName)),
		now:  time.Now,
	}
}

// validates and appends one entry
func (s *Store) Submit(sub Submission) (*Entry, error) {
	if err := validate(&sub); err != nil {
		return nil, err
	}

	entry := Entry{
		ID:           uuid.NewString(),
		UserID:       sub.UserID,
		Email:        sub.Email,
		Name:         sub.Name,
		FeedbackType: sub.FeedbackType,
		Rating:       sub.Rating,
		Message:      sub.Message,
		UserAgent:    sub.UserAgent,
		CreatedAt:    s.now().UTC(),
	}

	err := s.file.Update(func(items []Entry) ([]Entry, error) {
		return append(items, entry), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return &entry, nil
}

func (s *Store) List() ([]Entry, error) {
	return s.file.Load()
}

func validate(sub *Submission) error {
	if !sub.FeedbackType.Valid() {
		return ErrInvalidType
	}

	if sub.Rating != nil && (*sub.Rating < 1 || *sub.Rating > 5) {
		return ErrInvalidRating
	}

	sub.Message = strings.TrimSpace(sub.Message)
	if sub.Message == "" {
		return ErrMissingMessage
	}

	if r := []rune(sub.Message); len(r) > maxMessageChars {
		sub.Message = string(r[:maxMessageChars])
	}

	return nil
}

var csvHeader = []string{"id", "createdAt", "userId", "email", "name", "feedbackType", "rating", "message", "userAgent"}

// writes entries as CSV with a header row
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		rating := ""
		if e.Rating != nil {
			rating = strconv.Itoa(*e.Rating)
		}

		record := []string{
			e.ID,
			e.CreatedAt.Format(time.RFC3339),
			e.UserID,
			e.Email,
			e.Name,
			string(e.FeedbackType),
			rating,
			e.Message,
			e.UserAgent,
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
