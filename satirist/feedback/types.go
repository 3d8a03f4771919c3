package feedback

import (
	"errors"
	"time"
)

const FileName = "feedback-data.json"

type Type string

const (
	TypeGeneral        Type = "general"
	TypeBug            Type = "bug"
	TypeFeatureRequest Type = "feature_request"
)

var (
	ErrInvalidType    = errors.New("feedbackType must be one of general, bug, feature_request")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrMissingMessage = errors.New("message is required")
)

// a stored feedback record
type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	FeedbackType Type      `json:"feedbackType"`
	Rating       *int      `json:"rating,omitempty"`
	Message      string    `json:"message"`
	UserAgent    string    `json:"userAgent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Submission struct {
	UserID       string
	Email        string
	Name         string
	FeedbackType Type
	Rating       *int
	Message      string
	UserAgent    string
}

func (t Type) Valid() bool {
	switch t {
	case TypeGeneral, TypeBug, TypeFeatureRequest:
		return true
	}

	return false
}
