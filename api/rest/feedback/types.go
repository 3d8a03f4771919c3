package feedback

import (
	"io"

	"codeberg.org/satirist/server/satirist/feedback"
)

// SubmitRequest is the body of POST /feedback
type SubmitRequest struct {
	FeedbackType string `json:"feedbackType" binding:"required,oneof=general bug feature_request"`
	Rating       *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Message      string `json:"message" binding:"required"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Store interface {
	Submit(sub feedback.Submission) (*feedback.Entry, error)
	List() ([]feedback.Entry, error)
}

// encodes the download; feedback.WriteCSV in production
type CSVWriter func(w io.Writer, entries []feedback.Entry) error
