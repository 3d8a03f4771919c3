package quota

import (
	"context"
	"errors"
	"time"
)

var (
	// the MVP registration cap is full
	ErrCapacityReached = errors.New("registration capacity reached")

	// the store has no record for the user
	ErrUserNotFound = errors.New("user not found")
)

// Unlimited is reported as limit and remaining for whitelisted users
const Unlimited = -1

// the caller a quota decision is made for
type Identity struct {
	UserID string
	Email  string
}

// a user's generation count for one day
type Usage struct {
	Date          string    `json:"date"` // YYYY-MM-DD, UTC
	Count         int       `json:"count"`
	LastGenerated time.Time `json:"lastGenerated"`
}

type Registration struct {
	Number       int       `json:"registrationNumber"`
	RegisteredAt time.Time `json:"registeredAt"`
	Existing     bool      `json:"-"` // assigned by an earlier call
}

// result of a daily limit check
type Status struct {
	Allowed     bool   `json:"allowed"`
	Current     int    `json:"current"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining"`
	Message     string `json:"message"`
	Whitelisted bool   `json:"whitelisted,omitempty"`
}

// persistence for usage counters and registration numbers
type Store interface {
	// returns the stored usage; the stored date may differ from day,
	// and a user with no usage yields a zero Usage
	GetUsage(ctx context.Context, userID, day string) (Usage, error)

	// atomically increments the counter for day, restarting at 1 when the
	// stored date differs, and returns the new count
	IncrementUsage(ctx context.Context, userID, day string, at time.Time) (int, error)

	// returns nil when the user holds no registration number
	GetRegistration(ctx context.Context, userID string) (*Registration, error)

	// assigns the next number unless capacity numbers are already taken.
	// a user that is already registered gets the existing registration
	Register(ctx context.Context, userID string, capacity int, at time.Time) (*Registration, error)
}
