// Package quota enforces the daily generation limit and the MVP registration cap.
package quota

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/satirist/server/internal/logger"
)

const dayLayout = "2006-01-02"

type Options struct {
	DailyLimit int
	Capacity   int
	Whitelist  []string // emails, case-insensitive
	Clock      func() time.Time
}

type Service struct {
	store      Store
	dailyLimit int
	capacity   int
	whitelist  map[string]struct{}
	now        func() time.Time
}

func NewService(store Store, opts Options) *Service {
	whitelist := make(map[string]struct{}, len(opts.Whitelist))
	for _, email := range opts.Whitelist {
		if email = normalizeEmail(email); email != "" {
			whitelist[email] = struct{}{}
		}
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Service{
		store:      store,
		dailyLimit: opts.DailyLimit,
		capacity:   opts.Capacity,
		whitelist:  whitelist,
		now:        opts.Clock,
	}
}

// reports whether the identity bypasses the daily limit
func (s *Service) IsWhitelisted(id Identity) bool {
	_, ok := s.whitelist[normalizeEmail(id.Email)]
	return ok
}

func (s *Service) DailyLimit() int {
	return s.dailyLimit
}

func (s *Service) today() (string, time.Time) {
	now := s.now().UTC()
	return now.Format(dayLayout), now
}

// compares the stored usage against today; a stored date other than today
// counts as zero usage
func (s *Service) CheckDailyLimit(ctx context.Context, id Identity) (Status, error) {
	day, _ := s.today()

	usage, err := s.store.GetUsage(ctx, id.UserID, day)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read usage: %w", err)
	}

	current := 0
	if usage.Date == day {
		current = usage.Count
	}

	if s.IsWhitelisted(id) {
		return Status{
			Allowed:     true,
			Current:     current,
			Limit:       Unlimited,
			Remaining:   Unlimited,
			Message:     "Unlimited access",
			Whitelisted: true,
		}, nil
	}

	remaining := max(s.dailyLimit-current, 0)
	status := Status{
		Allowed:   current < s.dailyLimit,
		Current:   current,
		Limit:     s.dailyLimit,
		Remaining: remaining,
	}

	if status.Allowed {
		status.Message = fmt.Sprintf("You have %d of %d comics left today", remaining, s.dailyLimit)
	} else {
		status.Message = fmt.Sprintf("Daily limit reached. You can create %d comics per day, come back tomorrow!", s.dailyLimit)
	}

	return status, nil
}

// records one generation; whitelisted identities are never counted
func (s *Service) IncrementCount(ctx context.Context, id Identity) error {
	if s.IsWhitelisted(id) {
		return nil
	}

	day, now := s.today()

	count, err := s.store.IncrementUsage(ctx, id.UserID, day, now)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	logger.Debug("usage incremented", "user_id", id.UserID, "date", day, "count", count)

	return nil
}

// assigns an MVP registration number, returning the existing one on repeat calls
func (s *Service) RegisterUser(ctx context.Context, id Identity) (*Registration, error) {
	existing, err := s.store.GetRegistration(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read registration: %w", err)
	}

	if existing != nil {
		existing.Existing = true
		return existing, nil
	}

	_, now := s.today()

	reg, err := s.store.Register(ctx, id.UserID, s.capacity, now)
	if err != nil {
		return nil, err
	}

	if !reg.Existing {
		logger.Info("user registered", "user_id", id.UserID, "number", reg.Number, "capacity", s.capacity)
	}

	return reg, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
