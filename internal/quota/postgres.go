package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"codeberg.org/satirist/server/internal/retry"
)

const uniqueViolation = "23505"

// satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// keeps usage and registration on the users table
type PostgresStore struct {
	db          querier
	registerTry retry.Policy
}

func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{
		db: db,
		registerTry: retry.Policy{
			MaxAttempts: 5,
			Delay:       10 * time.Millisecond,
			Retryable:   isUniqueViolation,
		},
	}
}

func (p *PostgresStore) GetUsage(ctx context.Context, userID, _ string) (Usage, error) {
	var (
		u    Usage
		last *time.Time
	)

	err := p.db.QueryRow(ctx, queryGetUsage, userID).Scan(&u.Date, &u.Count, &last)
	if errors.Is(err, pgx.ErrNoRows) {
		return Usage{}, ErrUserNotFound
	}

	if err != nil {
		return Usage{}, err
	}

	if last != nil {
		u.LastGenerated = *last
	}

	return u, nil
}

func (p *PostgresStore) IncrementUsage(ctx context.Context, userID, day string, at time.Time) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, queryIncrementUsage, userID, day, at).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (p *PostgresStore) GetRegistration(ctx context.Context, userID string) (*Registration, error) {
	var reg Registration

	err := p.db.QueryRow(ctx, queryGetRegistration, userID).Scan(&reg.Number, &reg.RegisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (p *PostgresStore) Register(ctx context.Context, userID string, capacity int, at time.Time) (*Registration, error) {
	var reg Registration

	err := p.registerTry.Do(ctx, func(ctx context.Context, _ int) error {
		return p.db.QueryRow(ctx, queryRegister, userID, at, capacity).Scan(&reg.Number, &reg.RegisteredAt)
	})

	if errors.Is(err, pgx.ErrNoRows) {
		// either registered meanwhile or the cap is full
		existing, getErr := p.GetRegistration(ctx, userID)
		if getErr != nil {
			return nil, getErr
		}

		if existing != nil {
			existing.Existing = true
			return existing, nil
		}

		return nil, ErrCapacityReached
	}

	if err != nil {
		return nil, fmt.Errorf("failed to assign registration number: %w", err)
	}

	return &reg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
