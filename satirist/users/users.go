package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a new user repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// finds a user by OAuth provider or creates a new one
func (r *PostgresRepository) FindOrCreateByProvider(ctx context.Context, id ProviderIdentity) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		id.Provider,
		id.ProviderID,
		id.Email,
		id.Name,
		id.AvatarURL,
	)

	return scanUser(row)
}

// finds a user by their ID
func (r *PostgresRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.RegistrationNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}
