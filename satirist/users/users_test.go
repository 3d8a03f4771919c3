package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/internal/migrations"
)

func TestMemoryRepository_FindOrCreate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.FindOrCreateByProvider(ctx, ProviderIdentity{
		Provider: "github", ProviderID: "42", Email: "old@example.com", Name: "Old",
	})
	require.NoError(t, err)

	second, err := repo.FindOrCreateByProvider(ctx, ProviderIdentity{
		Provider: "github", ProviderID: "42", Email: "new@example.com", Name: "New",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new@example.com", second.Email)

	other, err := repo.FindOrCreateByProvider(ctx, ProviderIdentity{Provider: "google", ProviderID: "42"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, migrations.RunURL(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgresRepository(pool)
	providerID := time.Now().Format(time.RFC3339Nano)

	user, err := repo.FindOrCreateByProvider(ctx, ProviderIdentity{
		Provider: "users-test", ProviderID: providerID, Email: "a@example.com", Name: "A",
	})
	require.NoError(t, err)
	assert.Nil(t, user.RegistrationNumber)

	again, err := repo.FindOrCreateByProvider(ctx, ProviderIdentity{
		Provider: "users-test", ProviderID: providerID, Email: "b@example.com", Name: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "b@example.com", again.Email)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", found.Name)

	_, err = repo.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}
