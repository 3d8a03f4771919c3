package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestService(t *testing.T, store Store) (*Service, *clock) {
	t.Helper()

	clk := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(store, Options{
		DailyLimit: 10,
		Capacity:   3,
		Whitelist:  []string{" Editor@Example.com "},
		Clock:      clk.Now,
	})

	return svc, clk
}

func TestCheckDailyLimitFreshUser(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())

	status, err := svc.CheckDailyLimit(context.Background(), Identity{UserID: "u1"})
	require.NoError(t, err)

	assert.True(t, status.Allowed)
	assert.Equal(t, 0, status.Current)
	assert.Equal(t, 10, status.Limit)
	assert.Equal(t, 10, status.Remaining)
	assert.NotEmpty(t, status.Message)
}

func TestLimitReachedAfterTenIncrements(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()
	id := Identity{UserID: "u1", Email: "someone@example.com"}

	for i := 0; i < 10; i++ {
		status, err := svc.CheckDailyLimit(ctx, id)
		require.NoError(t, err)
		require.True(t, status.Allowed, "generation %d", i+1)
		require.NoError(t, svc.IncrementCount(ctx, id))
	}

	status, err := svc.CheckDailyLimit(ctx, id)
	require.NoError(t, err)

	assert.False(t, status.Allowed)
	assert.Equal(t, 10, status.Current)
	assert.Equal(t, 10, status.Limit)
	assert.Zero(t, status.Remaining)
}

func TestStaleDateCountsAsZero(t *testing.T) {
	for _, prior := range []int{1, 10, 500} {
		store := NewMemoryStore()
		store.usage["u1"] = Usage{Date: "2024-04-30", Count: prior}

		svc, _ := newTestService(t, store)

		status, err := svc.CheckDailyLimit(context.Background(), Identity{UserID: "u1"})
		require.NoError(t, err)
		assert.True(t, status.Allowed)
		assert.Equal(t, 0, status.Current)
	}
}

func TestIncrementResetsOnNewDay(t *testing.T) {
	store := NewMemoryStore()
	svc, clk := newTestService(t, store)
	ctx := context.Background()
	id := Identity{UserID: "u1"}

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.IncrementCount(ctx, id))
	}

	clk.Advance(24 * time.Hour)
	require.NoError(t, svc.IncrementCount(ctx, id))

	assert.Equal(t, Usage{Date: "2024-05-02", Count: 1, LastGenerated: clk.Now()}, store.usage["u1"])
}

func TestWhitelistedNeverCounted(t *testing.T) {
	store := NewMemoryStore()
	store.usage["vip"] = Usage{Date: "2024-05-01", Count: 3}

	svc, _ := newTestService(t, store)
	ctx := context.Background()
	id := Identity{UserID: "vip", Email: "editor@example.COM"}

	for i := 0; i < 20; i++ {
		require.NoError(t, svc.IncrementCount(ctx, id))
	}

	assert.Equal(t, 3, store.usage["vip"].Count)

	status, err := svc.CheckDailyLimit(ctx, id)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.True(t, status.Whitelisted)
	assert.Equal(t, Unlimited, status.Limit)
	assert.Equal(t, Unlimited, status.Remaining)
}

func TestRegisterUserCapacity(t *testing.T) {
	svc, _ := newTestService(t, NewMemoryStore())
	ctx := context.Background()

	for i, user := range []string{"a", "b", "c"} {
		reg, err := svc.RegisterUser(ctx, Identity{UserID: user})
		require.NoError(t, err)
		assert.Equal(t, i+1, reg.Number)
		assert.False(t, reg.Existing)
	}

	again, err := svc.RegisterUser(ctx, Identity{UserID: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, again.Number)
	assert.True(t, again.Existing)

	for _, user := range []string{"d", "e"} {
		reg, err := svc.RegisterUser(ctx, Identity{UserID: user})
		assert.ErrorIs(t, err, ErrCapacityReached)
		assert.Nil(t, reg)
	}
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.IncrementUsage(context.Background(), "u1", "2024-05-01", now)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.usage["u1"].Count)
}

func TestMemoryStoreConcurrentRegistrationsRespectCap(t *testing.T) {
	store := NewMemoryStore()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		assigned []int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg, err := store.Register(context.Background(), string(rune('a'+i)), 5, time.Now())
			if err == nil {
				mu.Lock()
				assigned = append(assigned, reg.Number)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, assigned, 5)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, assigned)
}
