package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyUsage         = "satirist:usage:%s:%s" // user, day
	keyUsageLast     = "satirist:usage:%s:%s:last"
	keyRegistration  = "satirist:registration:%s"
	keyRegistrations = "satirist:registrations"

	// a day key outlives its day so late reads across midnight still resolve
	usageTTL = 48 * time.Hour
)

// registers atomically: returns the existing number negated, 0 when full,
// or the newly assigned number
var registerScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return -tonumber(redis.call('HGET', KEYS[1], 'number'))
end
local taken = tonumber(redis.call('GET', KEYS[2]) or '0')
if taken >= tonumber(ARGV[1]) then
	return 0
end
local n = redis.call('INCR', KEYS[2])
redis.call('HSET', KEYS[1], 'number', n, 'registeredAt', ARGV[2])
return n
`)

// keeps one counter key per user and day
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// creates a redis store from a URL, verifying the connection
func NewRedisStoreFromURL(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// exposes the connection so other components can share it
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) GetUsage(ctx context.Context, userID, day string) (Usage, error) {
	pipe := r.client.Pipeline()
	countCmd := pipe.Get(ctx, fmt.Sprintf(keyUsage, userID, day))
	lastCmd := pipe.Get(ctx, fmt.Sprintf(keyUsageLast, userID, day))

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Usage{}, err
	}

	count, err := countCmd.Int()
	if errors.Is(err, redis.Nil) {
		return Usage{}, nil
	}

	if err != nil {
		return Usage{}, err
	}

	u := Usage{Date: day, Count: count}

	if last, err := lastCmd.Result(); err == nil {
		if t, parseErr := time.Parse(time.RFC3339Nano, last); parseErr == nil {
			u.LastGenerated = t
		}
	}

	return u, nil
}

func (r *RedisStore) IncrementUsage(ctx context.Context, userID, day string, at time.Time) (int, error) {
	countKey := fmt.Sprintf(keyUsage, userID, day)
	lastKey := fmt.Sprintf(keyUsageLast, userID, day)

	var incr *redis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, countKey)
		pipe.Expire(ctx, countKey, usageTTL)
		pipe.Set(ctx, lastKey, at.UTC().Format(time.RFC3339Nano), usageTTL)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return int(incr.Val()), nil
}

func (r *RedisStore) GetRegistration(ctx context.Context, userID string) (*Registration, error) {
	fields, err := r.client.HGetAll(ctx, fmt.Sprintf(keyRegistration, userID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, nil
	}

	return parseRegistration(fields)
}

func (r *RedisStore) Register(ctx context.Context, userID string, capacity int, at time.Time) (*Registration, error) {
	regKey := fmt.Sprintf(keyRegistration, userID)

	n, err := registerScript.Run(ctx, r.client,
		[]string{regKey, keyRegistrations},
		capacity, at.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to assign registration number: %w", err)
	}

	switch {
	case n == 0:
		return nil, ErrCapacityReached
	case n < 0:
		reg, err := r.GetRegistration(ctx, userID)
		if err != nil {
			return nil, err
		}

		if reg == nil {
			return nil, fmt.Errorf("registration for %s vanished", userID)
		}

		reg.Existing = true

		return reg, nil
	default:
		return &Registration{Number: n, RegisteredAt: at.UTC()}, nil
	}
}

func parseRegistration(fields map[string]string) (*Registration, error) {
	n, err := strconv.Atoi(fields["number"])
	if err != nil {
		return nil, fmt.Errorf("invalid registration number %q: %w", fields["number"], err)
	}

	reg := &Registration{Number: n}

	if ts := fields["registeredAt"]; ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			reg.RegisteredAt = t
		}
	}

	return reg, nil
}
