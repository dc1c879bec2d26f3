package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// ApprovalLockKey names the lock serializing review decisions on one user's week.
func ApprovalLockKey(userID string, week domain.DateRange) string {
	return fmt.Sprintf("timesheet:approval:%s:%s:%s:lock", userID, week.Start.Format(time.DateOnly), week.End.Format(time.DateOnly))
}

const defaultRetryInterval = 50 * time.Millisecond

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements LockManager with SET NX PX and a token checked on release.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// NewRedisLocker creates a locker whose locks expire after ttl and whose Acquire gives up after wait.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait, retry: defaultRetryInterval}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (portsrepo.ReleaseFunc, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
					return fmt.Errorf("release lock %s: %w", key, err)
				}
				return nil
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, apperrors.ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

// LocalLocker implements LockManager with in-process keyed mutexes.
// It only serializes requests handled by the same process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

// NewLocalLocker creates a locker whose Acquire gives up after wait.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{held: make(map[string]chan struct{}), wait: wait}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (portsrepo.ReleaseFunc, error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	for {
		l.mu.Lock()
		busy, ok := l.held[key]
		if !ok {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()
			var once sync.Once
			return func(context.Context) error {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-busy:
		case <-timer.C:
			return nil, apperrors.ErrLockTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

var (
	_ portsrepo.LockManager = (*RedisLocker)(nil)
	_ portsrepo.LockManager = (*LocalLocker)(nil)
)
