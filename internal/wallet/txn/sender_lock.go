package txn

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrSenderLockTimeout = errors.New("timed out waiting for sender lock")

// SenderLocker serializes submissions per sender address, so concurrent requests from one wallet
// do not race on the account sequence number.
type SenderLocker interface {
	// Lock blocks until sender is free or ctx is done. The returned function releases the lock.
	Lock(ctx context.Context, sender address.Address) (func(), error)
}

// LocalSenderLocker is an in-process keyed mutex. Idle keys are dropped.
type LocalSenderLocker struct {
	mu    sync.Mutex
	locks map[address.Address]*senderLock
}

type senderLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalSenderLocker() *LocalSenderLocker {
	return &LocalSenderLocker{
		locks: make(map[address.Address]*senderLock),
	}
}

func (l *LocalSenderLocker) Lock(ctx context.Context, sender address.Address) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[sender]
	if !ok {
		lock = &senderLock{ch: make(chan struct{}, 1)}
		l.locks[sender] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(sender, lock, false)
		return nil, errors.Wrapf(ErrSenderLockTimeout, "sender %s: %v", sender, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(sender, lock, true) })
	}, nil
}

func (l *LocalSenderLocker) release(sender address.Address, lock *senderLock, held bool) {
	if held {
		<-lock.ch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, sender)
	}
}

// size reports the number of tracked senders.
func (l *LocalSenderLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// unlockScript deletes the key only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSenderLocker is a SET NX PX lock shared by all replicas. The TTL bounds how long a
// crashed holder can block a sender.
type RedisSenderLocker struct {
	client    redis.UniversalClient
	ttl       time.Duration
	retry     time.Duration
	keyPrefix string
}

func NewRedisSenderLocker(client redis.UniversalClient, ttl time.Duration) *RedisSenderLocker {
	return &RedisSenderLocker{
		client:    client,
		ttl:       ttl,
		retry:     50 * time.Millisecond,
		keyPrefix: "paypost:sender-lock:",
	}
}

func (l *RedisSenderLocker) Lock(ctx context.Context, sender address.Address) (func(), error) {
	key := l.keyPrefix + sender.String()
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrapf(err, "failed to acquire sender lock for %s", sender)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ErrSenderLockTimeout, "sender %s: %v", sender, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the request context may already be done, release with a fresh one
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = unlockScript.Run(releaseCtx, l.client, []string{key}, token).Err()
		})
	}, nil
}

// Close closes the underlying Redis client.
func (l *RedisSenderLocker) Close() error {
	return l.client.Close()
}
