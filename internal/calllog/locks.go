package calllog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// sheetLocks serializes row allocation per sheet name within this process.
// Two concurrent inserts into the same date tab would otherwise both scan to
// the same empty row and collide.
type sheetLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSheetLocks() *sheetLocks {
	return &sheetLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given sheet name and returns its unlock
// function.
func (l *sheetLocks) Lock(sheetName string) func() {
	l.mu.Lock()
	m, ok := l.locks[sheetName]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sheetName] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

const (
	leaseTTL      = 10 * time.Second
	leaseAttempts = 20
	leaseBackoff  = 250 * time.Millisecond
)

// redisLease extends the per-sheet serialization across server instances
// using a SETNX lease. Best effort: when redis is unreachable or the lease
// cannot be won in time the write proceeds anyway, since the Call Log
// contract is availability first.
type redisLease struct {
	rdb *redis.Client
}

func (r *redisLease) acquire(ctx context.Context, sheetName string) func() {
	key := "calllog:lease:" + sheetName
	token := uuid.NewString()

	for i := 0; i < leaseAttempts; i++ {
		ok, err := r.rdb.SetNX(ctx, key, token, leaseTTL).Result()
		if err != nil {
			log.Printf("calllog: redis lease for %q unavailable: %v", sheetName, err)
			return func() {}
		}
		if ok {
			return func() {
				val, err := r.rdb.Get(ctx, key).Result()
				if err == nil && val == token {
					r.rdb.Del(ctx, key)
				}
			}
		}
		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(leaseBackoff):
		}
	}
	log.Printf("calllog: could not win lease for %q, proceeding unguarded", sheetName)
	return func() {}
}
