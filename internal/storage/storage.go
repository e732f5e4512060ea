// Package storage opens the optional backing stores: postgres for the audit
// trail and redis for the cross-instance write lease. Both are optional; the
// sync engine degrades to process-log auditing and in-process locking.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MPC-IT/calllog-sync/internal/audit"
)

// OpenDB connects to postgres and migrates the audit schema.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.AutoMigrate(&audit.Event{}); err != nil {
		return nil, fmt.Errorf("migrating audit schema: %w", err)
	}
	return db, nil
}

// OpenRedis connects to redis and verifies the connection with a short ping.
// A failed ping is logged but not fatal; the lease degrades gracefully.
func OpenRedis(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("storage: redis at %s not reachable yet: %v", addr, err)
	}
	return rdb
}
