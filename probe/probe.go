package probe

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func is a health check. It returns an error when the resource it guards
// cannot serve requests.
type Func func(ctx context.Context) error

// PingFunc is the shape of most driver ping methods.
type PingFunc func(ctx context.Context) error

// DBPinger captures the subset of *sql.DB used for readiness checks.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// MongoPinger captures the subset of *mongo.Client used for readiness checks.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// RedisPinger captures the subset of a go-redis client used for readiness
// checks.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// NewPingProbe names fn so its failures identify the resource. A nil fn
// yields a probe that always fails.
func NewPingProbe(name string, fn PingFunc) Func {
	return ping(name, "ping function", fn == nil, fn)
}

// NewMongoPingProbe pings MongoDB with readPref, or readpref.Primary when
// readPref is nil.
func NewMongoPingProbe(client MongoPinger, readPref *readpref.ReadPref) Func {
	if readPref == nil {
		readPref = readpref.Primary()
	}
	return ping("mongo", "client", client == nil, func(ctx context.Context) error {
		return client.Ping(ctx, readPref)
	})
}

// NewRedisPingProbe sends PING through client.
func NewRedisPingProbe(client RedisPinger) Func {
	return ping("redis", "client", client == nil, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

// NewDBPingProbe pings a database/sql handle.
func NewDBPingProbe(name string, db DBPinger) Func {
	return ping(name, "db client", db == nil, func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
}

func ping(name, component string, missing bool, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if missing {
			return fmt.Errorf("%s probe: %s is nil", name, component)
		}
		if ctx == nil {
			ctx = context.Background()
		}
		if err := fn(ctx); err != nil {
			return fmt.Errorf("%s probe failed: %w", name, err)
		}
		return nil
	}
}
