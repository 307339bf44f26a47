package rediscache

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store/storetest"
)

var redisAddr string

func init() {
	flag.StringVar(&redisAddr, "test.store.storecache.rediscache.addr", "", "address of a test redis instance")
}

// TestRoundTripAgainstLiveRedis exercises a live redis instance, grounded
// on registry/storage/cache/redis/redis_test.go's flag/skip pattern.
func TestRoundTripAgainstLiveRedis(t *testing.T) {
	if redisAddr == "" {
		redisAddr = os.Getenv("TEST_STORE_STORECACHE_REDISCACHE_ADDR")
	}
	if redisAddr == "" {
		t.Skip("please set -test.store.storecache.rediscache.addr to test against a live redis instance")
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx := context.Background()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("FlushDB: %v", err)
	}

	inner := storetest.NewMemoryDriver()
	d := NewWithClient(inner, client)

	c, err := chunk.New([]byte("cached in redis"), 0, nil)
	if err != nil {
		t.Fatalf("chunk.New: %v", err)
	}
	if err := d.Put(ctx, c); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Remove from the backing driver so Get can only succeed via the
	// redis cache populated by Put.
	inner = storetest.NewMemoryDriver()
	d.Driver = inner

	got, err := d.Get(ctx, c.Key())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Data()) != "cached in redis" {
		t.Fatalf("got data %q", got.Data())
	}
}
