package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFromClient(client), mr
}

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := payload{Name: "Deluxe", Price: 120.5}
	if err := c.Set(ctx, "room:abc", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	ok, err := c.Get(ctx, "room:abc", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestCacheMissIsNotError(t *testing.T) {
	c, _ := newTestCache(t)

	var out payload
	ok, err := c.Get(context.Background(), "missing", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("miss must report ok=false")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "x"}, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expired key must miss")
	}
}

func TestCacheDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", payload{}, time.Minute)
	_ = c.Set(ctx, "b", payload{}, time.Minute)

	if err := c.Del(ctx, "a", "b"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var out payload
	if ok, _ := c.Get(ctx, "a", &out); ok {
		t.Error("deleted key must miss")
	}

	// Deleting nothing is a no-op.
	if err := c.Del(ctx); err != nil {
		t.Errorf("empty del: %v", err)
	}
}

func TestNoopCache(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{}, time.Minute); err != nil {
		t.Errorf("noop set: %v", err)
	}
	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil || ok {
		t.Errorf("noop get must always miss: ok=%v err=%v", ok, err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Errorf("noop del: %v", err)
	}
}
