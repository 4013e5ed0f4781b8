package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	// Start in-memory Redis
	s := miniredis.RunT(t)

	// Use a non-zero DB to verify it's set
	c, err := OpenRedis(context.Background(), s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.Set(ctx, "submission", "seen", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	v, err := c.Get(ctx, "submission").Result()
	if err != nil {
		t.Fatalf("GET err: %v", err)
	}
	if v != "seen" {
		t.Fatalf("GET value = %q, want %q", v, "seen")
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := OpenRedis(context.Background(), addr, 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOpenRedis_CanceledContext(t *testing.T) {
	s := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := OpenRedis(ctx, s.Addr(), 0); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
