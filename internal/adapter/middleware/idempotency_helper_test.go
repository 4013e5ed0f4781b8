package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// --- small helpers ---

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

var hexTok = strings.Repeat("a", 32)

// --- bodyHash ---

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	got := bodyHash(data)

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

// --- nowUTC ---

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

// --- buildKey ---

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/donate", hexTok)
	if k != "idemp:submit:post:/donate:"+hexTok {
		t.Fatalf("buildKey = %q", k)
	}
}

// --- validToken ---

func Test_validToken(t *testing.T) {
	t.Run("accepts uuid and 32-hex", func(t *testing.T) {
		for _, s := range []string{
			"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
			hexTok,
			"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
		} {
			if !validToken(s) {
				t.Fatalf("validToken should accept %q", s)
			}
		}
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		for _, s := range []string{
			"",
			"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",     // uppercase hex
			"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",      // 31 chars
			"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",     // non-hex chars
			"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88", // uppercase UUID
			"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88}",
		} {
			if validToken(s) {
				t.Fatalf("validToken should reject %q", s)
			}
		}
	})
}

// --- submissionToken ---

func Test_submissionToken(t *testing.T) {
	form := "donor_name=Ana&submission_token=" + hexTok

	req := httptest.NewRequest("POST", "/donate", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm+"; charset=utf-8")
	if got := submissionToken(req, []byte(form)); got != hexTok {
		t.Fatalf("form token = %q", got)
	}

	// header wins and is case-folded
	req.Header.Set(IdempotencyHeader, "3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88")
	if got := submissionToken(req, []byte(form)); got != "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88" {
		t.Fatalf("header token = %q", got)
	}

	// JSON bodies are not parsed as forms
	req = httptest.NewRequest("POST", "/donate", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if got := submissionToken(req, []byte(form)); got != "" {
		t.Fatalf("json body token = %q, want empty", got)
	}

	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if got := submissionToken(req, []byte("submission_token=nope")); got != "" {
		t.Fatalf("invalid token = %q, want empty", got)
	}
}

// --- Redis helpers: provisionalSet, loadEntry, saveFinal ---

func Test_provisionalSet_LoadEntry(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()

	key := buildKey("POST", "/donate", hexTok)
	entry := idempEntry{
		InProgress: true,
		BodySHA256: bodyHash([]byte("a=1")),
		Token:      hexTok,
		CreatedAt:  nowUTC(),
	}

	// First SetNX should succeed
	ok, err := provisionalSet(context.Background(), rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet 1: ok=%v err=%v", ok, err)
	}

	// TTL should be close to provisionalLockTTL
	ttl := rdb.TTL(context.Background(), key).Val()
	if ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional TTL not set correctly: %v", ttl)
	}

	// Second SetNX should fail (already exists)
	ok, err = provisionalSet(context.Background(), rdb, key, entry)
	if err != nil {
		t.Fatalf("provisionalSet 2 err: %v", err)
	}
	if ok {
		t.Fatalf("provisionalSet 2 should be false, got true")
	}

	got, err := loadEntry(context.Background(), rdb, key)
	if err != nil {
		t.Fatalf("loadEntry err: %v", err)
	}
	if !got.InProgress || got.Token != entry.Token || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v vs %+v", got, entry)
	}
}

func Test_saveFinal_Load_TTL(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()

	key := buildKey("POST", "/donate", hexTok)
	final := idempEntry{
		Code:        200,
		ContentType: echo.MIMETextHTMLCharsetUTF8,
		Body:        []byte("<p>thanks</p>"),
		BodySHA256:  bodyHash([]byte("a=1")),
		Token:       hexTok,
		CreatedAt:   nowUTC(),
	}

	ttlWant := 5 * time.Second
	if err := saveFinal(context.Background(), rdb, key, final, ttlWant); err != nil {
		t.Fatalf("saveFinal err: %v", err)
	}

	ttl := rdb.TTL(context.Background(), key).Val()
	if ttl <= 0 || ttl > ttlWant {
		t.Fatalf("final TTL out of range: got %v want <= %v", ttl, ttlWant)
	}

	got, err := loadEntry(context.Background(), rdb, key)
	if err != nil {
		t.Fatalf("load after final err: %v", err)
	}
	if got.Code != 200 || string(got.Body) != "<p>thanks</p>" || got.InProgress || got.ContentType != echo.MIMETextHTMLCharsetUTF8 {
		t.Fatalf("final entry mismatch: %+v", got)
	}

	if _, err := loadEntry(context.Background(), rdb, "missing"); err == nil {
		t.Fatal("expected redis.Nil for a missing key")
	}
}
