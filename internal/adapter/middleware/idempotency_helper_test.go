package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)
	if got, want := bodyHash(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/create-loan", strings.Repeat("a", 32))
	if want := "idemp:post:/create-loan:" + strings.Repeat("a", 32); k != want {
		t.Fatalf("buildKey = %q, want %q", k, want)
	}
}

func Test_normalizeKey(t *testing.T) {
	t.Run("accepts uuid and 32-hex, any case", func(t *testing.T) {
		for in, want := range map[string]string{
			"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88":   "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
			" 3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88 ": "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
			strings.Repeat("A", 32):                  strings.Repeat("a", 32),
		} {
			got, ok := normalizeKey(in)
			if !ok || got != want {
				t.Fatalf("normalizeKey(%q) = %q, %v", in, got, ok)
			}
		}
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		for _, s := range []string{
			"",
			"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",      // 31 chars
			"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880",    // 33 chars
			"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",     // non-hex
			"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", // version 9
		} {
			if _, ok := normalizeKey(s); ok {
				t.Fatalf("normalizeKey should reject %q", s)
			}
		}
	})
}

func Test_provisionalSet_LoadEntry(t *testing.T) {
	_, rdb := newMiniRedis(t)
	ctx := context.Background()

	key := buildKey("POST", "/create-loan", strings.Repeat("a", 32))
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash([]byte(`{"a":1}`)), CreatedAt: nowUTC()}

	ok, err := provisionalSet(ctx, rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet 1: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional TTL not set correctly: %v", ttl)
	}

	ok, err = provisionalSet(ctx, rdb, key, entry)
	if err != nil || ok {
		t.Fatalf("provisionalSet 2: ok=%v err=%v, want false", ok, err)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry err: %v", err)
	}
	if !got.InProgress || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v vs %+v", got, entry)
	}
}

func Test_saveFinal_Release(t *testing.T) {
	_, rdb := newMiniRedis(t)
	ctx := context.Background()

	key := buildKey("POST", "/register", strings.Repeat("b", 32))
	final := idempEntry{Code: 201, Body: []byte(`{"ok":true}`), BodySHA256: bodyHash([]byte(`{}`)), CreatedAt: nowUTC()}

	ttlWant := 5 * time.Second
	if err := saveFinal(ctx, rdb, key, final, ttlWant); err != nil {
		t.Fatalf("saveFinal err: %v", err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > ttlWant {
		t.Fatalf("final TTL out of range: got %v want <= %v", ttl, ttlWant)
	}
	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("load after final err: %v", err)
	}
	if got.Code != 201 || string(got.Body) != `{"ok":true}` || got.InProgress {
		t.Fatalf("final entry mismatch: %+v", got)
	}

	if err := release(ctx, rdb, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := loadEntry(ctx, rdb, key); err != redis.Nil {
		t.Fatalf("key should be gone, got err=%v", err)
	}
}
