package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("poster"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "poster" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "bad")
	if hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	buf := []byte("abc")
	if err := c.Set(ctx, "k", buf, time.Minute); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'

	data, hit, _ := c.Get(ctx, "k")
	if !hit || string(data) != "abc" {
		t.Errorf("Get = %q, %v; want stored copy", data, hit)
	}

	now = now.Add(time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after expiry, want 0", c.Len())
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		location string
		want     string
	}{
		{"", "cache.NullCache"},
		{"off", "cache.NullCache"},
		{"memory", "*cache.MemoryCache"},
		{dir, "*cache.FileCache"},
		{"file://" + dir, "*cache.FileCache"},
	}
	for _, tt := range tests {
		c, err := Open(ctx, tt.location)
		if err != nil {
			t.Errorf("Open(%q) error: %v", tt.location, err)
			continue
		}
		if got := typeName(c); got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.location, got, tt.want)
		}
	}

	if _, err := Open(ctx, "s3://bucket"); !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Open(s3://) error = %v, want ErrUnsupportedURL", err)
	}
}

func TestFileDir(t *testing.T) {
	tests := []struct {
		location string
		dir      string
		ok       bool
	}{
		{"/tmp/posters", "/tmp/posters", true},
		{"file:///tmp/posters", "/tmp/posters", true},
		{"memory", "", false},
		{"off", "", false},
		{"redis://localhost:6379", "", false},
	}
	for _, tt := range tests {
		dir, ok := FileDir(tt.location)
		if dir != tt.dir || ok != tt.ok {
			t.Errorf("FileDir(%q) = %q, %v; want %q, %v", tt.location, dir, ok, tt.dir, tt.ok)
		}
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case NullCache:
		return "cache.NullCache"
	case *MemoryCache:
		return "*cache.MemoryCache"
	case *FileCache:
		return "*cache.FileCache"
	case *RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("BLOBPOSTER_TEST_REDIS")
	if url == "" {
		t.Skip("BLOBPOSTER_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "blobposter-test:" + t.Name()
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "redis://%zz")
	if !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("error = %v, want ErrUnsupportedURL", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	type cfg struct{ A, B int }
	j1, _ := HashJSON(cfg{1, 2})
	j2, _ := HashJSON(cfg{1, 2})
	j3, _ := HashJSON(cfg{2, 1})
	if j1 != j2 || j1 == j3 {
		t.Error("HashJSON should follow value equality")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON should fail on unencodable values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Version: "v1"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Version: "v1"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Version: "v2"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey prefix: %s", ak1)
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Version: "v1"}) {
		t.Error("ArtifactKey should be deterministic")
	}

	if got := k.ExportKey("abc"); got != "export:abc" {
		t.Errorf("ExportKey = %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "staging:")

	if got := scoped.ExportKey("id"); got != "staging:export:id" {
		t.Errorf("ExportKey = %s", got)
	}
	if ak := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(ak, "staging:artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", ak)
	}

	if got := NewScopedKeyer(nil, "p:").ExportKey("x"); got != "p:export:x" {
		t.Errorf("nil inner: %s", got)
	}
}

func TestBackoffRetry(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Initial: time.Millisecond, Max: 2 * time.Millisecond}

	tests := []struct {
		name      string
		failFirst int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"recovers", 2, ErrUnavailable, 3, nil},
		{"exhausted", 5, ErrUnavailable, 3, ErrUnavailable},
		{"permanent", 5, Permanent(ErrUnsupportedURL), 1, ErrUnsupportedURL},
		{"context error", 5, context.DeadlineExceeded, 1, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Retry(ctx, func(context.Context) error {
				calls++
				if calls <= tt.failFirst {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestPermanentUnwraps(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should return nil")
	}
	err := Permanent(ErrUnavailable)
	if !errors.Is(err, ErrUnavailable) || err.Error() != ErrUnavailable.Error() {
		t.Errorf("Permanent() = %v, should wrap transparently", err)
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("NOAUTH Authentication required."), true},
		{errors.New("WRONGPASS invalid username-password pair or user is disabled."), true},
		{errors.New("ERR invalid password"), true},
		{errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), false},
		{errors.New("LOADING Redis is loading the dataset in memory"), false},
	}
	for _, tt := range tests {
		if got := isAuthError(tt.err); got != tt.want {
			t.Errorf("isAuthError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestBackoffStopsOnAuthError(t *testing.T) {
	calls := 0
	wrongpass := errors.New("WRONGPASS invalid username-password pair")
	err := Backoff{Attempts: 4, Initial: time.Millisecond, Max: time.Millisecond}.Retry(context.Background(), func(context.Context) error {
		calls++
		if isAuthError(wrongpass) {
			return Permanent(wrongpass)
		}
		return wrongpass
	})
	if err != wrongpass || calls != 1 {
		t.Errorf("err = %v after %d calls, want the auth error after 1 call", err, calls)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := ConnectBackoff.Retry(ctx, func(context.Context) error {
		calls++
		return ErrUnavailable
	})
	if err != context.Canceled || calls != 0 {
		t.Errorf("err = %v after %d calls, want context.Canceled before any call", err, calls)
	}
}
