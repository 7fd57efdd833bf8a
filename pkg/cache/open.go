package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the backend for location:
//
//	"", "none", "off"          NullCache
//	"memory"                   MemoryCache
//	"redis://", "rediss://"    RedisCache
//	"file://<dir>" or "<dir>"  FileCache
func Open(ctx context.Context, location string) (Cache, error) {
	switch {
	case location == "", location == "none", location == "off":
		return NewNullCache(), nil
	case location == "memory":
		return NewMemoryCache(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisCache(ctx, location)
	}
	if dir, ok := FileDir(location); ok {
		return NewFileCache(dir)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, location)
}

// FileDir reports the directory a location names when it selects a
// FileCache.
func FileDir(location string) (string, bool) {
	switch {
	case location == "", location == "none", location == "off", location == "memory":
		return "", false
	case strings.HasPrefix(location, "file://"):
		return strings.TrimPrefix(location, "file://"), true
	case strings.Contains(location, "://"):
		return "", false
	default:
		return location, true
	}
}
