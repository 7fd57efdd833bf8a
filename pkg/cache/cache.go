// Package cache stores rendered posters and short-lived export handoffs.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for a
// shared server deployment and [NullCache] when caching is disabled. Keys
// come from a [Keyer] so every backend shares the same namespace layout.
//
// Only seeded renders are cacheable: an unseeded poster is different every
// time, so storing it would serve a stale random result.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok=false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// TTLArtifact covers rendered poster bytes. Seeded renders never change
	// for a given version, so this only bounds disk usage.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLExport covers server-side export handoffs.
	TTLExport = 15 * time.Minute
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey addresses the encoded bytes of one seeded poster in one format.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string

	// ExportKey addresses an export handoff by its id.
	ExportKey(id string) string
}

// ArtifactKeyOpts are the render inputs that are not part of the config.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Points     bool    `json:"points,omitempty"`
	EmbedFonts bool    `json:"embed_fonts,omitempty"`
	Version    string  `json:"version"`
}

// DefaultKeyer produces "artifact:<sha256>" and "export:<id>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(id string) string {
	return "export:" + id
}
