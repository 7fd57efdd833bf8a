package poster

import (
	"math/rand/v2"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
)

// ParseSeed parses a user-supplied seed.
// An empty or blank string means "no seed" and returns (nil, nil).
// Anything that is not a base-10 integer returns ErrCodeInvalidSeed; callers
// are expected to warn and continue unseeded.
func ParseSeed(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, perrors.New(perrors.ErrCodeInvalidSeed, "seed must be an integer, got %q", s)
	}
	return &v, nil
}

// NewRand returns the random stream for one render.
// A seed yields a deterministic PCG stream; nil yields a randomly seeded one.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(*seed)
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}
