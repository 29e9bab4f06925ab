// Package random provides reproducible draw sequences keyed by a global seed
// and the identity of whatever is being generated (a city, a sector ..).
package random

import (
	"hash/fnv"
	"math/rand"

	"github.com/voidshard/citylots/internal/encoding"
)

// splitmix64 finaliser constants
const (
	mixA = 0xbf58476d1ce4e5b9
	mixB = 0x94d049bb133111eb
)

// Mix folds a global seed & an identity key into a single source seed.
// FNV-1a over (seed, 0x00, key) followed by the splitmix64 finaliser, so
// the result only depends on the bytes given.
func Mix(seed string, key []byte) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write(key)

	z := h.Sum64()
	z = (z ^ (z >> 30)) * mixA
	z = (z ^ (z >> 27)) * mixB
	z ^= z >> 31

	return int64(z)
}

// CityKey encodes the identity of a city: name, centre & radius.
func CityKey(name string, x, z, radius int) []byte {
	buf := encoding.AppendString(nil, name)
	buf = encoding.AppendInt32(buf, int32(x))
	buf = encoding.AppendInt32(buf, int32(z))
	return encoding.AppendInt32(buf, int32(radius))
}

// SectorKey encodes the identity of a sector by its grid coords.
func SectorKey(x, z int) []byte {
	buf := encoding.AppendString(nil, "sector")
	buf = encoding.AppendInt32(buf, int32(x))
	return encoding.AppendInt32(buf, int32(z))
}

// Stream is an ordered sequence of uniform draws.
// Not safe for concurrent use.
type Stream struct {
	seed int64
	rng  *rand.Rand
}

// New returns a Stream for the given source seed.
func New(seed int64) *Stream {
	return &Stream{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// NewKeyed is sugar for New(Mix(seed, key))
func NewKeyed(seed string, key []byte) *Stream {
	return New(Mix(seed, key))
}

// Seed returns the source seed of this stream
func (s *Stream) Seed() int64 {
	return s.seed
}

// Range returns a uniform draw in [min, max).
func (s *Stream) Range(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Float64 returns a uniform draw in [0, 1)
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// Intn returns a uniform draw in [0, n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	return s.rng.Intn(n)
}
