package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixIsStable(t *testing.T) {
	a := Mix("terasology", CityKey("Ashford", 10, -20, 100))
	b := Mix("terasology", CityKey("Ashford", 10, -20, 100))
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Mix("terasology", CityKey("Ashford", 10, -20, 101)))
	assert.NotEqual(t, a, Mix("terasology", CityKey("Ashford", -20, 10, 100)))
	assert.NotEqual(t, a, Mix("other", CityKey("Ashford", 10, -20, 100)))
}

func TestMixSeparatesSeedFromKey(t *testing.T) {
	// the separator byte stops ("ab", "c") colliding with ("a", "bc")
	assert.NotEqual(t, Mix("ab", []byte("c")), Mix("a", []byte("bc")))
}

func TestStreamSequencesMatch(t *testing.T) {
	s1 := NewKeyed("seed", SectorKey(1, 2))
	s2 := NewKeyed("seed", SectorKey(1, 2))
	require.Equal(t, s1.Seed(), s2.Seed())

	for i := 0; i < 1000; i++ {
		assert.Equal(t, s1.Range(-5, 5), s2.Range(-5, 5))
		assert.Equal(t, s1.Intn(17), s2.Intn(17))
	}
}

func TestRangeBounds(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		v := s.Range(10, 18)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 18.0)
	}
}

func TestDifferentKeysDiverge(t *testing.T) {
	s1 := NewKeyed("seed", SectorKey(0, 0))
	s2 := NewKeyed("seed", SectorKey(0, 1))

	same := 0
	for i := 0; i < 32; i++ {
		if s1.Float64() == s2.Float64() {
			same++
		}
	}
	assert.Less(t, same, 32)
}
