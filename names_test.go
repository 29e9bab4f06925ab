package citylots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voidshard/citylots/internal/random"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func TestCityNamesDistinct(t *testing.T) {
	names := cityNames(random.New(7), 1000)
	assert.Len(t, names, 1000)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate name %s", n)
		seen[n] = true
	}
}

func TestCityNamesNumbersRepeats(t *testing.T) {
	assert.Equal(t, []string{"Ashby", "Ashby 2", "Ashby 3"}, cityNames(zeroRand{}, 3))
	assert.Empty(t, cityNames(zeroRand{}, 0))
}

func TestCityNamesDeterministic(t *testing.T) {
	assert.Equal(t, cityNames(random.New(99), 10), cityNames(random.New(99), 10))
}
