package citylots

import (
	"fmt"
)

var (
	namePrefixes = []string{
		"Ash", "Black", "Bram", "Cold", "Crane", "Dun", "East", "Elder",
		"Fen", "Glen", "Grey", "Hart", "Holm", "Kings", "Lark", "March",
		"Mere", "Moss", "North", "Rook", "Salt", "Shep", "South", "Thorn",
		"Wald", "West", "Whit", "Wil", "Wren", "Yew",
	}
	nameSuffixes = []string{
		"by", "borough", "caster", "combe", "den", "don", "field", "ford",
		"ham", "hithe", "holt", "hurst", "ley", "mouth", "ness", "stead",
		"stoke", "thorpe", "ton", "wick", "worth",
	}
)

// intner is anything we can draw an index from
type intner interface {
	Intn(n int) int
}

// cityNames returns `count` distinct settlement names drawn from `rng`.
// Repeats get a numeral appended.
func cityNames(rng intner, count int) []string {
	used := map[string]bool{}
	names := make([]string, 0, count)

	for len(names) < count {
		base := namePrefixes[rng.Intn(len(namePrefixes))] + nameSuffixes[rng.Intn(len(nameSuffixes))]
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s %d", base, n)
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}
