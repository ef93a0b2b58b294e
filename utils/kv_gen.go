package utils

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
)

// Dist picks how generated search keys spread over the universe.
type Dist string

const (
	Uniform  Dist = "u"
	Gaussian Dist = "g" // mean n/2, std dev n/4, clipped to [1, n]
)

func ParseDist(s string) (Dist, error) {
	switch d := Dist(s); d {
	case Uniform, Gaussian:
		return d, nil
	}
	return "", fmt.Errorf("%w: distribution %q, want u or g", ErrInvalidOperation, s)
}

// newFaker seeds from an explicit source. gofakeit.New treats seed 0 as
// "pick a random one", which would make seed 0 irreproducible.
func newFaker(seed int64) *gofakeit.Faker {
	return gofakeit.NewCustom(rand.New(rand.NewSource(seed)))
}

// GenerateQueries writes a tango menu script: the tree size followed by q
// search commands over random keys in [1, n].
func GenerateQueries(w io.Writer, n, q int, seed int64, dist Dist) error {
	if err := ValidateSize(n); err != nil {
		return err
	}
	if _, err := ParseDist(string(dist)); err != nil {
		return err
	}
	faker := newFaker(seed)

	if _, err := fmt.Fprintln(w, n); err != nil {
		return err
	}
	for i := 0; i < q; i++ {
		var key int
		if dist == Gaussian {
			key = gaussianKey(faker, n)
		} else {
			key = faker.Number(1, n)
		}
		if _, err := fmt.Fprintf(w, "1 %d\n", key); err != nil {
			return err
		}
	}
	return nil
}

func gaussianKey(faker *gofakeit.Faker, n int) int {
	x := float64(n)/2 + faker.Rand.NormFloat64()*float64(n)/4
	return int(math.Min(math.Max(x, 1), float64(n)))
}

// RandomKeys returns count keys drawn from [1, max], duplicates allowed.
func RandomKeys(count, max int, seed int64) []int {
	faker := newFaker(seed)
	keys := make([]int, count)
	for i := range keys {
		keys[i] = faker.Number(1, max)
	}
	return keys
}
