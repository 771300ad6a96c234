package crypto

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

// RandomSource returns a uniformly distributed integer in [0, n).
type RandomSource interface {
	Intn(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is safe for concurrent use.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic, not secure source for reproducible output.
// It is not safe for concurrent use.
type SeededSource struct {
	random *mathrand.Rand
}

// NewSeededSource returns a SeededSource seeded with seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{
		random: mathrand.New(mathrand.NewSource(seed)), //nolint:gosec
	}
}

func (s *SeededSource) Intn(n int) (int, error) {
	return s.random.Intn(n), nil
}
