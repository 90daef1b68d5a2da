package rand

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

const pcgSequence = 0xda3e39cb94b95bdb

// Rand is a PCG32 random source. It is not safe for concurrent use.
type Rand struct {
	r *pcg.PCG32
}

// New returns a source seeded from the clock
func New() *Rand {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a source with a fixed seed, for reproducible batches
func NewSeeded(seed int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), pcgSequence)
}

// Intn returns a uniform value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// IntRange returns a uniform value in [lo, hi]
func (r *Rand) IntRange(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1<<32 - 1)
}

// Shuffle permutes n elements uniformly (Fisher-Yates)
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// SampleSlice uniformly randomly samples an element of a non-empty slice.
func SampleSlice[T any](r *Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}

// ShuffleSlice permutes s in place
func ShuffleSlice[T any](r *Rand, s []T) {
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
