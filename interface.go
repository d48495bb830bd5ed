package piecegraph

// Random is the source of randomness for a run. *rand.Rand satisfies it.
// Given the same sequence of numbers (& the same library & config) a run
// always produces the same graph.
type Random interface {
	// Intn returns a number in [0, n)
	Intn(n int) int

	// Float64 returns a number in [0.0, 1.0)
	Float64() float64
}
