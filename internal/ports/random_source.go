package ports

// Source of uniform random draws in [0, 1) for the day simulation.
// *math/rand.Rand satisfies it. A source is threaded explicitly into each
// simulated day; nothing in the engine reaches for a process-wide generator.
type RandomSource interface {
	Float64() float64
}
