package sim

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

// Rand is the random source used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// PairMode selects how the pair loop visits colliding bodies.
type PairMode string

const (
	// PairsOrdered checks every ordered pair right after the first body of
	// the pair is integrated, so each unordered pair is resolved up to twice
	// per frame.
	PairsOrdered PairMode = "ordered"
	// PairsUnique integrates every body first, then resolves each unordered
	// pair once.
	PairsUnique PairMode = "unique"
)

type Config struct {
	Bounds dynamo.Bounds
	Tuning physics.Tuning
	Pairs  PairMode

	// MaxBodies caps the population; 0 means unbounded. When full, spawning
	// evicts the oldest body that is not being manipulated.
	MaxBodies int

	// MaxDt caps the elapsed time of a single frame in milliseconds; 0
	// means uncapped.
	MaxDt float64
}

func DefaultConfig() Config {
	return Config{
		Bounds: dynamo.Bounds{W: 1200, H: 750},
		Tuning: physics.DefaultTuning(),
		Pairs:  PairsOrdered,
	}
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(w *World, dt float64)
}

// Metric accumulates a scalar over frames.
type Metric interface {
	Name() string
	Observe(w *World, dt float64)
	Value() float64
	Reset()
}

// RunConfig drives a headless run.
type RunConfig struct {
	Frames int
	Dt     float64
	Bodies int
}

type Result struct {
	Frames  int
	Bodies  int
	Elapsed float64
	Metrics map[string]float64
	Series  map[string][]float64
}
