package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Simulator runs a world headless with a fixed frame time and collects
// metrics. Input is scripted through the world's pointer handlers.
type Simulator struct {
	world     *World
	metrics   []Metric
	observers []Observer
}

func NewSimulator(w *World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *World { return s.world }

// Run spawns cfg.Bodies bodies at random positions and advances cfg.Frames
// frames of cfg.Dt milliseconds each. It stops early with a
// *dynamo.SimulationError if any body turns non-finite.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	w := s.world
	for _, m := range s.metrics {
		m.Reset()
	}

	if err := s.populate(cfg.Bodies); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}
	for _, m := range s.metrics {
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		w.Step(cfg.Dt)
		result.Frames++

		for _, m := range s.metrics {
			m.Observe(w, cfg.Dt)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, o := range s.observers {
			o.OnFrame(w, cfg.Dt)
		}

		if err := w.Validate(); err != nil {
			s.collect(result)
			return result, err
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(r *Result) {
	r.Bodies = len(s.world.Bodies())
	r.Elapsed = s.world.Elapsed()
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) populate(n int) error {
	w := s.world
	b := w.Bounds()
	margin := w.cfg.Tuning.SpawnRadiusMin + w.cfg.Tuning.SpawnRadiusSpan
	for i := 0; i < n; i++ {
		x := margin + w.rng.Float64()*(b.W-2*margin)
		y := margin + w.rng.Float64()*(b.H-2*margin)
		w.PointerMove(dynamo.V(x, y))
		if _, err := w.Spawn(); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Bodies < 0 {
		return fmt.Errorf("%w: bodies must not be negative, got %d", dynamo.ErrInvalidConfig, cfg.Bodies)
	}
	return nil
}
