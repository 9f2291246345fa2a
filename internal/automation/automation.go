package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted session: pointer and key events replayed at fixed
// frames against a world stepped with a constant frame time.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Frames      int     `yaml:"frames"`
	Dt          float64 `yaml:"dt"`
	Events      []Event `yaml:"events"`
}

// Event is applied before the frame with the same number is stepped.
type Event struct {
	Frame  int     `yaml:"frame"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// Event actions
const (
	ActionMove          = "move"
	ActionSpawn         = "spawn"
	ActionPrimaryDown   = "primary_down"
	ActionPrimaryUp     = "primary_up"
	ActionSecondaryDown = "secondary_down"
	ActionSecondaryUp   = "secondary_up"
	ActionReset         = "reset"
)

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: scenario frames must be positive, got %d", dynamo.ErrInvalidConfig, s.Frames)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: scenario dt must be positive, got %f", dynamo.ErrInvalidConfig, s.Dt)
	}
	for i, e := range s.Events {
		switch e.Action {
		case ActionMove, ActionSpawn, ActionPrimaryDown, ActionPrimaryUp,
			ActionSecondaryDown, ActionSecondaryUp, ActionReset:
		default:
			return fmt.Errorf("%w: event %d: unknown action %q", dynamo.ErrInvalidConfig, i+1, e.Action)
		}
		if e.Frame < 0 || e.Frame >= s.Frames {
			return fmt.Errorf("%w: event %d: frame %d outside [0, %d)", dynamo.ErrInvalidConfig, i+1, e.Frame, s.Frames)
		}
	}
	return nil
}

// apply moves the pointer to the event position for every action but
// reset, then performs the action.
func apply(w *sim.World, e Event) error {
	if e.Action != ActionReset {
		w.PointerMove(dynamo.V(e.X, e.Y))
	}
	switch e.Action {
	case ActionSpawn:
		if _, err := w.Spawn(); err != nil {
			return err
		}
	case ActionPrimaryDown:
		w.PrimaryDown()
	case ActionPrimaryUp:
		w.PrimaryUp()
	case ActionSecondaryDown:
		w.SecondaryDown()
	case ActionSecondaryUp:
		w.SecondaryUp()
	case ActionReset:
		w.Reset()
	}
	return nil
}

// RunScenario replays the scenario on w and returns the collected metrics.
func RunScenario(ctx context.Context, sc *Scenario, w *sim.World, ms ...sim.Metric) (*sim.Result, error) {
	events := make([]Event, len(sc.Events))
	copy(events, sc.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	result := &sim.Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}
	for _, m := range ms {
		m.Reset()
	}

	next := 0
	for frame := 0; frame < sc.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return collect(result, w, ms), err
		}
		for ; next < len(events) && events[next].Frame == frame; next++ {
			if err := apply(w, events[next]); err != nil {
				return collect(result, w, ms), fmt.Errorf("frame %d %s: %w", frame, events[next].Action, err)
			}
		}

		w.Step(sc.Dt)
		result.Frames++
		for _, m := range ms {
			m.Observe(w, sc.Dt)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		if err := w.Validate(); err != nil {
			return collect(result, w, ms), err
		}
	}
	return collect(result, w, ms), nil
}

func collect(r *sim.Result, w *sim.World, ms []sim.Metric) *sim.Result {
	r.Bodies = len(w.Bodies())
	r.Elapsed = w.Elapsed()
	for _, m := range ms {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

// ParameterSweep runs the same seeded headless run across a range of one
// tuning parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Run       sim.RunConfig
	Seed      int64
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	PeakEnergy  float64
	Collisions  float64
	Containment float64
	Err         error
}

// RunSweep executes a parameter sweep. newWorld must return a fresh world
// seeded with the given seed; every step uses the same seed.
func RunSweep(ctx context.Context, sweep *ParameterSweep, newWorld func(seed int64) *sim.World) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", dynamo.ErrInvalidConfig, sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		w := newWorld(sweep.Seed)
		if err := w.Tuning().SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, fmt.Errorf("%w: %v", dynamo.ErrInvalidConfig, err)
		}

		energy := metrics.NewEnergy()
		hits := metrics.NewCollisions()
		contained := metrics.NewContainment(1e-9)
		s := sim.NewSimulator(w)
		s.AddMetric(energy)
		s.AddMetric(hits)
		s.AddMetric(contained)

		_, err := s.Run(ctx, sweep.Run)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			PeakEnergy:  energy.Peak(),
			Collisions:  hits.Value(),
			Containment: contained.Value(),
			Err:         err,
		})
	}

	return results, nil
}

// MonteCarloConfig repeats a headless run with different seeds.
type MonteCarloConfig struct {
	NumTrials int
	Run       sim.RunConfig
	Seed      int64
}

type MonteCarloResult struct {
	TrialID    int
	Seed       int64
	PeakEnergy float64
	Stable     bool // every body stayed finite
}

// RunMonteCarlo executes trials whose seeds come from one master seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, newWorld func(seed int64) *sim.World) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	rng := rand.New(rand.NewSource(cfg.Seed))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		seed := rng.Int63()
		energy := metrics.NewEnergy()
		s := sim.NewSimulator(newWorld(seed))
		s.AddMetric(energy)

		_, err := s.Run(ctx, cfg.Run)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		if err != nil && !isSimulationError(err) {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			Seed:       seed,
			PeakEnergy: energy.Peak(),
			Stable:     err == nil,
		})
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func isSimulationError(err error) bool {
	var se *dynamo.SimulationError
	return errors.As(err, &se)
}
