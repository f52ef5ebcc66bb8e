package optim

import (
	"context"
	"math/rand"
)

const (
	DefaultParticles  = 50
	DefaultIterations = 200
	DefaultInertia    = 0.730
	DefaultAccel      = 2.05
)

// Config holds the run parameters of one optimization. The encoding fixes
// both the vector dimensionality and the clamp rule.
type Config struct {
	Particles  int
	Iterations int
	Inertia    float64
	Accel      float64
	Seed       int64
	Encoding   Encoding
}

// DefaultConfig returns the standard run parameters. The encoding must still
// be chosen by the caller.
func DefaultConfig() Config {
	return Config{
		Particles:  DefaultParticles,
		Iterations: DefaultIterations,
		Inertia:    DefaultInertia,
		Accel:      DefaultAccel,
	}
}

func (c Config) Validate() error {
	if c.Particles <= 0 {
		return ErrSwarmSize
	}
	if c.Iterations <= 0 {
		return ErrIterations
	}
	if c.Encoding == nil {
		return ErrNoEncoding
	}
	return nil
}

// Engine drives a particle swarm to termination and reports the best-found
// parameter vector. Evaluation is strictly sequential and single-threaded:
// N*(T+1) objective calls per run.
type Engine struct {
	cfg       Config
	obj       Objective
	rng       *rand.Rand
	observers []Observer
	swarm     *Swarm
}

// New builds an engine with its own seeded random source, so a run is exactly
// reproducible for a fixed seed.
func New(cfg Config, obj Objective) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNoObjective
	}
	return &Engine{
		cfg: cfg,
		obj: obj,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Swarm exposes the engine's swarm state. It is nil before Run and reflects
// the final sweep afterwards.
func (e *Engine) Swarm() *Swarm { return e.swarm }

// Run executes the full fixed iteration budget and returns the global-best
// vector. There is no early-stopping criterion. Cancellation is checked
// between sweeps; a cancelled run returns the best vector found so far
// together with ctx.Err().
func (e *Engine) Run(ctx context.Context) (Vector, error) {
	positions, err := e.cfg.Encoding.Initialize(e.cfg.Particles, e.rng)
	if err != nil {
		return nil, err
	}

	dim := e.cfg.Encoding.Dim()
	swarm := &Swarm{Particles: make([]Particle, len(positions))}
	for i, pos := range positions {
		swarm.Particles[i] = Particle{
			Pos:     pos,
			Vel:     make(Vector, dim),
			BestPos: pos.Clone(),
			BestVal: e.obj.Evaluate(pos),
		}
	}
	swarm.RecomputeBest()
	e.swarm = swarm

	for iter := 0; iter < e.cfg.Iterations; iter++ {
		select {
		case <-ctx.Done():
			return swarm.BestPos.Clone(), ctx.Err()
		default:
		}

		e.sweep(swarm)
		swarm.RecomputeBest()

		for _, o := range e.observers {
			o.OnIteration(iter, swarm.BestPos, swarm.BestVal)
		}
	}

	return swarm.BestPos.Clone(), nil
}

// sweep updates every particle once, in index order. The global best is
// snapshotted before the sweep; it is not refreshed mid-sweep.
func (e *Engine) sweep(s *Swarm) {
	g := s.BestPos
	w, c := e.cfg.Inertia, e.cfg.Accel

	for i := range s.Particles {
		p := &s.Particles[i]

		// One r1/r2 pair per particle per sweep, reused across all
		// coordinates. Per-coordinate draws would change the convergence
		// dynamics; keep the shared pair.
		r1 := e.rng.Float64()
		r2 := e.rng.Float64()

		for j := range p.Vel {
			p.Vel[j] = w * (p.Vel[j] + c*r1*(p.BestPos[j]-p.Pos[j]) + c*r2*(g[j]-p.Pos[j]))
		}

		cand := make(Vector, len(p.Pos))
		for j := range cand {
			cand[j] = p.Pos[j] + p.Vel[j]
		}
		p.Pos = e.cfg.Encoding.Clamp(cand)

		// Strict improvement only; ties keep the earlier best.
		if val := e.obj.Evaluate(p.Pos); val < p.BestVal {
			p.BestVal = val
			p.BestPos = p.Pos.Clone()
		}
	}
}
