// Package optim implements a particle swarm optimizer for minimizing a
// scalar cost over a bounded parameter space.
//
// The package defines the swarm primitives and the engine driving them:
//
//   - [Vector]: a parameter vector with value semantics
//   - [Particle]: position, velocity, and personal best of one candidate
//   - [Swarm]: the particle population plus the global best
//   - [Encoding]: dimensionality, initial sampling, and clamp rule
//   - [Engine]: the fixed-budget optimization loop
//
// # Example
//
//	cfg := optim.DefaultConfig()
//	cfg.Encoding = optim.NewFourParam()
//	eng, _ := optim.New(cfg, optim.ObjectiveFunc(cost))
//	best, _ := eng.Run(ctx)
//
// # Thread Safety
//
// An Engine owns its swarm and random source exclusively and evaluates the
// objective strictly sequentially; it is NOT safe for concurrent use. Run
// separate engines for concurrent optimizations.
package optim
