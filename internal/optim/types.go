package optim

// Vector is a parameter vector of fixed length. Personal and global bests are
// always stored as copies so they never alias a position that keeps mutating.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Particle is one candidate solution: its current position and velocity plus
// the best position it has visited. BestVal always equals the objective value
// at BestPos; the two are updated together.
type Particle struct {
	Pos     Vector
	Vel     Vector
	BestPos Vector
	BestVal float64
}

// Swarm holds the particles of one optimization run together with the global
// best found so far. A swarm is owned by exactly one run and mutated in place.
type Swarm struct {
	Particles []Particle
	BestPos   Vector
	BestVal   float64
}

// RecomputeBest scans the personal bests and updates the swarm's global best.
// The first particle holding the minimum wins on ties.
func (s *Swarm) RecomputeBest() {
	best := 0
	for i := 1; i < len(s.Particles); i++ {
		if s.Particles[i].BestVal < s.Particles[best].BestVal {
			best = i
		}
	}
	s.BestPos = s.Particles[best].BestPos.Clone()
	s.BestVal = s.Particles[best].BestVal
}

// Objective is the cost function the swarm minimizes. Implementations must be
// pure and total: out-of-domain inputs yield a penalty value, never an error.
type Objective interface {
	Evaluate(v Vector) float64
}

// ObjectiveFunc adapts a plain function to the Objective interface.
type ObjectiveFunc func(v Vector) float64

func (f ObjectiveFunc) Evaluate(v Vector) float64 { return f(v) }

// Observer receives the global best after each completed sweep.
type Observer interface {
	OnIteration(iter int, best Vector, bestVal float64)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(iter int, best Vector, bestVal float64)

func (f ObserverFunc) OnIteration(iter int, best Vector, bestVal float64) {
	f(iter, best, bestVal)
}
