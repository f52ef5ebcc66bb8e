// Package objective scores parameter vectors by simulating the motor torque
// needed to track a modified cycloidal trajectory with an elastic load.
package objective

import (
	"math"

	"github.com/san-kum/torqopt/internal/integrators"
	"github.com/san-kum/torqopt/internal/trajectory"
)

// Penalty is returned for trajectories whose angular acceleration leaves the
// valid range. The objective never errors: invalid inputs degrade to this
// fixed value so the optimizer has no error path to handle.
const Penalty = 1e6

const (
	DefaultLoadMass      = 0.5
	DefaultSpringK       = 40.0
	DefaultLoadDamping   = 0.8
	DefaultMotorInertia  = 0.02
	DefaultMotorDamping  = 0.05
	DefaultGravityTorque = 1.5
	DefaultAccelLimit    = 45.0
)

// Config collects the mechanical constants of the simulated system: a motor
// tracking the trajectory, coupled through a spring to a damped load mass.
type Config struct {
	Trajectory    trajectory.Config
	LoadMass      float64
	SpringK       float64
	LoadDamping   float64
	MotorInertia  float64
	MotorDamping  float64
	GravityTorque float64
	AccelLimit    float64
}

func DefaultConfig() Config {
	return Config{
		Trajectory:    trajectory.DefaultConfig(),
		LoadMass:      DefaultLoadMass,
		SpringK:       DefaultSpringK,
		LoadDamping:   DefaultLoadDamping,
		MotorInertia:  DefaultMotorInertia,
		MotorDamping:  DefaultMotorDamping,
		GravityTorque: DefaultGravityTorque,
		AccelLimit:    DefaultAccelLimit,
	}
}

// Torque evaluates one parameter vector per call: build the profile, reject
// it if the acceleration limit is hit, otherwise integrate the load and sum
// the absolute motor torque over the full steps. Evaluation is deterministic
// and side-effect free; the integrator scratch makes a Torque single-use per
// goroutine, which matches the engine's strictly sequential calls.
type Torque struct {
	cfg  Config
	mode trajectory.Mode
	rk   *integrators.RK4
}

func New(cfg Config, mode trajectory.Mode) *Torque {
	return &Torque{cfg: cfg, mode: mode, rk: integrators.NewRK4()}
}

// load is the spring-coupled mass driven by the motor angle.
type load struct {
	m, k, c float64
}

func (l load) Derive(x []float64, theta float64) []float64 {
	return []float64{x[1], (l.k*(theta-x[0]) - l.c*x[1]) / l.m}
}

func (l load) Dim() int { return 2 }

// Result is the breakdown of one evaluation.
type Result struct {
	Cost     float64
	Peak     float64
	MaxAccel float64
	Valid    bool
}

// Evaluate returns the scalar cost for a parameter vector.
func (t *Torque) Evaluate(v []float64) float64 {
	return t.Describe(v).Cost
}

// Describe evaluates a vector and reports the torque breakdown alongside the
// cost. Invalid trajectories carry the penalty cost and Valid=false.
func (t *Torque) Describe(v []float64) Result {
	prof := trajectory.Cycloid(v, t.mode, t.cfg.Trajectory)

	res := Result{MaxAccel: prof.MaxAccel()}
	if res.MaxAccel >= t.cfg.AccelLimit {
		res.Cost = Penalty
		return res
	}
	res.Valid = true

	sys := load{m: t.cfg.LoadMass, k: t.cfg.SpringK, c: t.cfg.LoadDamping}
	states := t.rk.Integrate(sys, []float64{prof.Theta[0], 0}, prof.Theta, prof.Dt)

	for k := 0; k <= prof.FullSteps(); k++ {
		theta := prof.Theta[2*k]
		omega := prof.Omega[2*k]
		accel := prof.Accel[2*k]
		pos := states[k][0]

		trq := t.cfg.MotorInertia*accel +
			t.cfg.MotorDamping*omega +
			t.cfg.SpringK*(theta-pos) +
			t.cfg.GravityTorque*math.Sin(theta)

		abs := math.Abs(trq)
		res.Cost += abs
		if abs > res.Peak {
			res.Peak = abs
		}
	}

	return res
}
