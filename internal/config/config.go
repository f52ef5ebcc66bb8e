// Package config holds the YAML run configuration: swarm parameters plus the
// mechanical constants the torque simulation needs.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/torqopt/internal/objective"
	"github.com/san-kum/torqopt/internal/optim"
	"github.com/san-kum/torqopt/internal/trajectory"
)

type Config struct {
	Encoding   string    `yaml:"encoding"` // power, gauss4, gauss6
	Dim        int       `yaml:"dim"`      // power-series length (power only)
	Particles  int       `yaml:"particles"`
	Iterations int       `yaml:"iterations"`
	Inertia    float64   `yaml:"inertia"`
	Accel      float64   `yaml:"accel"`
	Seed       int64     `yaml:"seed"`
	Sim        SimConfig `yaml:"sim"`
}

type SimConfig struct {
	Steps         int     `yaml:"steps"`
	Duration      float64 `yaml:"duration"`
	Stroke        float64 `yaml:"stroke"`
	BumpWidth     float64 `yaml:"bump_width"`
	LoadMass      float64 `yaml:"load_mass"`
	SpringK       float64 `yaml:"spring_k"`
	LoadDamping   float64 `yaml:"load_damping"`
	MotorInertia  float64 `yaml:"motor_inertia"`
	MotorDamping  float64 `yaml:"motor_damping"`
	GravityTorque float64 `yaml:"gravity_torque"`
	AccelLimit    float64 `yaml:"accel_limit"`
}

func DefaultConfig() *Config {
	sim := objective.DefaultConfig()
	return &Config{
		Encoding:   "gauss4",
		Dim:        4,
		Particles:  optim.DefaultParticles,
		Iterations: optim.DefaultIterations,
		Inertia:    optim.DefaultInertia,
		Accel:      optim.DefaultAccel,
		Sim: SimConfig{
			Steps:         sim.Trajectory.Steps,
			Duration:      sim.Trajectory.Duration,
			Stroke:        sim.Trajectory.Stroke,
			BumpWidth:     sim.Trajectory.BumpWidth,
			LoadMass:      sim.LoadMass,
			SpringK:       sim.SpringK,
			LoadDamping:   sim.LoadDamping,
			MotorInertia:  sim.MotorInertia,
			MotorDamping:  sim.MotorDamping,
			GravityTorque: sim.GravityTorque,
			AccelLimit:    sim.AccelLimit,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SwarmConfig maps the file values onto an engine configuration, resolving
// the encoding name.
func (c *Config) SwarmConfig() (optim.Config, error) {
	enc, err := optim.ParseEncoding(c.Encoding, c.Dim)
	if err != nil {
		return optim.Config{}, err
	}
	return optim.Config{
		Particles:  c.Particles,
		Iterations: c.Iterations,
		Inertia:    c.Inertia,
		Accel:      c.Accel,
		Seed:       c.Seed,
		Encoding:   enc,
	}, nil
}

// ObjectiveConfig maps the sim section onto the torque objective's constants.
func (c *Config) ObjectiveConfig() objective.Config {
	return objective.Config{
		Trajectory: trajectory.Config{
			Steps:     c.Sim.Steps,
			Duration:  c.Sim.Duration,
			Stroke:    c.Sim.Stroke,
			BumpWidth: c.Sim.BumpWidth,
		},
		LoadMass:      c.Sim.LoadMass,
		SpringK:       c.Sim.SpringK,
		LoadDamping:   c.Sim.LoadDamping,
		MotorInertia:  c.Sim.MotorInertia,
		MotorDamping:  c.Sim.MotorDamping,
		GravityTorque: c.Sim.GravityTorque,
		AccelLimit:    c.Sim.AccelLimit,
	}
}

// Mode returns the trajectory modification mode implied by the encoding.
func (c *Config) Mode() trajectory.Mode {
	if c.Encoding == "power" {
		return trajectory.ModePower
	}
	return trajectory.ModeGauss
}
