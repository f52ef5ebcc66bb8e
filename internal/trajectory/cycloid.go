// Package trajectory builds the cycloidal motion profiles the torque
// objective simulates. A profile is sampled at half-steps so a fixed-step RK4
// integrator can read the drive value at t, t+dt/2 and t+dt.
package trajectory

import "math"

const (
	DefaultSteps     = 100
	DefaultDuration  = 0.8
	DefaultStroke    = math.Pi / 2
	DefaultBumpWidth = 0.1
)

// Config describes the base motion: a cycloidal rise of Stroke radians over
// Duration seconds, discretized into Steps full integrator steps. BumpWidth
// is the base width, in normalized time, of the gaussian velocity bumps.
type Config struct {
	Steps     int
	Duration  float64
	Stroke    float64
	BumpWidth float64
}

func DefaultConfig() Config {
	return Config{
		Steps:     DefaultSteps,
		Duration:  DefaultDuration,
		Stroke:    DefaultStroke,
		BumpWidth: DefaultBumpWidth,
	}
}

// Mode selects how a parameter vector modifies the base cycloid.
type Mode string

const (
	// ModePower weighs a series of boundary-vanishing polynomials.
	ModePower Mode = "power"
	// ModeGauss superimposes two gaussian bumps on the velocity profile.
	ModeGauss Mode = "gauss"
)

// Profile holds angle, angular velocity and angular acceleration sampled at
// 2*Steps+1 half-steps of the cycle.
type Profile struct {
	Dt    float64
	Theta []float64
	Omega []float64
	Accel []float64
}

// FullSteps is the number of full integrator steps the profile spans.
func (p *Profile) FullSteps() int { return (len(p.Theta) - 1) / 2 }

// MaxAccel returns the largest absolute angular acceleration over all
// half-step samples.
func (p *Profile) MaxAccel() float64 {
	max := 0.0
	for _, a := range p.Accel {
		if v := math.Abs(a); v > max {
			max = v
		}
	}
	return max
}

// Cycloid builds the modified cycloidal profile for a parameter vector. An
// empty vector yields the unmodified cycloid in either mode.
func Cycloid(a []float64, mode Mode, cfg Config) *Profile {
	n := 2*cfg.Steps + 1
	p := &Profile{
		Dt:    cfg.Duration / float64(cfg.Steps),
		Theta: make([]float64, n),
		Omega: make([]float64, n),
		Accel: make([]float64, n),
	}

	invT := 1.0 / cfg.Duration
	for k := 0; k < n; k++ {
		tau := float64(k) / float64(n-1)

		theta, dTheta, ddTheta := base(tau, cfg.Stroke)
		switch mode {
		case ModeGauss:
			dt0, dt1, dt2 := gaussTerm(tau, a, cfg.BumpWidth)
			theta += dt0
			dTheta += dt1
			ddTheta += dt2
		default:
			dt0, dt1, dt2 := powerTerm(tau, a)
			theta += dt0
			dTheta += dt1
			ddTheta += dt2
		}

		p.Theta[k] = theta
		p.Omega[k] = dTheta * invT
		p.Accel[k] = ddTheta * invT * invT
	}

	return p
}

// base is the cycloidal rise and its first two derivatives in normalized time.
func base(tau, stroke float64) (theta, dTheta, ddTheta float64) {
	s := 2 * math.Pi * tau
	theta = stroke * (tau - math.Sin(s)/(2*math.Pi))
	dTheta = stroke * (1 - math.Cos(s))
	ddTheta = stroke * 2 * math.Pi * math.Sin(s)
	return theta, dTheta, ddTheta
}

// powerTerm evaluates the weighted polynomial series sum a_i * tau^(i+1)*(1-tau),
// which vanishes at both endpoints so the boundary positions stay fixed.
func powerTerm(tau float64, a []float64) (d0, d1, d2 float64) {
	for i, w := range a {
		p := float64(i + 1)
		tp := math.Pow(tau, p)
		d0 += w * (tp - tp*tau)
		d1 += w * (p*math.Pow(tau, p-1) - (p+1)*tp)
		if i == 0 {
			d2 += w * (-2)
		} else {
			d2 += w * (p*(p-1)*math.Pow(tau, p-2) - (p+1)*p*math.Pow(tau, p-1))
		}
	}
	return d0, d1, d2
}

// gaussTerm superimposes two gaussian bumps on the velocity profile. a holds
// amplitudes a[0:2] and centers a[2:4]; with six entries, |a[4]| and a[5]
// scale the widths of the two bumps. The angle contribution is the analytic
// integral of the bump, offset so it vanishes at tau=0.
func gaussTerm(tau float64, a []float64, width float64) (d0, d1, d2 float64) {
	if len(a) < 4 {
		return 0, 0, 0
	}
	scales := [2]float64{1, 1}
	if len(a) >= 6 {
		scales[0] = math.Abs(a[4])
		scales[1] = a[5]
	}

	for i := 0; i < 2; i++ {
		amp, center := a[i], a[2+i]
		w := width * scales[i]
		u := (tau - center) / w

		e := math.Exp(-u * u)
		d0 += amp * w * math.Sqrt(math.Pi) / 2 * (math.Erf(u) - math.Erf(-center/w))
		d1 += amp * e
		d2 += amp * e * (-2 * u) / w
	}
	return d0, d1, d2
}
