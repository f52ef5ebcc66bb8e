package trajectory

import (
	"math"
	"testing"
)

func TestBaseCycloidEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	p := Cycloid(nil, ModePower, cfg)

	n := 2*cfg.Steps + 1
	if len(p.Theta) != n || len(p.Omega) != n || len(p.Accel) != n {
		t.Fatalf("expected %d half-step samples, got %d/%d/%d", n, len(p.Theta), len(p.Omega), len(p.Accel))
	}
	if p.FullSteps() != cfg.Steps {
		t.Errorf("expected %d full steps, got %d", cfg.Steps, p.FullSteps())
	}

	if math.Abs(p.Theta[0]) > 1e-12 {
		t.Errorf("start angle should be 0, got %v", p.Theta[0])
	}
	if math.Abs(p.Theta[n-1]-cfg.Stroke) > 1e-12 {
		t.Errorf("end angle should be %v, got %v", cfg.Stroke, p.Theta[n-1])
	}
	if math.Abs(p.Omega[0]) > 1e-12 || math.Abs(p.Omega[n-1]) > 1e-9 {
		t.Errorf("cycloid velocity should vanish at both endpoints, got %v and %v", p.Omega[0], p.Omega[n-1])
	}
}

func TestBaseCycloidAccelWithinLimit(t *testing.T) {
	p := Cycloid(nil, ModePower, DefaultConfig())
	if max := p.MaxAccel(); max <= 0 || max >= 45 {
		t.Errorf("unmodified cycloid should have 0 < max accel < 45, got %v", max)
	}
}

func TestPowerModificationPreservesEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	p := Cycloid([]float64{1.5, -2.0, 0.7}, ModePower, cfg)

	n := len(p.Theta)
	if math.Abs(p.Theta[0]) > 1e-12 {
		t.Errorf("start angle should be 0, got %v", p.Theta[0])
	}
	if math.Abs(p.Theta[n-1]-cfg.Stroke) > 1e-9 {
		t.Errorf("end angle should stay %v, got %v", cfg.Stroke, p.Theta[n-1])
	}
}

func TestZeroWeightsMatchBase(t *testing.T) {
	cfg := DefaultConfig()
	base := Cycloid(nil, ModePower, cfg)
	zero := Cycloid([]float64{0, 0, 0, 0}, ModePower, cfg)

	for k := range base.Theta {
		if base.Theta[k] != zero.Theta[k] || base.Accel[k] != zero.Accel[k] {
			t.Fatalf("zero-weight power profile diverges from base at sample %d", k)
		}
	}
}

func TestGaussBumpChangesVelocity(t *testing.T) {
	cfg := DefaultConfig()
	base := Cycloid(nil, ModeGauss, cfg)
	bumped := Cycloid([]float64{0.2, -0.1, 0.3, 0.7}, ModeGauss, cfg)

	changed := false
	for k := range base.Omega {
		if base.Omega[k] != bumped.Omega[k] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("gaussian bumps left the velocity profile untouched")
	}
}

// Finite differences of the angle column must agree with the analytic
// velocity column, since both derive from the same closed form.
func TestDerivativeConsistency(t *testing.T) {
	cfg := DefaultConfig()
	for _, tc := range []struct {
		name string
		a    []float64
		mode Mode
	}{
		{"power", []float64{0.5, -0.3}, ModePower},
		{"gauss4", []float64{0.15, -0.1, 0.4, 0.6}, ModeGauss},
		{"gauss6", []float64{0.15, -0.1, 0.4, 0.6, -1.0, 1.4}, ModeGauss},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Cycloid(tc.a, tc.mode, cfg)
			h := p.Dt / 2 // half-step spacing in seconds
			for k := 2; k < len(p.Theta)-2; k += 7 {
				fd := (p.Theta[k+1] - p.Theta[k-1]) / (2 * h)
				if diff := math.Abs(fd - p.Omega[k]); diff > 1e-2 {
					t.Fatalf("sample %d: finite-difference velocity %v vs analytic %v", k, fd, p.Omega[k])
				}
			}
		})
	}
}

func TestGaussSixScalesWidths(t *testing.T) {
	cfg := DefaultConfig()
	base := Cycloid(nil, ModeGauss, cfg)
	narrow := Cycloid([]float64{0.2, 0, 0.5, 0.5, -0.5, 1}, ModeGauss, cfg)
	wide := Cycloid([]float64{0.2, 0, 0.5, 0.5, -2.0, 1}, ModeGauss, cfg)

	bumpAccel := func(p *Profile) float64 {
		max := 0.0
		for k := range p.Accel {
			if v := math.Abs(p.Accel[k] - base.Accel[k]); v > max {
				max = v
			}
		}
		return max
	}

	// A wider bump carries the same peak velocity but spreads it out, so its
	// acceleration contribution must drop.
	if bumpAccel(wide) >= bumpAccel(narrow) {
		t.Errorf("expected wider bump to lower peak accel contribution: narrow %v, wide %v",
			bumpAccel(narrow), bumpAccel(wide))
	}
}
