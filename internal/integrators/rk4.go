// Package integrators provides the fixed-step integration the torque
// objective needs. The drive signal is pre-sampled at half-steps, so the
// classic RK4 stages read exact midpoint values instead of interpolating.
package integrators

// Driven is a first-order system forced by an external scalar drive.
type Driven interface {
	Derive(x []float64, drive float64) []float64
	Dim() int
}

type RK4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

// Integrate advances x0 across the drive samples, which must hold 2n+1
// half-step values for n full steps, and returns the state at every full
// step: n+1 rows of len(x0) columns.
func (r *RK4) Integrate(sys Driven, x0 []float64, drive []float64, dt float64) [][]float64 {
	n := (len(drive) - 1) / 2
	dim := len(x0)
	r.ensureScratch(dim)

	out := make([][]float64, n+1)
	x := make([]float64, dim)
	copy(x, x0)
	out[0] = append([]float64(nil), x...)

	dt6 := dt / 6.0
	for step := 0; step < n; step++ {
		d0 := drive[2*step]
		dHalf := drive[2*step+1]
		d1 := drive[2*step+2]

		copy(r.k1, sys.Derive(x, d0))

		for i := 0; i < dim; i++ {
			r.scratch[i] = x[i] + dt*0.5*r.k1[i]
		}
		copy(r.k2, sys.Derive(r.scratch, dHalf))

		for i := 0; i < dim; i++ {
			r.scratch[i] = x[i] + dt*0.5*r.k2[i]
		}
		copy(r.k3, sys.Derive(r.scratch, dHalf))

		for i := 0; i < dim; i++ {
			r.scratch[i] = x[i] + dt*r.k3[i]
		}
		copy(r.k4, sys.Derive(r.scratch, d1))

		for i := 0; i < dim; i++ {
			x[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
		}
		out[step+1] = append([]float64(nil), x...)
	}

	return out
}
