package optim

import (
	"fmt"
	"math/rand"
)

// Encoding fixes the parameter vector's dimensionality, its initial sampling
// distribution, and the saturation rule applied after each position update.
// An encoding is selected once per run and never switched mid-run.
type Encoding interface {
	Dim() int
	Initialize(n int, rng *rand.Rand) ([]Vector, error)
	Clamp(v Vector) Vector
}

// Unimplemented is an encoding placeholder with no bounds configured. Its
// Initialize fails with ErrNotImplemented, so an engine handed one stops
// before evaluating anything.
type Unimplemented struct{}

func (Unimplemented) Dim() int { return 0 }

func (Unimplemented) Initialize(n int, rng *rand.Rand) ([]Vector, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) Clamp(v Vector) Vector { return v }

// Range is a closed interval for one coordinate.
type Range struct {
	Lo, Hi float64
}

// Bounds encodes one Range per coordinate. Initialization samples each
// coordinate uniformly within its range; clamping saturates coordinate-wise
// with no renormalization of the clamped mass.
type Bounds []Range

func (b Bounds) Dim() int { return len(b) }

func (b Bounds) Initialize(n int, rng *rand.Rand) ([]Vector, error) {
	if len(b) == 0 {
		return nil, ErrNotImplemented
	}
	vecs := make([]Vector, n)
	for i := range vecs {
		v := make(Vector, len(b))
		for j, r := range b {
			v[j] = r.Lo + rng.Float64()*(r.Hi-r.Lo)
		}
		vecs[i] = v
	}
	return vecs, nil
}

func (b Bounds) Clamp(v Vector) Vector {
	out := v.Clone()
	for j, r := range b {
		if out[j] < r.Lo {
			out[j] = r.Lo
		} else if out[j] > r.Hi {
			out[j] = r.Hi
		}
	}
	return out
}

// Default box bounds for the power-series encoding.
const (
	DefaultBoxMin = -2.0
	DefaultBoxMax = 2.0
)

// NewBoundedBox returns a dim-dimensional encoding with the same [lo, hi]
// bounds on every coordinate.
func NewBoundedBox(dim int, lo, hi float64) Bounds {
	b := make(Bounds, dim)
	for i := range b {
		b[i] = Range{lo, hi}
	}
	return b
}

// NewFourParam returns the four-parameter mixed encoding: two amplitude
// coordinates in [-0.2, 0.2] and two center coordinates in [0, 1].
func NewFourParam() Bounds {
	return Bounds{
		{-0.2, 0.2},
		{-0.2, 0.2},
		{0, 1},
		{0, 1},
	}
}

// NewSixParam returns the six-parameter mixed encoding: the four-parameter
// layout plus two width coordinates in [-2.0, -0.5] and [0.5, 2.0].
func NewSixParam() Bounds {
	return Bounds{
		{-0.2, 0.2},
		{-0.2, 0.2},
		{0, 1},
		{0, 1},
		{-2.0, -0.5},
		{0.5, 2.0},
	}
}

// ParseEncoding maps a config name to a concrete encoding. dim is only used
// by the power encoding, whose dimensionality is not fixed.
func ParseEncoding(name string, dim int) (Encoding, error) {
	switch name {
	case "power":
		if dim <= 0 {
			return nil, fmt.Errorf("%w: power encoding needs a positive dim, got %d", ErrUnknownEncoding, dim)
		}
		return NewBoundedBox(dim, DefaultBoxMin, DefaultBoxMax), nil
	case "gauss4":
		return NewFourParam(), nil
	case "gauss6":
		return NewSixParam(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}
