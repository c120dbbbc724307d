// Package noise holds the systematic-noise terms a chip model can attach.
package noise

import (
	"fmt"
	"math"

	"github.com/transim-team/transim-engine/core"
	"github.com/transim-team/transim-engine/operator"
	"gonum.org/v1/gonum/mat"
)

// ZZCrossTalk is the always-on ZZ interaction between neighbouring
// qubits of a chain. A term carries the parameter records of the model
// that attached it; the interaction strength and the pulse-level
// dynamics belong to the consuming processor, which reads them from the
// derived record.
type ZZCrossTalk struct {
	params  *core.HardwareParams
	derived *core.DerivedParams
}

func (z *ZZCrossTalk) New(p *core.HardwareParams, d *core.DerivedParams) core.NoiseTerm {
	return &ZZCrossTalk{
		params:  p,
		derived: d,
	}
}

func (z *ZZCrossTalk) Label() string {
	return core.ZZ_CROSSTALK
}

func (z *ZZCrossTalk) Params() *core.HardwareParams {
	return z.params
}

func (z *ZZCrossTalk) Derived() *core.DerivedParams {
	return z.derived
}

// PairOperator builds 2π (Z/2 ⊗ Z/2) on the two sites of the given
// resonator link, each factor projected onto the computational subspace
// and padded to the local dimension.
func (z *ZZCrossTalk) PairOperator(link int) (*mat.CDense, error) {
	if z.params == nil {
		return nil, fmt.Errorf("noise term is not instantiated")
	}
	if link < 0 || link >= z.params.NumQubits-1 {
		return nil, fmt.Errorf("link %d out of range for %d qubits", link, z.params.NumQubits)
	}
	d1 := z.params.Dims[link]
	d2 := z.params.Dims[link+1]
	return operator.Scale(complex(2*math.Pi, 0), operator.Kron(zHalf(d1), zHalf(d2))), nil
}

// zHalf is P (1 - 2 a†a) / 2 P with P the computational-subspace
// projector.
func zHalf(dim int) *mat.CDense {
	p := operator.TwoLevelProjector(dim)
	inner := operator.Scale(complex(0.5, 0),
		operator.Add(operator.Scale(complex(-2, 0), operator.Number(dim)), operator.Identity(dim)))
	return operator.Mul(operator.Mul(p, inner), p)
}
