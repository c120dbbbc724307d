package transmon

import (
	"math"

	"github.com/transim-team/transim-engine/core"
	"gonum.org/v1/gonum/floats"
)

// Derive computes the dressed frequencies and effective interaction
// strengths of a normalized parameter record, to second order in the
// qubit-resonator coupling. Every divisor is a detuning; a detuning
// within core.DegeneracyThreshold of zero aborts the derivation with a
// DegeneracyError instead of letting inf or NaN propagate.
func Derive(p *core.HardwareParams) (*core.DerivedParams, error) {
	n := p.NumQubits
	wq := p.Wq
	wr := p.Wr
	g := p.G
	alpha := p.Alpha
	omegaCR := p.OmegaCR

	// Dressed qubit frequency
	wqDressed := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		tmp := wq[i]
		if i != 0 {
			d := wq[i] - wr[i-1]
			if err := checkDetuning("wq-wr", d, i, i-1); err != nil {
				return nil, err
			}
			tmp += g[2*i-1] * g[2*i-1] / d
		}
		if i != n-1 {
			d := wq[i] - wr[i]
			if err := checkDetuning("wq-wr", d, i, i); err != nil {
				return nil, err
			}
			tmp += g[2*i] * g[2*i] / d
		}
		wqDressed = append(wqDressed, tmp)
	}

	// Dressed resonator frequency
	wrDressed := make([]float64, 0, n-1)
	for i := 0; i < n-1; i++ {
		tmp := wr[i]
		d1 := wq[i] - wr[i] + alpha[i]
		if err := checkDetuning("wq-wr+alpha", d1, i, i); err != nil {
			return nil, err
		}
		d2 := wq[i+1] - wr[i] + alpha[i]
		if err := checkDetuning("wq-wr+alpha", d2, i+1, i); err != nil {
			return nil, err
		}
		tmp -= g[2*i] * g[2*i] / d1
		tmp -= g[2*i+1] * g[2*i+1] / d2
		wrDressed = append(wrDressed, tmp)
	}

	// Effective qubit-qubit coupling strength
	j := make([]float64, 0, n-1)
	for i := 0; i < n-1; i++ {
		d1 := wq[i] - wr[i]
		if err := checkDetuning("wq-wr", d1, i, i); err != nil {
			return nil, err
		}
		d2 := wq[i+1] - wr[i]
		if err := checkDetuning("wq-wr", d2, i+1, i); err != nil {
			return nil, err
		}
		j = append(j, g[2*i]*g[2*i+1]*(wq[i]+wq[i+1]-2*wr[i])/2/d1/d2)
	}

	// Effective ZX strength, forward drives first, then backward
	zxCoeff := make([]float64, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		dShift := wq[i] - wq[i+1] + alpha[i]
		if err := checkDetuning("wq-wq+alpha", dShift, i, i+1); err != nil {
			return nil, err
		}
		d := wq[i] - wq[i+1]
		if err := checkDetuning("wq-wq", d, i, i+1); err != nil {
			return nil, err
		}
		zxCoeff = append(zxCoeff, j[i]*omegaCR[i]*(1/dShift-1/d))
	}
	for i := n - 1; i > 0; i-- {
		dShift := wq[i] - wq[i-1] + alpha[i]
		if err := checkDetuning("wq-wq+alpha", dShift, i, i-1); err != nil {
			return nil, err
		}
		d := wq[i] - wq[i-1]
		if err := checkDetuning("wq-wq", d, i, i-1); err != nil {
			return nil, err
		}
		zxCoeff = append(zxCoeff, j[i-1]*omegaCR[i]*(1/dShift-1/d))
	}
	// Times 2 because the ZX control operators carry -2πZX/4
	floats.Scale(2, zxCoeff)

	return &core.DerivedParams{
		WqDressed: wqDressed,
		WrDressed: wrDressed,
		J:         j,
		ZXCoeff:   zxCoeff,
	}, nil
}

func checkDetuning(name string, d float64, indices ...int) error {
	if math.Abs(d) < core.DegeneracyThreshold {
		return core.NewDegeneracyError(name, d, indices...)
	}
	return nil
}
