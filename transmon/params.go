package transmon

import (
	"fmt"

	"github.com/transim-team/transim-engine/core"
)

// Default hardware parameters in GHz, matching a typical fixed-frequency
// transmon chain. Bare qubit frequencies alternate along the chain so
// that neighbouring qubits stay detuned from each other.
const (
	DefaultWqEven      = 5.15
	DefaultWqOdd       = 5.09
	DefaultWr          = 5.96
	DefaultAlpha       = -0.3
	DefaultG           = 0.1
	DefaultOmegaSingle = 0.01
	DefaultOmegaCR     = 0.01
	DefaultDim         = 3
)

// DefaultWq returns the alternating bare qubit frequencies for a chain
// of n qubits.
func DefaultWq(n int) []float64 {
	wq := make([]float64, n)
	for i := range wq {
		if i%2 == 0 {
			wq[i] = DefaultWqEven
		} else {
			wq[i] = DefaultWqOdd
		}
	}
	return wq
}

func repeat(v float64, n int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = v
	}
	return vs
}

// NewHardwareParams validates s and resolves it into a normalized
// parameter record. Wq, Alpha, OmegaSingle, OmegaCR, T1 and T2 resolve
// to one entry per qubit, Wr to one per resonator link and G to two per
// link. Validation failures are collected so one error reports every
// offending field.
func NewHardwareParams(s *ChipSetting) (*core.HardwareParams, error) {
	n := s.NumQubits
	if n < 1 {
		return nil, core.NewConfigurationError("num_qubits(%d) must be greater than 0", n)
	}

	var errs []error
	dims := s.Dims
	if len(dims) == 0 {
		dims = repeatInt(DefaultDim, n)
	} else if len(dims) != n {
		errs = append(errs, fmt.Errorf("dims must have %d entries but has %d", n, len(dims)))
	} else {
		for i, d := range dims {
			if d < 2 {
				errs = append(errs, fmt.Errorf("dims[%d](%d) must be at least 2", i, d))
			}
		}
		copied := make([]int, n)
		copy(copied, dims)
		dims = copied
	}

	hw := s.Hardware
	if hw == nil {
		hw = &HardwareSpec{}
	}
	resolve := func(p *ParamSpec, name string, want int, def []float64) []float64 {
		vs, err := p.normalize(name, want, def)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		return vs
	}
	wq := resolve(hw.Wq, "wq", n, DefaultWq(n))
	wr := resolve(hw.Wr, "wr", n-1, repeat(DefaultWr, n-1))
	g := resolve(hw.G, "g", 2*(n-1), repeat(DefaultG, 2*(n-1)))
	alpha := resolve(hw.Alpha, "alpha", n, repeat(DefaultAlpha, n))
	omegaSingle := resolve(hw.OmegaSingle, "omega_single", n, repeat(DefaultOmegaSingle, n))
	omegaCR := resolve(hw.OmegaCR, "omega_cr", n, repeat(DefaultOmegaCR, n))
	t1 := resolve(hw.T1, "t1", n, nil)
	t2 := resolve(hw.T2, "t2", n, nil)

	if err := core.CombineConfigurationErrors(errs...); err != nil {
		return nil, err
	}
	return &core.HardwareParams{
		NumQubits:   n,
		Dims:        dims,
		Wq:          wq,
		Wr:          wr,
		G:           g,
		Alpha:       alpha,
		OmegaSingle: omegaSingle,
		OmegaCR:     omegaCR,
		T1:          t1,
		T2:          t2,
	}, nil
}

func repeatInt(v, n int) []int {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = v
	}
	return vs
}
