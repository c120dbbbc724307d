package transmon

import (
	"fmt"
	"math"

	"github.com/transim-team/transim-engine/common"
	"github.com/transim-team/transim-engine/core"
	"github.com/transim-team/transim-engine/operator"
	"gonum.org/v1/gonum/mat"
)

// Model is the Hamiltonian model of a transmon chain: the anharmonicity
// drift terms, the sx/sy/zx control channels and the attached noise
// terms. Everything is constructed eagerly by NewModel and read-only
// afterwards, so a built model is safe to share across goroutines.
type Model struct {
	params   *core.HardwareParams
	derived  *core.DerivedParams
	drift    []core.DriftTerm
	controls *core.Controls
	noise    []core.NoiseTerm
}

func NewModel(s *ChipSetting) (*Model, error) {
	params, err := NewHardwareParams(s)
	if err != nil {
		return nil, err
	}
	derived, err := Derive(params)
	if err != nil {
		return nil, err
	}
	m := &Model{
		params:   params,
		derived:  derived,
		controls: core.NewControls(),
	}
	m.setUpDrift()
	if err := m.setUpControls(); err != nil {
		return nil, err
	}
	if s.ZZCrosstalk {
		nm := core.GetNoiseManager()
		if nm == nil {
			return nil, core.NewConfigurationError("noise manager is not initialized")
		}
		term, err := nm.NewNoiseFromLabel(core.ZZ_CROSSTALK, params.Clone(), derived.Clone())
		if err != nil {
			return nil, err
		}
		m.noise = append(m.noise, term)
	}
	return m, nil
}

func (m *Model) setUpDrift() {
	for site := 0; site < m.params.NumQubits; site++ {
		a := operator.Destroy(m.params.Dims[site])
		ad := operator.Create(m.params.Dims[site])
		coeff := complex(2*math.Pi*m.params.Alpha[site]/2, 0)
		op := operator.Scale(coeff, operator.Mul(operator.Mul(ad, ad), operator.Mul(a, a)))
		m.drift = append(m.drift, core.DriftTerm{Op: op, Sites: []int{site}})
	}
}

// setUpControls registers the control channels in their canonical order:
// the sx drive of every site, then the sy drives, then both
// cross-resonance drives of every link. The single-qubit channels carry
// 2π σ/2 and the two-qubit channels -2πZX/4.
func (m *Model) setUpControls() error {
	n := m.params.NumQubits
	dims := m.params.Dims

	for site := 0; site < n; site++ {
		a := operator.Destroy(dims[site])
		ad := operator.Create(dims[site])
		op := operator.Scale(complex(2*math.Pi/2, 0), operator.Add(a, ad))
		if err := m.controls.Add(&core.ControlTerm{
			Label: core.SXLabel(site),
			Op:    op,
			Sites: []int{site},
		}); err != nil {
			return err
		}
	}
	for site := 0; site < n; site++ {
		a := operator.Destroy(dims[site])
		ad := operator.Create(dims[site])
		op := operator.Scale(complex(2*math.Pi/2, 0),
			operator.Add(operator.Scale(complex(0, -1), a), operator.Scale(complex(0, 1), ad)))
		if err := m.controls.Add(&core.ControlTerm{
			Label: core.SYLabel(site),
			Op:    op,
			Sites: []int{site},
		}); err != nil {
			return err
		}
	}
	for site := 0; site < n-1; site++ {
		// Leakage is neglected in two-qubit drives; both factors act
		// within the computational subspace only.
		zx := operator.Scale(complex(2*math.Pi, 0),
			operator.Kron(zHalf(dims[site]), xHalf(dims[site+1])))
		if err := m.controls.Add(&core.ControlTerm{
			Label: core.ZXLabel(site, site+1),
			Op:    zx,
			Sites: []int{site, site + 1},
		}); err != nil {
			return err
		}
		xz := operator.Scale(complex(2*math.Pi, 0),
			operator.Kron(xHalf(dims[site]), zHalf(dims[site+1])))
		if err := m.controls.Add(&core.ControlTerm{
			Label: core.ZXLabel(site+1, site),
			Op:    xz,
			Sites: []int{site, site + 1},
		}); err != nil {
			return err
		}
	}
	return nil
}

// zHalf is P (1 - 2 a†a) / 2 P with P the computational-subspace
// projector, the Z/2 operator padded to the local dimension.
func zHalf(dim int) *mat.CDense {
	p := operator.TwoLevelProjector(dim)
	inner := operator.Scale(complex(0.5, 0),
		operator.Add(operator.Scale(complex(-2, 0), operator.Number(dim)), operator.Identity(dim)))
	return operator.Mul(operator.Mul(p, inner), p)
}

// xHalf is P (a† + a) / 2 P, the X/2 operator padded to the local
// dimension.
func xHalf(dim int) *mat.CDense {
	p := operator.TwoLevelProjector(dim)
	inner := operator.Scale(complex(0.5, 0),
		operator.Add(operator.Create(dim), operator.Destroy(dim)))
	return operator.Mul(operator.Mul(p, inner), p)
}

func (m *Model) NumSites() int {
	return m.params.NumQubits
}

func (m *Model) Dims() []int {
	dims := make([]int, len(m.params.Dims))
	copy(dims, m.params.Dims)
	return dims
}

func (m *Model) Drift() []core.DriftTerm {
	return m.drift
}

func (m *Model) Controls() *core.Controls {
	return m.controls
}

func (m *Model) Noise() []core.NoiseTerm {
	return m.noise
}

// ControlLabels returns the display strings of every channel, grouped
// for plotting: one group per drive kind, one color per group.
func (m *Model) ControlLabels() []core.LabelGroup {
	n := m.params.NumQubits
	sxGroup := core.LabelGroup{}
	syGroup := core.LabelGroup{}
	for site := 0; site < n; site++ {
		sxGroup[core.SXLabel(site)] = fmt.Sprintf(`$\sigma_x^%d$`, site)
		syGroup[core.SYLabel(site)] = fmt.Sprintf(`$\sigma_y^%d$`, site)
	}
	zxGroup := core.LabelGroup{}
	for site := 0; site < n-1; site++ {
		zxGroup[core.ZXLabel(site, site+1)] = fmt.Sprintf(`$ZX^{%d%d}$`, site, site+1)
		zxGroup[core.ZXLabel(site+1, site)] = fmt.Sprintf(`$ZX^{%d%d}$`, site+1, site)
	}
	return []core.LabelGroup{sxGroup, syGroup, zxGroup}
}

func (m *Model) NativeGates() []string {
	return []string{"RX", "RY", "CNOT"}
}

func (m *Model) IsNativeGate(name string) bool {
	return common.ContainsGateName(name, m.NativeGates())
}

// CoupledPairs lists the resonator links of the chain as (site, site+1)
// pairs, the only pairs a cross-resonance drive exists for.
func (m *Model) CoupledPairs() [][2]int {
	pairs := make([][2]int, 0, m.params.NumQubits-1)
	for site := 0; site < m.params.NumQubits-1; site++ {
		pairs = append(pairs, [2]int{site, site + 1})
	}
	return pairs
}

func (m *Model) Params() *core.HardwareParams {
	return m.params
}

func (m *Model) Derived() *core.DerivedParams {
	return m.derived
}
