//go:build unit
// +build unit

package transmon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transim-team/transim-engine/core"
	"github.com/transim-team/transim-engine/noise"
	"github.com/transim-team/transim-engine/operator"
)

func TestNewModelDefaultPair(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)
	assert.Equal(t, m.NumSites(), 2)
	assert.Equal(t, m.Dims(), []int{3, 3})
	assert.Equal(t, len(m.Noise()), 0)

	drift := m.Drift()
	assert.Equal(t, len(drift), 2)
	assert.Equal(t, drift[0].Sites, []int{0})
	assert.Equal(t, drift[1].Sites, []int{1})

	// sx drives first, then sy, then both drives of every link
	assert.Equal(t, m.Controls().Labels(), []string{"sx0", "sx1", "sy0", "sy1", "zx01", "zx10"})
}

func TestModelDriftIsAnharmonicity(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)
	op := m.Drift()[0].Op
	r, c := op.Dims()
	assert.Equal(t, r, 3)
	assert.Equal(t, c, 3)
	// 2π alpha/2 (a†)²a² shifts the f level only
	assert.Equal(t, op.At(0, 0), complex(0, 0))
	assert.Equal(t, op.At(1, 1), complex(0, 0))
	assert.InDelta(t, real(op.At(2, 2)), -0.3*2*math.Pi, 1e-12)
	assert.True(t, operator.IsHermitian(op, 1e-12))
}

func TestModelSingleQubitDrives(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)

	sx, ok := m.Controls().Get(core.SXLabel(0))
	assert.True(t, ok)
	assert.Equal(t, sx.Sites, []int{0})
	// 2π (a + a†)/2
	assert.InDelta(t, real(sx.Op.At(0, 1)), math.Pi, 1e-12)
	assert.InDelta(t, real(sx.Op.At(1, 2)), math.Pi*math.Sqrt2, 1e-12)
	assert.Equal(t, sx.Op.At(0, 2), complex(0, 0))
	assert.True(t, operator.IsHermitian(sx.Op, 1e-12))

	sy, ok := m.Controls().Get(core.SYLabel(0))
	assert.True(t, ok)
	// 2π (-ia + ia†)/2
	assert.InDelta(t, imag(sy.Op.At(0, 1)), -math.Pi, 1e-12)
	assert.InDelta(t, imag(sy.Op.At(1, 0)), math.Pi, 1e-12)
	assert.Equal(t, real(sy.Op.At(0, 1)), 0.0)
	assert.True(t, operator.IsHermitian(sy.Op, 1e-12))
}

func TestModelCrossResonanceDrives(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)

	zx, ok := m.Controls().Get(core.ZXLabel(0, 1))
	assert.True(t, ok)
	assert.Equal(t, zx.Sites, []int{0, 1})
	r, c := zx.Op.Dims()
	assert.Equal(t, r, 9)
	assert.Equal(t, c, 9)
	// 2π (Z/2 ⊗ X/2) on the computational subspace
	assert.InDelta(t, real(zx.Op.At(0, 1)), math.Pi/2, 1e-12)
	assert.InDelta(t, real(zx.Op.At(3, 4)), -math.Pi/2, 1e-12)
	// the projectors keep the drive off the f levels
	assert.Equal(t, zx.Op.At(1, 2), complex(0, 0))
	assert.Equal(t, zx.Op.At(6, 7), complex(0, 0))
	assert.True(t, operator.IsHermitian(zx.Op, 1e-12))

	xz, ok := m.Controls().Get(core.ZXLabel(1, 0))
	assert.True(t, ok)
	assert.Equal(t, xz.Sites, []int{0, 1})
	assert.InDelta(t, real(xz.Op.At(0, 3)), math.Pi/2, 1e-12)
	assert.InDelta(t, real(xz.Op.At(1, 4)), -math.Pi/2, 1e-12)
	assert.Equal(t, xz.Op.At(2, 5), complex(0, 0))
	assert.True(t, operator.IsHermitian(xz.Op, 1e-12))
}

func TestModelMixedDims(t *testing.T) {
	s := NewChipSetting()
	s.Dims = []int{2, 3}
	m, err := NewModel(s)
	assert.Nil(t, err)
	assert.Equal(t, m.Dims(), []int{2, 3})

	sx, ok := m.Controls().Get(core.SXLabel(0))
	assert.True(t, ok)
	r, c := sx.Op.Dims()
	assert.Equal(t, r, 2)
	assert.Equal(t, c, 2)

	// each factor of a two-qubit drive is built for its own site dimension
	zx, ok := m.Controls().Get(core.ZXLabel(0, 1))
	assert.True(t, ok)
	r, c = zx.Op.Dims()
	assert.Equal(t, r, 6)
	assert.Equal(t, c, 6)
	assert.InDelta(t, real(zx.Op.At(0, 1)), math.Pi/2, 1e-12)
	assert.InDelta(t, real(zx.Op.At(3, 4)), -math.Pi/2, 1e-12)

	xz, ok := m.Controls().Get(core.ZXLabel(1, 0))
	assert.True(t, ok)
	r, c = xz.Op.Dims()
	assert.Equal(t, r, 6)
	assert.Equal(t, c, 6)
	assert.InDelta(t, real(xz.Op.At(0, 3)), math.Pi/2, 1e-12)
	assert.InDelta(t, real(xz.Op.At(1, 4)), -math.Pi/2, 1e-12)
	assert.Equal(t, xz.Op.At(2, 5), complex(0, 0))
}

func TestModelSingleQubitChain(t *testing.T) {
	s := NewChipSetting()
	s.NumQubits = 1
	m, err := NewModel(s)
	assert.Nil(t, err)
	assert.Equal(t, m.Controls().Labels(), []string{"sx0", "sy0"})
	assert.Equal(t, len(m.CoupledPairs()), 0)
	groups := m.ControlLabels()
	assert.Equal(t, len(groups), 3)
	assert.Equal(t, len(groups[2]), 0)
}

func TestModelControlLabels(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)
	groups := m.ControlLabels()
	assert.Equal(t, len(groups), 3)
	assert.Equal(t, groups[0], core.LabelGroup{
		"sx0": `$\sigma_x^0$`,
		"sx1": `$\sigma_x^1$`,
	})
	assert.Equal(t, groups[1], core.LabelGroup{
		"sy0": `$\sigma_y^0$`,
		"sy1": `$\sigma_y^1$`,
	})
	assert.Equal(t, groups[2], core.LabelGroup{
		"zx01": `$ZX^{01}$`,
		"zx10": `$ZX^{10}$`,
	})
}

func TestModelNativeGates(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)
	assert.Equal(t, m.NativeGates(), []string{"RX", "RY", "CNOT"})
	assert.True(t, m.IsNativeGate("CNOT"))
	assert.True(t, m.IsNativeGate("cnot"))
	assert.True(t, m.IsNativeGate("RX_gate"))
	assert.False(t, m.IsNativeGate("RZ"))
}

func TestModelCoupledPairs(t *testing.T) {
	s := NewChipSetting()
	s.NumQubits = 3
	m, err := NewModel(s)
	assert.Nil(t, err)
	assert.Equal(t, m.CoupledPairs(), [][2]int{{0, 1}, {1, 2}})
	assert.Equal(t, m.Controls().Len(), 10)
}

func TestModelDriftExpandsToLattice(t *testing.T) {
	m, err := NewModel(NewChipSetting())
	assert.Nil(t, err)
	full, err := operator.Expand(m.Drift()[1].Op, m.Drift()[1].Sites, m.Dims())
	assert.Nil(t, err)
	r, c := full.Dims()
	assert.Equal(t, r, 9)
	assert.Equal(t, c, 9)
	// index 2 is (0,2) and picks up the site-1 shift, index 6 is (2,0) and does not
	assert.InDelta(t, real(full.At(2, 2)), -0.3*2*math.Pi, 1e-12)
	assert.Equal(t, full.At(6, 6), complex(0, 0))
}

func TestNewModelAttachesZZCrosstalk(t *testing.T) {
	_, err := core.NewNoiseManager(&noise.ZZCrossTalk{})
	assert.Nil(t, err)

	s := NewChipSetting()
	s.ZZCrosstalk = true
	m, err := NewModel(s)
	assert.Nil(t, err)

	terms := m.Noise()
	assert.Equal(t, len(terms), 1)
	assert.Equal(t, terms[0].Label(), core.ZZ_CROSSTALK)
	// the term carries clones of the parameter records
	assert.Equal(t, terms[0].Params(), m.Params())
	assert.NotSame(t, terms[0].Params(), m.Params())
	assert.Equal(t, terms[0].Derived(), m.Derived())
	assert.NotSame(t, terms[0].Derived(), m.Derived())
}

func TestNewModelInvalidSetting(t *testing.T) {
	_, err := NewModel(&ChipSetting{NumQubits: 0})
	assert.True(t, core.IsConfigurationError(err))
}
