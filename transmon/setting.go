// Package transmon models a chain of fixed-frequency superconducting
// qubits. Single-qubit control is realized by rotations around the X and
// Y axis while two-qubit gates are implemented with cross-resonance
// drives between chain neighbours. Each site is modelled with a
// configurable local dimension, three levels by default, so that leakage
// out of the computational subspace stays visible.
//
// For the underlying physics see https://arxiv.org/abs/2005.12667 and
// https://journals.aps.org/pra/abstract/10.1103/PhysRevA.101.052308.
package transmon

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/transim-team/transim-engine/common"
	"go.uber.org/zap"
)

const ChipFamily = "transmon"

// ParamSpec is a hardware parameter as written in a chip setting file:
// either a single scalar, broadcast to every entry of the target list,
// or an explicit per-entry list.
type ParamSpec struct {
	scalar *float64
	list   []float64
}

func ScalarSpec(v float64) *ParamSpec {
	return &ParamSpec{scalar: &v}
}

func ListSpec(vs ...float64) *ParamSpec {
	return &ParamSpec{list: vs}
}

func (p *ParamSpec) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case float64:
		p.scalar = &val
	case int64:
		f := float64(val)
		p.scalar = &f
	case []interface{}:
		list := make([]float64, 0, len(val))
		for _, e := range val {
			switch n := e.(type) {
			case float64:
				list = append(list, n)
			case int64:
				list = append(list, float64(n))
			default:
				return fmt.Errorf("unsupported parameter entry type %T", e)
			}
		}
		p.list = list
	default:
		return fmt.Errorf("unsupported parameter type %T", v)
	}
	return nil
}

// normalize resolves the spec against the wanted length. A scalar is
// broadcast and a list must match exactly. An unset spec falls back to def.
func (p *ParamSpec) normalize(name string, want int, def []float64) ([]float64, error) {
	if p == nil || (p.scalar == nil && p.list == nil) {
		return def, nil
	}
	if p.scalar != nil {
		vs := make([]float64, want)
		for i := range vs {
			vs[i] = *p.scalar
		}
		return vs, nil
	}
	if len(p.list) != want {
		return nil, fmt.Errorf("%s must have %d entries but has %d", name, want, len(p.list))
	}
	vs := make([]float64, want)
	copy(vs, p.list)
	return vs, nil
}

// HardwareSpec is the [hardware] table of a chip setting file. All
// frequencies and strengths are in GHz; t1 and t2 are in microseconds.
type HardwareSpec struct {
	Wq          *ParamSpec `toml:"wq"`
	Wr          *ParamSpec `toml:"wr"`
	G           *ParamSpec `toml:"g"`
	Alpha       *ParamSpec `toml:"alpha"`
	OmegaSingle *ParamSpec `toml:"omega_single"`
	OmegaCR     *ParamSpec `toml:"omega_cr"`
	T1          *ParamSpec `toml:"t1"`
	T2          *ParamSpec `toml:"t2"`
}

type ChipSetting struct {
	ChipName    string        `toml:"chip_name"`
	NumQubits   int           `toml:"num_qubits"`
	Dims        []int         `toml:"dims"`
	ZZCrosstalk bool          `toml:"zz_crosstalk"`
	Hardware    *HardwareSpec `toml:"hardware"`
}

func NewChipSetting() *ChipSetting {
	return &ChipSetting{
		ChipName:  "transmon_chain_2",
		NumQubits: 2,
		Hardware:  &HardwareSpec{},
	}
}

// LoadChipSetting overlays the TOML file at path onto base. A missing
// file leaves base untouched, so the registered defaults survive.
func LoadChipSetting(path string, base *ChipSetting) (*ChipSetting, error) {
	blob, assetErr := common.ReadFile(path)
	if assetErr != nil {
		zap.L().Info(fmt.Sprintf("Failed to read file:%s Reason:%s", path, assetErr))
		return base, nil
	}
	if _, err := toml.Decode(blob, base); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode blob:%s", blob))
		return &ChipSetting{}, err
	}
	return base, nil
}
