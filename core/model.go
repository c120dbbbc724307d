package core

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Channel labels follow a fixed scheme: "sx<m>"/"sy<m>" for the
// single-qubit drives of site m and "zx<m><n>" for the cross-resonance
// drive from control site m to target site n. On a chain only adjacent
// pairs exist, so decimal concatenation stays unambiguous.

func SXLabel(m int) string {
	return fmt.Sprintf("sx%d", m)
}

func SYLabel(m int) string {
	return fmt.Sprintf("sy%d", m)
}

func ZXLabel(ctrl, targ int) string {
	return fmt.Sprintf("zx%d%d", ctrl, targ)
}

// DriftTerm is a time-independent Hamiltonian term embedded at Sites.
type DriftTerm struct {
	Op    *mat.CDense
	Sites []int
}

// ControlTerm is a drivable Hamiltonian term addressed by a channel label.
type ControlTerm struct {
	Label string
	Op    *mat.CDense
	Sites []int
}

// Controls maps channel labels to control terms while preserving
// insertion order, which consumers use as the channel index order.
type Controls struct {
	order  []string
	byName map[string]*ControlTerm
}

func NewControls() *Controls {
	return &Controls{
		byName: make(map[string]*ControlTerm),
	}
}

func (c *Controls) Add(t *ControlTerm) error {
	if _, ok := c.byName[t.Label]; ok {
		err := NewConfigurationError("control channel %s is already registered", t.Label)
		zap.L().Error(err.Error())
		return err
	}
	c.order = append(c.order, t.Label)
	c.byName[t.Label] = t
	return nil
}

func (c *Controls) Get(label string) (*ControlTerm, bool) {
	t, ok := c.byName[label]
	return t, ok
}

func (c *Controls) Labels() []string {
	labels := make([]string, len(c.order))
	copy(labels, c.order)
	return labels
}

func (c *Controls) Terms() []*ControlTerm {
	terms := make([]*ControlTerm, 0, len(c.order))
	for _, label := range c.order {
		terms = append(terms, c.byName[label])
	}
	return terms
}

func (c *Controls) Len() int {
	return len(c.order)
}

// LabelGroup maps channel labels to display strings. Grouping drives the
// coloring of pulse plots; the strings themselves are free-form.
type LabelGroup map[string]string

// Model is the read-only contract a chip model exposes to processors and
// compilers. Implementations construct everything eagerly and are safe to
// share across consumers without synchronization.
type Model interface {
	NumSites() int
	Dims() []int
	Drift() []DriftTerm
	Controls() *Controls
	Noise() []NoiseTerm
	ControlLabels() []LabelGroup
	NativeGates() []string
}

// NoiseTerm is a systematic-noise contribution owned by a model. New is a
// self-factory so the noise registry can instantiate terms by label; the
// term's internal dynamics belong to the consuming collaborator, which
// reads the parameter records supplied here.
type NoiseTerm interface {
	New(*HardwareParams, *DerivedParams) NoiseTerm
	Label() string
	Params() *HardwareParams
	Derived() *DerivedParams
}
