package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// HardwareParams is the normalized per-site parameter record of a chip,
// in GHz. Lengths for a chain of N qubits: Wq, Alpha, OmegaSingle and
// OmegaCR carry N entries; Wr carries N-1; G carries 2*(N-1), two
// directional couplings per resonator link. T1 and T2 are optional and
// carry N entries when present. The record is written once at
// construction and read-only afterwards.
type HardwareParams struct {
	NumQubits   int       `json:"num_qubits"`
	Dims        []int     `json:"dims"`
	Wq          []float64 `json:"wq"`
	Wr          []float64 `json:"wr"`
	G           []float64 `json:"g"`
	Alpha       []float64 `json:"alpha"`
	OmegaSingle []float64 `json:"omega_single"`
	OmegaCR     []float64 `json:"omega_cr"`
	T1          []float64 `json:"t1,omitempty"`
	T2          []float64 `json:"t2,omitempty"`
}

func (p *HardwareParams) Clone() *HardwareParams {
	return deepcopy.Copy(p).(*HardwareParams)
}

func (p *HardwareParams) String() string {
	st, err := jsonIter.Marshal(p)
	if err != nil {
		zap.L().Error("Failed to marshal core.HardwareParams")
		return ""
	}
	return string(st)
}

// DerivedParams are the dressed-frame quantities computed from a
// HardwareParams record. They are pure functions of the hardware record:
// recomputed whenever parameters change, never mutated independently.
// ZXCoeff is ordered forward pass (0->1, 1->2, ...) then backward pass
// (N-1->N-2, ..., 1->0).
type DerivedParams struct {
	WqDressed []float64 `json:"wq_dressed"`
	WrDressed []float64 `json:"wr_dressed"`
	J         []float64 `json:"j"`
	ZXCoeff   []float64 `json:"zx_coeff"`
}

func (d *DerivedParams) Clone() *DerivedParams {
	return deepcopy.Copy(d).(*DerivedParams)
}

func (d *DerivedParams) String() string {
	st, err := jsonIter.Marshal(d)
	if err != nil {
		zap.L().Error("Failed to marshal core.DerivedParams")
		return ""
	}
	return string(st)
}

type SnapshotStatus int

const (
	VALID SnapshotStatus = iota // Derivation succeeded, snapshot carries params and derived values.
	DEGENERATE                  // Derivation hit a near-resonant detuning.
	INVALID                     // Configuration rejected before derivation.
)

func (s SnapshotStatus) String() string {
	switch s {
	case VALID:
		return "valid"
	case DEGENERATE:
		return "degenerate"
	case INVALID:
		return "invalid"
	default:
		return "unknown"
	}
}

func ToSnapshotStatus(s string) (SnapshotStatus, error) {
	switch s {
	case "valid":
		return VALID, nil
	case "degenerate":
		return DEGENERATE, nil
	case "invalid":
		return INVALID, nil
	default:
		return 0, fmt.Errorf("unknown snapshot status: %s", s)
	}
}

func (s SnapshotStatus) MarshalJSON() ([]byte, error) {
	return jsonIter.Marshal(s.String())
}

// ParamsSnapshot records one derivation of a chip's parameters, as taken
// by the watch task and kept in the snapshot store.
type ParamsSnapshot struct {
	ID            string          `json:"id"`
	Family        string          `json:"family"`
	Status        SnapshotStatus  `json:"status"`
	Params        *HardwareParams `json:"params,omitempty"`
	Derived       *DerivedParams  `json:"derived,omitempty"`
	Message       string          `json:"message,omitempty"`
	SourceModTime string          `json:"source_mod_time,omitempty"`
	TakenAt       strfmt.DateTime `json:"taken_at"`
}

func NewParamsSnapshot(family string) *ParamsSnapshot {
	return &ParamsSnapshot{
		ID:      uuid.New().String(),
		Family:  family,
		Status:  VALID,
		TakenAt: strfmt.DateTime(time.Now()),
	}
}

func (s *ParamsSnapshot) Clone() *ParamsSnapshot {
	c := deepcopy.Copy(s).(*ParamsSnapshot)
	c.TakenAt = *s.TakenAt.DeepCopy()
	return c
}

func (s *ParamsSnapshot) String() string {
	st, err := jsonIter.Marshal(s)
	if err != nil {
		zap.L().Error("Failed to marshal core.ParamsSnapshot")
		return ""
	}
	return string(st)
}

func (s *ParamsSnapshot) ToPrettyString() string {
	st, err := jsonIter.Marshal(s)
	if err != nil {
		zap.L().Error("Failed to marshal core.ParamsSnapshot")
		return ""
	}
	return string(pretty.Pretty(st))
}

// MarkSnapshotFailure stamps the snapshot with the failure class of err:
// DEGENERATE for near-resonant parameter sets, INVALID otherwise.
func MarkSnapshotFailure(s *ParamsSnapshot, err error) (msg string) {
	msg = err.Error()
	s.Message = msg
	if IsDegeneracyError(err) {
		s.Status = DEGENERATE
	} else {
		s.Status = INVALID
	}
	return msg
}
