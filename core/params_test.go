//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHardwareParamsString(t *testing.T) {
	p := &HardwareParams{
		NumQubits:   1,
		Dims:        []int{3},
		Wq:          []float64{5.15},
		Wr:          []float64{},
		G:           []float64{},
		Alpha:       []float64{-0.3},
		OmegaSingle: []float64{0.01},
		OmegaCR:     []float64{0.01},
	}
	want := `{"num_qubits":1,"dims":[3],"wq":[5.15],"wr":[],"g":[],"alpha":[-0.3],"omega_single":[0.01],"omega_cr":[0.01]}`
	assert.Equal(t, want, p.String())
}

func TestCloneHardwareParams(t *testing.T) {
	tests := []struct {
		name   string
		params *HardwareParams
	}{
		{
			name: "without lifetimes",
			params: &HardwareParams{
				NumQubits:   2,
				Dims:        []int{3, 3},
				Wq:          []float64{5.15, 5.09},
				Wr:          []float64{5.96},
				G:           []float64{0.1, 0.1},
				Alpha:       []float64{-0.3, -0.3},
				OmegaSingle: []float64{0.01, 0.01},
				OmegaCR:     []float64{0.01, 0.01},
			},
		},
		{
			name: "with lifetimes",
			params: &HardwareParams{
				NumQubits:   2,
				Dims:        []int{3, 3},
				Wq:          []float64{5.15, 5.09},
				Wr:          []float64{5.96},
				G:           []float64{0.1, 0.1},
				Alpha:       []float64{-0.3, -0.3},
				OmegaSingle: []float64{0.01, 0.01},
				OmegaCR:     []float64{0.01, 0.01},
				T1:          []float64{36.9, 35.85},
				T2:          []float64{23.8, 24.8},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloned := tt.params.Clone()

			assert.False(t, tt.params == cloned)
			assert.Equal(t, tt.params.NumQubits, cloned.NumQubits)
			assert.Equal(t, tt.params.Dims, cloned.Dims)
			assert.Equal(t, tt.params.Wq, cloned.Wq)
			assert.Equal(t, tt.params.Wr, cloned.Wr)
			assert.Equal(t, tt.params.G, cloned.G)
			assert.Equal(t, tt.params.T1, cloned.T1)

			cloned.Wq[0] = 0.0
			assert.NotEqual(t, tt.params.Wq[0], cloned.Wq[0])
		})
	}
}

func TestCloneParamsSnapshot(t *testing.T) {
	s := NewParamsSnapshot("transmon")
	s.Params = &HardwareParams{
		NumQubits: 2,
		Wq:        []float64{5.15, 5.09},
	}
	s.Derived = &DerivedParams{
		WqDressed: []float64{5.151724137931035, 5.0893103448275866},
	}

	cloned := s.Clone()

	assert.False(t, s == cloned)
	assert.False(t, s.Params == cloned.Params)
	assert.False(t, s.Derived == cloned.Derived)
	assert.Equal(t, s.ID, cloned.ID)
	assert.Equal(t, s.Family, cloned.Family)
	assert.Equal(t, s.Status, cloned.Status)
	assert.Equal(t, s.TakenAt, cloned.TakenAt)
	assert.Equal(t, s.Params.Wq, cloned.Params.Wq)
}

func TestToSnapshotStatus(t *testing.T) {
	tests := []struct {
		name       string
		str        string
		wantStatus SnapshotStatus
		wantErr    bool
	}{
		{name: "valid", str: "valid", wantStatus: VALID, wantErr: false},
		{name: "degenerate", str: "degenerate", wantStatus: DEGENERATE, wantErr: false},
		{name: "invalid", str: "invalid", wantStatus: INVALID, wantErr: false},
		{name: "unknown", str: "dummy_status", wantStatus: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := ToSnapshotStatus(tt.str)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.wantStatus, act)
		})
	}
}

func TestSnapshotStatusMarshalJSON(t *testing.T) {
	b, err := jsonIter.Marshal(DEGENERATE)
	assert.Nil(t, err)
	assert.Equal(t, `"degenerate"`, string(b))
}

func TestMarkSnapshotFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus SnapshotStatus
	}{
		{
			name:       "degeneracy failure",
			err:        NewDegeneracyError("wq-wr", 2.4e-7, 1),
			wantStatus: DEGENERATE,
		},
		{
			name:       "configuration failure",
			err:        NewConfigurationError("wr must have %d entries", 1),
			wantStatus: INVALID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewParamsSnapshot("transmon")
			msg := MarkSnapshotFailure(s, tt.err)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.Equal(t, tt.err.Error(), msg)
			assert.Equal(t, tt.err.Error(), s.Message)
		})
	}
}
