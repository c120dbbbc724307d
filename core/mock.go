package core

import (
	"fmt"
	"time"

	"go.uber.org/dig"
)

const MockChipQubits int = 2

type UnimplementedNoise struct {
	params  *HardwareParams
	derived *DerivedParams
}

func (n *UnimplementedNoise) New(p *HardwareParams, d *DerivedParams) NoiseTerm {
	return &UnimplementedNoise{
		params:  p,
		derived: d,
	}
}

func (n *UnimplementedNoise) Label() string {
	return "unimplemented_noise"
}

func (n *UnimplementedNoise) Params() *HardwareParams {
	return n.params
}

func (n *UnimplementedNoise) Derived() *DerivedParams {
	return n.derived
}

type UnimplementedModel struct{}

func (m *UnimplementedModel) NumSites() int {
	return MockChipQubits
}

func (m *UnimplementedModel) Dims() []int {
	dims := make([]int, MockChipQubits)
	for i := range dims {
		dims[i] = 3
	}
	return dims
}

func (m *UnimplementedModel) Drift() []DriftTerm {
	return []DriftTerm{}
}

func (m *UnimplementedModel) Controls() *Controls {
	return NewControls()
}

func (m *UnimplementedModel) Noise() []NoiseTerm {
	return []NoiseTerm{}
}

func (m *UnimplementedModel) ControlLabels() []LabelGroup {
	return []LabelGroup{}
}

func (m *UnimplementedModel) NativeGates() []string {
	return []string{}
}

type UnimplementedModelManager struct {
	chipInfo *ChipInfo
}

func (u *UnimplementedModelManager) Setup(*Conf) error {
	u.chipInfo = &ChipInfo{
		ChipName:    "unimplementedChip",
		Family:      "mock",
		Status:      Available,
		NumQubits:   MockChipQubits,
		Dims:        (&UnimplementedModel{}).Dims(),
		NativeGates: []string{"RX", "RY", "CNOT"},
		HardwareSpecJson: `
			{
			"num_qubits": 2,
			"dims": [3, 3],
			"wq": [5.15, 5.09],
			"wr": [5.96],
			"alpha": [-0.3, -0.3],
			"g": [0.1, 0.1],
			"omega_single": [0.01, 0.01],
			"omega_cr": [0.01, 0.01]
			}`,
		BuiltAt: time.Now().Format(time.RFC3339),
	}
	return nil
}

func (u *UnimplementedModelManager) Build() (Model, error) {
	return &UnimplementedModel{}, nil
}

func (u *UnimplementedModelManager) Snapshot() (*ParamsSnapshot, error) {
	s := NewParamsSnapshot("mock")
	s.Status = VALID
	s.Params = &HardwareParams{
		NumQubits: MockChipQubits,
		Dims:      (&UnimplementedModel{}).Dims(),
	}
	s.Derived = &DerivedParams{}
	return s, nil
}

func (u *UnimplementedModelManager) GetChipInfo() *ChipInfo {
	return u.chipInfo
}

type unimplementedStore struct{}

func (u *unimplementedStore) Setup(SnapshotChan, *Conf) error { return nil }
func (u *unimplementedStore) Insert(*ParamsSnapshot) error    { return nil }
func (u *unimplementedStore) Get(snapshotID string) (*ParamsSnapshot, error) {
	return &ParamsSnapshot{}, nil
}
func (u *unimplementedStore) Latest() (*ParamsSnapshot, error) { return &ParamsSnapshot{}, nil }
func (u *unimplementedStore) Update(*ParamsSnapshot) error     { return nil }
func (u *unimplementedStore) Delete(string) error              { return nil }

type successStoreForTest struct {
	unimplementedStore
}

func (successStoreForTest) Get(snapshotID string) (*ParamsSnapshot, error) {
	return &ParamsSnapshot{
		ID:     snapshotID,
		Status: VALID,
	}, nil
}

type notFindStoreForTest struct {
	unimplementedStore
}

func (notFindStoreForTest) Get(snapshotID string) (*ParamsSnapshot, error) {
	return &ParamsSnapshot{}, fmt.Errorf("failed to find %s", snapshotID)
}

func SCWithUnimplementedContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() ModelManager { return &UnimplementedModelManager{} })
	c.Provide(func() StoreManager {
		st := &successStoreForTest{}
		st.Setup(nil, &Conf{})
		return st
	})
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithStoreContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() ModelManager { return &UnimplementedModelManager{} })
	c.Provide(func() StoreManager { return &MemoryStore{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

func SCWithModelManager(m ModelManager) *SystemComponents {
	c := dig.New()
	c.Provide(func() ModelManager { return m })
	c.Provide(func() StoreManager { return &MemoryStore{} })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}
