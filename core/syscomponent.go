package core

import (
	"encoding/json"
	"fmt"
	"github.com/go-faster/jx"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

var (
	systemComponents        *SystemComponents
	defaultReportConfigJson map[string]jx.Raw
)

func init() {
	drc := DEFAULT_REPORT_CONFIG()
	drcj := make(map[string]jx.Raw)
	drcj["report_style"] = jx.Raw(*drc.ReportStyle)
	drcj["report_options"] = jx.Raw(drc.ReportOptions)
	defaultReportConfigJson = drcj
}

func DefaultReportConfigJson() map[string]jx.Raw {
	return defaultReportConfigJson
}

type SnapshotChan chan *ParamsSnapshot

type Channels struct {
	SnapshotChan
	// when more channel is needed, add here
	// e.g. alertChan AlertChan
}

func NewChannels() *Channels {
	return &Channels{
		SnapshotChan: make(SnapshotChan),
	}
}

func (c *Channels) Close() {
	close(c.SnapshotChan)
}

func (c *Channels) Check() error {
	if c.SnapshotChan == nil {
		return fmt.Errorf("SnapshotChan is nil")
	}
	return nil
}

type ChipInfo struct {
	ChipName         string     `json:"chip_name"`
	Family           string     `json:"family"`
	Status           ChipStatus `json:"status"`
	NumQubits        int        `json:"num_qubits"`
	Dims             []int      `json:"dims"`
	NativeGates      []string   `json:"native_gates"`
	HardwareSpecJson string     `json:"hardware_spec"` // memo: JSON of HardwareParams
	BuiltAt          string     `json:"built_at"`
}

type ChipStatus int

const (
	Available ChipStatus = iota
	Unavailable
	Uncalibrated
)

func (cs ChipStatus) String() string {
	switch cs {
	case Available:
		return "Available"
	case Unavailable:
		return "Unavailable"
	case Uncalibrated:
		return "Uncalibrated"
	default:
		return "Unknown"
	}
}

type ModelManager interface {
	Setup(*Conf) error
	Build() (Model, error)
	Snapshot() (*ParamsSnapshot, error)
	GetChipInfo() *ChipInfo
}

func DEFAULT_REPORT_CONFIG() *ReportConfig {
	type DefaultReportOptions struct {
		Precision int `json:"precision"`
	}
	dro := DefaultReportOptions{
		Precision: 9,
	}
	droByte, err := json.Marshal(dro)
	if err != nil {
		panic(err)
	}
	str := "pretty"

	return &ReportConfig{
		ReportStyle:   &str,
		ReportOptions: droByte,
		UseDefault:    true,
	}
}

type ReportConfig struct {
	ReportStyle   *string         `json:"report_style"`
	ReportOptions json.RawMessage `json:"report_options"`
	UseDefault    bool            `json:"-"`
}

type StoreManager interface {
	Setup(SnapshotChan, *Conf) error
	Insert(*ParamsSnapshot) error
	Get(string) (*ParamsSnapshot, error)
	Latest() (*ParamsSnapshot, error)
	Update(*ParamsSnapshot) error
	Delete(string) error
}

type SystemComponents struct {
	*dig.Container
	*Channels
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{
		con,
		NewChannels(),
	}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	snapshotChan := s.SnapshotChan

	zap.L().Debug("Setting up store")
	var err error
	err = s.Invoke(
		func(st StoreManager) error {
			return st.Setup(snapshotChan, conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up chip model")
	err = s.Invoke(
		func(m ModelManager) error {
			return m.Setup(conf)
		})
	if err != nil {
		return err
	}
	systemComponents = s
	return nil
}

func (s *SystemComponents) TearDown() {
	s.Channels.Close()
}

func (s *SystemComponents) GetChipInfo() *ChipInfo {
	var chipInfo *ChipInfo
	s.Invoke(
		func(m ModelManager) error {
			chipInfo = m.GetChipInfo()
			return nil
		})
	return chipInfo
}

func (s *SystemComponents) BuildModel() (Model, error) {
	var model Model
	err := s.Invoke(
		func(m ModelManager) error {
			var ierr error
			model, ierr = m.Build()
			return ierr
		})
	return model, err
}

func (s *SystemComponents) TakeSnapshot() (*ParamsSnapshot, error) {
	var snapshot *ParamsSnapshot
	err := s.Invoke(
		func(m ModelManager) error {
			var ierr error
			snapshot, ierr = m.Snapshot()
			return ierr
		})
	return snapshot, err
}

func (s *SystemComponents) LatestSnapshot() (*ParamsSnapshot, error) {
	var snapshot *ParamsSnapshot
	err := s.Invoke(
		func(st StoreManager) error {
			var ierr error
			snapshot, ierr = st.Latest()
			return ierr
		})
	return snapshot, err
}
