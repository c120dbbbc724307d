package transmon

import (
	"fmt"
	"sync"
	"time"

	"github.com/transim-team/transim-engine/core"
	"go.uber.org/zap"
)

// Chip manages the lifecycle of a transmon chain model: it resolves the
// chip setting, rebuilds the model on demand and reports the chip info.
// Build and Snapshot may be called concurrently from the watch task and
// the command goroutine, so every access goes through the lock.
type Chip struct {
	mu          sync.Mutex
	settingPath string
	setting     *ChipSetting
	model       *Model
	chipInfo    *core.ChipInfo
}

// Setup resolves the chip setting once to validate it and publish the
// initial chip info. No model is built yet; the chip stays Uncalibrated
// until the first Build.
func (c *Chip) Setup(conf *core.Conf) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settingPath = conf.ChipSettingPath
	s, err := c.resolveSetting()
	if err != nil {
		return err
	}
	params, err := NewHardwareParams(s)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to resolve chip setting/reason:%s", err))
		return err
	}
	c.setting = s
	c.chipInfo = &core.ChipInfo{
		ChipName:         s.ChipName,
		Family:           ChipFamily,
		Status:           core.Uncalibrated,
		NumQubits:        params.NumQubits,
		Dims:             params.Dims,
		NativeGates:      []string{"RX", "RY", "CNOT"},
		HardwareSpecJson: params.String(),
	}
	zap.L().Debug(fmt.Sprintf("chip %s hardware:%s", s.ChipName, params.String()))
	return nil
}

// resolveSetting layers the three setting sources: built-in defaults,
// the [com.chip] table of the engine setting file, and finally the
// standalone chip setting file, which wins.
func (c *Chip) resolveSetting() (*ChipSetting, error) {
	s := NewChipSetting()
	if _, ok := core.GetComponentSetting("chip"); ok {
		if err := core.DecodeComponentSetting("chip", s); err != nil {
			zap.L().Error(fmt.Sprintf("failed to decode chip setting/reason:%s", err))
			return nil, err
		}
	}
	if c.settingPath == "" {
		return s, nil
	}
	return LoadChipSetting(c.settingPath, s)
}

// Build re-resolves the chip setting and constructs a fresh model, so an
// edited setting file takes effect on the next build.
func (c *Chip) Build() (core.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.resolveSetting()
	if err != nil {
		return nil, err
	}
	model, err := NewModel(s)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to build chip model/reason:%s", err))
		if c.chipInfo != nil {
			c.chipInfo.Status = core.Unavailable
		}
		return nil, err
	}
	c.setting = s
	c.model = model
	c.chipInfo = &core.ChipInfo{
		ChipName:         s.ChipName,
		Family:           ChipFamily,
		Status:           core.Available,
		NumQubits:        model.NumSites(),
		Dims:             model.Dims(),
		NativeGates:      model.NativeGates(),
		HardwareSpecJson: model.Params().String(),
		BuiltAt:          time.Now().Format(time.RFC3339),
	}
	zap.L().Info(fmt.Sprintf("built chip model %s with %d qubits", s.ChipName, model.NumSites()))
	return model, nil
}

// Snapshot records the parameter set of the last built model.
func (c *Chip) Snapshot() (*core.ParamsSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model == nil {
		return nil, fmt.Errorf("chip model is not built yet")
	}
	snapshot := core.NewParamsSnapshot(ChipFamily)
	snapshot.Params = c.model.Params().Clone()
	snapshot.Derived = c.model.Derived().Clone()
	return snapshot, nil
}

func (c *Chip) GetChipInfo() *core.ChipInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chipInfo
}
