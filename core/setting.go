package core

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/transim-team/transim-engine/common"
	"go.uber.org/zap"
)

var globalSetting *Setting

// Setting is the global component-setting registry. Components register
// their defaults under [com.<name>] keys; ParseSettingFromPath then
// overlays the values from the setting file. Run-group entries are parsed
// separately by the run context.
type Setting struct {
	ComponentSetting map[string]interface{} `toml:"com,omitempty"`
	RunGroupSetting  map[string]interface{} `toml:"run_group,omitempty"`
}

func ResetSetting() {
	globalSetting = newSetting()
}

func RegisterSetting(settingName string, settingVal interface{}) {
	globalSetting.ComponentSetting[settingName] = settingVal
}

func ParseSettingFromPath(settingsPath string) error {
	tomlString, err := common.ReadSettingsFile(settingsPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read setting file/reason:%s", err))
		return err
	}
	return globalSetting.parseSetting(tomlString)
}

func GetGlobalSetting() *Setting {
	return globalSetting
}

func GetComponentSetting(name string) (interface{}, bool) {
	if globalSetting == nil {
		zap.L().Error("Setting is not initialized")
		return nil, false
	}
	val, ok := globalSetting.ComponentSetting[name]
	return val, ok
}

// DecodeComponentSetting maps the component table registered under name
// onto out, a pointer to the component's setting struct. The registry may
// hold the registered default struct or the raw table decoded from the
// setting file; both round-trip through TOML.
func DecodeComponentSetting(name string, out interface{}) error {
	raw, ok := GetComponentSetting(name)
	if !ok {
		return fmt.Errorf("component setting %s is not registered", name)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		zap.L().Error(fmt.Sprintf("failed to encode component setting %s/reason:%s", name, err))
		return err
	}
	if _, err := toml.Decode(buf.String(), out); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode component setting %s/reason:%s", name, err))
		return err
	}
	return nil
}

func newSetting() *Setting {
	return &Setting{
		ComponentSetting: make(map[string]interface{}),
		RunGroupSetting:  make(map[string]interface{}),
	}
}

func (s *Setting) registerSetting(settingName string, settingVal interface{}) {
	s.ComponentSetting[settingName] = settingVal
}

func (s *Setting) parseSetting(tomlString string) error {
	_, err := toml.Decode(tomlString, s)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse setting/reason:%s", err))
		return err
	}
	zap.L().Debug(fmt.Sprintf("Setting is %v", s.ComponentSetting))
	return nil
}
