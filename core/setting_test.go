//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
)

type TestSettingChip struct {
	ChipName string `toml:"chip_name"`
}

type TestSettingReport struct {
	ReportStyle string `toml:"report_style"`
}

func TestRegisterSettings(t *testing.T) {
	s := registeredSettings()
	assert.Equal(t, 2, len(s.ComponentSetting))
}

func TestParseSettings(t *testing.T) {
	ResetSetting()
	tests := []struct {
		name      string
		in        string
		wantError error
		want      *Setting
	}{
		{
			name:      "empty",
			in:        "",
			wantError: nil,
			want: &Setting{
				ComponentSetting: map[string]interface{}{},
				RunGroupSetting:  map[string]interface{}{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotError := globalSetting.parseSetting(tt.in)
			assert.Equal(t, tt.wantError, gotError)
			assert.Equal(t, tt.want, globalSetting)
		})
	}
}

func TestDecodeComponentSetting(t *testing.T) {
	ResetSetting()
	RegisterSetting("chip", &TestSettingChip{})
	err := globalSetting.parseSetting(heredoc.Doc(`
		[com.chip]
		chip_name = "riken_1"
	`))
	assert.Nil(t, err)

	decoded := &TestSettingChip{}
	err = DecodeComponentSetting("chip", decoded)
	assert.Nil(t, err)
	assert.Equal(t, "riken_1", decoded.ChipName)
}

func TestDecodeComponentSettingNotRegistered(t *testing.T) {
	ResetSetting()
	decoded := &TestSettingChip{}
	err := DecodeComponentSetting("chip", decoded)
	assert.EqualError(t, err, "component setting chip is not registered")
}

func registeredSettings() *Setting {
	ns := newSetting()
	ns.registerSetting("chip", &TestSettingChip{
		ChipName: "",
	})
	ns.registerSetting("report", &TestSettingReport{
		ReportStyle: "",
	})
	return ns
}
