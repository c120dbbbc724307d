//go:build unit
// +build unit

package transmon

import (
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
)

func TestParamSpecUnmarshalTOML(t *testing.T) {
	tests := []struct {
		name    string
		blob    string
		want    *ParamSpec
		wantErr bool
	}{
		{
			name: "scalar float",
			blob: "wq = 5.15",
			want: ScalarSpec(5.15),
		},
		{
			name: "scalar int",
			blob: "wq = 5",
			want: ScalarSpec(5),
		},
		{
			name: "float list",
			blob: "wq = [5.15, 5.09]",
			want: ListSpec(5.15, 5.09),
		},
		{
			name: "mixed int and float list",
			blob: "wq = [5, 5.09]",
			want: ListSpec(5, 5.09),
		},
		{
			name:    "string scalar",
			blob:    `wq = "fast"`,
			wantErr: true,
		},
		{
			name:    "string entry",
			blob:    `wq = ["fast"]`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Wq *ParamSpec `toml:"wq"`
			}
			_, err := toml.Decode(tt.blob, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, out.Wq, tt.want)
		})
	}
}

func TestParamSpecNormalize(t *testing.T) {
	tests := []struct {
		name   string
		spec   *ParamSpec
		want   int
		def    []float64
		vs     []float64
		errMsg string
	}{
		{
			name: "unset falls back to default",
			spec: nil,
			want: 2,
			def:  []float64{5.15, 5.09},
			vs:   []float64{5.15, 5.09},
		},
		{
			name: "empty spec falls back to default",
			spec: &ParamSpec{},
			want: 2,
			def:  []float64{5.15, 5.09},
			vs:   []float64{5.15, 5.09},
		},
		{
			name: "scalar broadcast",
			spec: ScalarSpec(0.1),
			want: 4,
			vs:   []float64{0.1, 0.1, 0.1, 0.1},
		},
		{
			name: "list passthrough",
			spec: ListSpec(5.2, 5.1, 5.2),
			want: 3,
			vs:   []float64{5.2, 5.1, 5.2},
		},
		{
			name:   "list length mismatch",
			spec:   ListSpec(0.1, 0.1),
			want:   4,
			errMsg: "g must have 4 entries but has 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := tt.spec.normalize("g", tt.want, tt.def)
			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, vs, tt.vs)
		})
	}
}

func TestParamSpecNormalizeCopiesList(t *testing.T) {
	spec := ListSpec(5.2, 5.1)
	vs, err := spec.normalize("wq", 2, nil)
	assert.Nil(t, err)
	vs[0] = 9.9
	assert.Equal(t, spec.list, []float64{5.2, 5.1})
}

func TestChipSettingDecode(t *testing.T) {
	blob := heredoc.Doc(`
		chip_name = "riken_chain_3"
		num_qubits = 3
		dims = [3, 3, 2]
		zz_crosstalk = true

		[hardware]
		wq = [5.2, 5.1, 5.2]
		wr = 5.96
		alpha = -0.3
		t1 = [120, 110, 95]
	`)
	s := NewChipSetting()
	_, err := toml.Decode(blob, s)
	assert.Nil(t, err)
	assert.Equal(t, s.ChipName, "riken_chain_3")
	assert.Equal(t, s.NumQubits, 3)
	assert.Equal(t, s.Dims, []int{3, 3, 2})
	assert.True(t, s.ZZCrosstalk)
	assert.Equal(t, s.Hardware.Wq, ListSpec(5.2, 5.1, 5.2))
	assert.Equal(t, s.Hardware.Wr, ScalarSpec(5.96))
	assert.Equal(t, s.Hardware.Alpha, ScalarSpec(-0.3))
	assert.Equal(t, s.Hardware.T1, ListSpec(120, 110, 95))
	assert.Nil(t, s.Hardware.T2)
}

func TestNewChipSetting(t *testing.T) {
	s := NewChipSetting()
	assert.Equal(t, s.ChipName, "transmon_chain_2")
	assert.Equal(t, s.NumQubits, 2)
	assert.Nil(t, s.Dims)
	assert.False(t, s.ZZCrosstalk)
	assert.NotNil(t, s.Hardware)
}

func TestLoadChipSetting(t *testing.T) {
	tmp, err := os.CreateTemp("", "chip_setting")
	assert.Nil(t, err)
	defer os.Remove(tmp.Name())
	blob := heredoc.Doc(`
		num_qubits = 3
		zz_crosstalk = true

		[hardware]
		wq = [5.2, 5.1, 5.2]
	`)
	err = os.WriteFile(tmp.Name(), []byte(blob), 0644)
	assert.Nil(t, err)

	s, err := LoadChipSetting(tmp.Name(), NewChipSetting())
	assert.Nil(t, err)
	// fields absent from the file keep the base values
	assert.Equal(t, s.ChipName, "transmon_chain_2")
	assert.Equal(t, s.NumQubits, 3)
	assert.True(t, s.ZZCrosstalk)
	assert.Equal(t, s.Hardware.Wq, ListSpec(5.2, 5.1, 5.2))
}

func TestLoadChipSettingMissingFile(t *testing.T) {
	base := NewChipSetting()
	s, err := LoadChipSetting("not/exist/chip_setting.toml", base)
	assert.Nil(t, err)
	assert.Equal(t, s, base)
}

func TestLoadChipSettingBrokenFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "chip_setting")
	assert.Nil(t, err)
	defer os.Remove(tmp.Name())
	err = os.WriteFile(tmp.Name(), []byte("num_qubits = ]3["), 0644)
	assert.Nil(t, err)

	s, err := LoadChipSetting(tmp.Name(), NewChipSetting())
	assert.Error(t, err)
	assert.Equal(t, s, &ChipSetting{})
}
