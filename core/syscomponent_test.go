//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/go-faster/jx"

	"github.com/stretchr/testify/assert"
)

func TestDefaultReportConfigJson(t *testing.T) {
	assert.Equal(t, defaultReportConfigJson["report_style"], jx.Raw("pretty"))
	assert.Equal(t, defaultReportConfigJson["report_options"], jx.Raw("{\"precision\":9}"))
}

func TestChipStatusString(t *testing.T) {
	assert.Equal(t, "Available", Available.String())
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "Uncalibrated", Uncalibrated.String())
	assert.Equal(t, "Unknown", ChipStatus(99).String())
}

func TestChannelsCheck(t *testing.T) {
	c := NewChannels()
	assert.Nil(t, c.Check())
	c.Close()

	broken := &Channels{}
	assert.EqualError(t, broken.Check(), "SnapshotChan is nil")
}

func TestSystemComponentsGetChipInfo(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()

	ci := s.GetChipInfo()
	assert.NotNil(t, ci)
	assert.Equal(t, "mock", ci.Family)
	assert.Equal(t, MockChipQubits, ci.NumQubits)
	assert.Equal(t, Available, ci.Status)
}
