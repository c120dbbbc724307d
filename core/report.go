package core

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

// ChipReport is the document the describe command writes: the current
// chip info together with the parameter snapshot it was derived from.
type ChipReport struct {
	ReportID  string          `json:"report_id"`
	CreatedAt strfmt.DateTime `json:"created_at"`
	Config    *ReportConfig   `json:"config"`
	Chip      *ChipInfo       `json:"chip"`
	Snapshot  *ParamsSnapshot `json:"snapshot"`
}

func NewChipReport(chipInfo *ChipInfo, snapshot *ParamsSnapshot) *ChipReport {
	return &ChipReport{
		ReportID:  uuid.New().String(),
		CreatedAt: strfmt.DateTime(time.Now()),
		Config:    DEFAULT_REPORT_CONFIG(),
		Chip:      chipInfo,
		Snapshot:  snapshot,
	}
}

func (r *ChipReport) String() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.ChipReport")
		return ""
	}
	return string(st)
}

func (r *ChipReport) ToPrettyString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.ChipReport")
		return ""
	}
	return string(pretty.Pretty(st))
}
