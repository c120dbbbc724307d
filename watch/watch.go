package watch

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/transim-team/transim-engine/core"
	"go.uber.org/zap"
)

type state int

const WatchTaskName = "watch"

const (
	WATCHING state = iota
	SUB_IDLE
	IDLE
)

const (
	DEFAULT_NORMAL_PERIOD = time.Duration(10) * time.Second
	DEFAULT_IDLE_PERIOD   = time.Duration(60) * time.Second
	DEFAULT_MAX_RETRY     = 3
)

func (s state) String() string {
	switch s {
	case WATCHING:
		return "WATCHING"
	case SUB_IDLE:
		return "SUB_IDLE"
	case IDLE:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Watcher rebuilds the chip model whenever the chip setting file changes
// and feeds the resulting parameter snapshot to the store. While the file
// stays untouched the task backs off to the idle period.
type Watcher struct {
	FilePath     string        `toml:"file_path"`
	NormalPeriod time.Duration `toml:"normal_period"`
	IdlePeriod   time.Duration `toml:"idle_period"`
	MaxRetry     int           `toml:"max_retry"`

	currentPeriod time.Duration
	noChangeCount int
	state         state
	built         bool
	lastModTime   time.Time

	sysCom *core.SystemComponents
}

func (w *Watcher) GetEmptyParams() interface{} {
	return &Watcher{}
}

func (w *Watcher) SetParams(params interface{}) error {
	if params == nil {
		msg := "no params for watcher"
		zap.L().Debug(msg)
		return nil
	}
	wp, ok := params.(map[string]interface{})
	if !ok {
		msg := fmt.Errorf("failed to set params for watcher/params: %s", params)
		zap.L().Error(msg.Error())
		return msg
	}
	zap.L().Debug(fmt.Sprintf("Set params for watcher: %v", wp))
	setField[string]("file_path", &w.FilePath, wp, "")
	setField[int]("max_retry", &w.MaxRetry, wp, DEFAULT_MAX_RETRY)

	setDurationField("normal_period", &w.NormalPeriod, wp, DEFAULT_NORMAL_PERIOD)
	setDurationField("idle_period", &w.IdlePeriod, wp, DEFAULT_IDLE_PERIOD)

	return nil
}

func setField[T string | int | bool](key string, target *T, pp map[string]interface{}, defaultVal T) {
	if v, ok := pp[key]; ok && !reflect.ValueOf(v).IsZero() {
		// TOML integers arrive as int64
		if i, isInt64 := v.(int64); isInt64 {
			if t, isT := any(int(i)).(T); isT {
				*target = t
				return
			}
		}
		*target = v.(T)
		return
	}
	zap.L().Debug(fmt.Sprintf("Set default value for %s: %v", key, defaultVal))
	*target = defaultVal
}

func setDurationField(key string, target *time.Duration, pp map[string]interface{}, defaultVal time.Duration) {
	if v, ok := pp[key]; ok && !reflect.ValueOf(v).IsZero() {
		dur, err := time.ParseDuration(v.(string))
		if err != nil {
			zap.L().Error(fmt.Sprintf("failed to parse duration for %s/reason:%s", key, err))
		}
		*target = dur
		return
	}
	zap.L().Debug(fmt.Sprintf("Set default value for %s: %v", key, defaultVal))
	*target = defaultVal
}

func (w *Watcher) RequirePeriodUpdate() (bool, time.Duration) {
	return true, w.currentPeriod
}

func (w *Watcher) Setup() error {
	sysCom := core.GetSystemComponents()
	if sysCom == nil {
		err := fmt.Errorf("system components are not set up")
		zap.L().Error(err.Error())
		return err
	}
	if w.FilePath == "" && core.CurrentInfo != nil {
		w.FilePath = core.CurrentInfo.Conf.ChipSettingPath
	}
	if w.NormalPeriod == 0 {
		w.NormalPeriod = DEFAULT_NORMAL_PERIOD
	}
	if w.IdlePeriod == 0 {
		w.IdlePeriod = DEFAULT_IDLE_PERIOD
	}
	if w.MaxRetry == 0 {
		w.MaxRetry = DEFAULT_MAX_RETRY
	}
	zap.L().Info(fmt.Sprintf("Watching chip setting file %s", w.FilePath))
	w.sysCom = sysCom
	w.currentPeriod = w.NormalPeriod
	w.noChangeCount = 0
	w.state = WATCHING
	w.built = false
	return nil
}

func (w *Watcher) Task() {
	zap.L().Debug("Watcher is checking the chip setting")
	changed, err := w.settingChanged()
	if err != nil {
		zap.L().Debug(fmt.Sprintf("failed to stat %s/reason:%s", w.FilePath, err))
	}
	if w.built && !changed {
		zap.L().Debug(fmt.Sprintf("No change detected. NoChangeCount:%d", w.noChangeCount))
		switch w.state {
		case WATCHING:
			w.noChangeCount = 1
			w.updateState(SUB_IDLE)
			zap.L().Debug(fmt.Sprintf("Transition to sub idle mode. Recheck after %s", w.NormalPeriod))
			return
		case SUB_IDLE:
			w.noChangeCount++
			if w.noChangeCount < w.MaxRetry {
				zap.L().Debug(fmt.Sprintf("Recheck after %s", w.NormalPeriod))
			} else {
				zap.L().Info("Reached max retry. Transition to idle mode")
				w.noChangeCount = 0
				w.updateState(IDLE)
				w.currentPeriod = w.IdlePeriod
			}
		case IDLE:
			zap.L().Debug(fmt.Sprintf("Already in idle mode. Recheck after idle period %s", w.IdlePeriod))
		default:
			zap.L().Error(fmt.Sprintf("Unknown state %d", int(w.state)))
		}
	} else { // first build or the setting changed
		w.rebuild()
		switch w.state {
		case WATCHING:
			zap.L().Debug("keep watching")
		case SUB_IDLE:
			zap.L().Info("Transition to watching mode from sub_idle state")
			w.updateState(WATCHING)
			w.noChangeCount = 0
		case IDLE:
			zap.L().Info("Transition to watching mode from idle state")
			w.currentPeriod = w.NormalPeriod
			w.updateState(WATCHING)
			w.noChangeCount = 0
		default:
			zap.L().Error(fmt.Sprintf("Unknown state %d", int(w.state)))
		}
	}
}

func (w *Watcher) Cleanup() {
	zap.L().Info("Watcher is cleaning up")
}

// settingChanged reports whether the chip setting file carries a newer
// modification time than the last seen one. The new time is recorded
// immediately, so a broken edit is not rebuilt in a loop.
func (w *Watcher) settingChanged() (bool, error) {
	info, err := os.Stat(w.FilePath)
	if err != nil {
		return false, err
	}
	if info.ModTime().Equal(w.lastModTime) {
		return false, nil
	}
	w.lastModTime = info.ModTime()
	return true, nil
}

func (w *Watcher) rebuild() {
	zap.L().Info(fmt.Sprintf("Rebuilding chip model from %s", w.FilePath))
	snapshot := w.takeSnapshot()
	w.built = true
	w.sysCom.SnapshotChan <- snapshot
}

func (w *Watcher) takeSnapshot() *core.ParamsSnapshot {
	_, err := w.sysCom.BuildModel()
	if err == nil {
		snapshot, serr := w.sysCom.TakeSnapshot()
		if serr == nil {
			w.stampModTime(snapshot)
			return snapshot
		}
		err = serr
	}
	zap.L().Error(fmt.Sprintf("failed to rebuild chip model/reason:%s", err))
	snapshot := core.NewParamsSnapshot(w.family())
	core.MarkSnapshotFailure(snapshot, err)
	w.stampModTime(snapshot)
	return snapshot
}

func (w *Watcher) stampModTime(s *core.ParamsSnapshot) {
	if !w.lastModTime.IsZero() {
		s.SourceModTime = w.lastModTime.Format(time.RFC3339)
	}
}

func (w *Watcher) family() string {
	if chipInfo := w.sysCom.GetChipInfo(); chipInfo != nil {
		return chipInfo.Family
	}
	return ""
}

func (w *Watcher) updateState(newState state) {
	w.state = newState
}
