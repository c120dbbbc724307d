package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/transim-team/transim-engine/common"
	"github.com/transim-team/transim-engine/core"
	"go.uber.org/zap"
)

const SnapshotLogTaskName = "snapshot_log"
const snapshotIDKeyInLog = "snapshot_id"
const snapshotStatusKeyInLog = "status"
const snapshotRecordKeyInLog = "record"

// SnapshotLogTaskImpl appends the latest stored parameter snapshot to a
// daily JSON-lines file, so derived-parameter history survives engine
// restarts.
type SnapshotLogTaskImpl struct {
	FileDir string `toml:"file_dir"`

	dl *dailyLogger
	sc *core.SystemComponents

	core.DefaultTaskImpl
}

func setupSnapshotLogTask(fileDir string) (*dailyLogger, error) {
	if err := common.IsDirWritable(fileDir); err != nil {
		return nil, fmt.Errorf("failed to write to %s: %w", fileDir, err)
	}
	newDailyLogger := newDailyLogger(fileDir)
	slog.SetDefault(slog.New(slog.NewJSONHandler(newDailyLogger, nil)))
	return newDailyLogger, nil
}

func (m *SnapshotLogTaskImpl) Setup() error {
	if m.FileDir == "" && core.CurrentInfo != nil {
		m.FileDir = core.CurrentInfo.Conf.SnapshotLogDir
	}
	dl, err := setupSnapshotLogTask(m.FileDir)
	if err != nil {
		zap.L().Error("failed to set up snapshot log task", zap.Error(err))
		return err
	}
	sc := core.GetSystemComponents()
	m.dl = dl
	m.sc = sc
	return nil
}

func (m *SnapshotLogTaskImpl) GetEmptyParams() interface{} {
	return m
}

func (m *SnapshotLogTaskImpl) SetParams(p interface{}) error {
	if p == nil {
		msg := "no params for snapshot log task"
		zap.L().Debug(msg)
		return nil
	}
	mp, ok := p.(map[string]interface{})
	if !ok {
		msg := fmt.Errorf("failed to set params for snapshot log task/params: %s", p)
		zap.L().Error(msg.Error())
		return msg
	}
	if fileDir, ok := mp["file_dir"].(string); ok {
		m.FileDir = fileDir
	}
	return nil
}

func (m *SnapshotLogTaskImpl) Task() {
	snapshot, err := m.sc.LatestSnapshot()
	if err != nil {
		zap.L().Debug(fmt.Sprintf("no snapshot to log/reason:%s", err))
		return
	}
	slog.Info(
		"Snapshot",
		slog.String(snapshotIDKeyInLog, snapshot.ID),
		slog.String(snapshotStatusKeyInLog, snapshot.Status.String()),
		slog.String(snapshotRecordKeyInLog, snapshot.String()),
	)
}

func (m *SnapshotLogTaskImpl) Cleanup() {
	m.dl.Close()
}

type dailyLogger struct {
	mu              sync.Mutex
	fileDir         string
	currentFileName string
	file            *os.File
}

func newDailyLogger(fileDir string) *dailyLogger {
	return &dailyLogger{
		fileDir: fileDir,
	}
}

func (dl *dailyLogger) Write(p []byte) (n int, err error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	fileName := fmt.Sprintf("snapshot-%s.log", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(dl.fileDir, fileName)
	currentFilePath := filepath.Join(dl.fileDir, dl.currentFileName)

	if dl.file == nil || currentFilePath != filePath {
		if dl.file != nil {
			dl.file.Close()
		}
		var err error
		dl.file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return 0, err
		}
		dl.currentFileName = fileName
	}

	return dl.file.Write(p)
}

func (dl *dailyLogger) Close() error {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		return dl.file.Close()
	}
	return nil
}
