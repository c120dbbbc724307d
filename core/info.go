package core

import (
	"fmt"

	"go.uber.org/zap"
)

var Version string

const NoVersion = "no_version_info"

// SetVersion resolves the running version: the build flag wins, then the
// conf value, then NoVersion.
func SetVersion(c *Conf, versionByBuildFlag string) {
	if versionByBuildFlag != "" {
		Version = versionByBuildFlag
	} else if c.Version != "" {
		Version = c.Version
	} else {
		Version = NoVersion
	}
	zap.L().Info(fmt.Sprintf("Version is %s", Version))
}

// NonSecretConf mirrors Conf without anything a log sink should not see.
type NonSecretConf struct {
	DevMode            bool
	DisableStdoutLog   bool
	EnableFileLog      bool
	LogDir             string
	LogLevel           string
	LogRotationMaxDays int
	UseMockChip        bool
	ChipSettingPath    string
	SnapshotLogDir     string
	ReportDir          string
	SettingPath        string
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:            c.DevMode,
		DisableStdoutLog:   c.DisableStdoutLog,
		EnableFileLog:      c.EnableFileLog,
		LogDir:             c.LogDir,
		LogLevel:           c.LogLevel,
		LogRotationMaxDays: c.LogRotationMaxDays,
		UseMockChip:        c.UseMockChip,
		ChipSettingPath:    c.ChipSettingPath,
		SnapshotLogDir:     c.SnapshotLogDir,
		ReportDir:          c.ReportDir,
		SettingPath:        c.SettingPath,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
