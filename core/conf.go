package core

type Conf struct {
	Version            string `long:"version" description:"version of chipinfo tool" env:"TRANSIM_CHIP_VERSION"`
	DevMode            bool   `long:"dev-mode" description:"run in dev mode" env:"TRANSIM_CHIP_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"TRANSIM_CHIP_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"TRANSIM_CHIP_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"TRANSIM_CHIP_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"TRANSIM_CHIP_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"TRANSIM_CHIP_LOG_ROTATION_MAX_DAYS"`
	UseMockChip        bool   `long:"enable-mock-chip" description:"use mock chip for tests and disable chip settings" env:"TRANSIM_CHIP_USE_MOCK_CHIP"`
	ChipSettingPath    string `long:"chip-setting-path" description:"chip setting file path" default:"./chip_setting.toml" env:"TRANSIM_CHIP_CHIP_SETTING_PATH"`
	SnapshotLogDir     string `long:"snapshot-log-dir" description:"derived-parameter snapshot log dir" default:"./shares/snapshots" env:"TRANSIM_CHIP_SNAPSHOT_LOG_DIR"`
	ReportDir          string `long:"report-dir" description:"describe report output dir" default:"." env:"TRANSIM_CHIP_REPORT_DIR"`
	SettingPath        string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"TRANSIM_CHIP_SETTING_PATH"`
}
