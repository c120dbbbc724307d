package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"github.com/oklog/run"

	"github.com/transim-team/transim-engine/common"
	"github.com/transim-team/transim-engine/core"
	"github.com/transim-team/transim-engine/log"
	"github.com/transim-team/transim-engine/noise"
	"github.com/transim-team/transim-engine/transmon"
	"github.com/transim-team/transim-engine/watch"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rotate "github.com/lestrrat-go/file-rotatelogs"
)

var versionByBuildFlag string
var parser *flags.Parser
var chipinfo *Chipinfo

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables are preferred, " +
			"but non-conflicting variables are those in the \".env\" file.")
	}
	chipinfo = &Chipinfo{}
	setParser(chipinfo)
}

type Chipinfo struct {
	DIContainerParameters *DIContainerParameters
	Conf                  *core.Conf
}

type DIContainerParameters struct {
	ModelManager string `long:"model" description:"chip model family" default:"transmon" choice:"transmon" choice:"mock" env:"TRANSIM_CHIP_MODEL_MANAGER_TYPE"`
	StoreManager string `long:"store" description:"snapshot store type" default:"memory" choice:"memory" env:"TRANSIM_CHIP_STORE_MANAGER_TYPE"`
}

func setParser(ci *Chipinfo) {
	parser = flags.NewParser(ci, flags.Default)
	parser.ShortDescription = "transim chipinfo"
	parser.LongDescription = "the chip parameter and operator model tool of the transim simulation stack."
	parser.AddCommand("describe", "describe the chip",
		"build the chip model once and write a parameter report", newDescribeCmd())
	parser.AddCommand("watch", "start watching",
		"start watching the chip setting file to re-derive parameters on change", newWatchCmd())
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Printf("failed to pasre flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (ci *Chipinfo) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = nil
	err = c.Provide(func() (core.ModelManager, error) {
		if ci.Conf.UseMockChip {
			zap.L().Info("UseMockChip is set. The chip setting file is ignored.")
			return &core.UnimplementedModelManager{}, nil
		}
		switch ci.DIContainerParameters.ModelManager {
		case "transmon":
			return &transmon.Chip{}, nil
		case "mock":
			return &core.UnimplementedModelManager{}, nil
		default:
			return &transmon.Chip{}, fmt.Errorf("%s is an unknown chip model family", ci.DIContainerParameters.ModelManager)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.StoreManager, error) {
		switch ci.DIContainerParameters.StoreManager {
		case "memory":
			return &core.MemoryStore{}, nil
		default:
			return &core.MemoryStore{}, fmt.Errorf("%s is an unknown snapshot store", ci.DIContainerParameters.StoreManager)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func (ci *Chipinfo) startCore(conf *core.Conf) error {
	if _, err := core.NewNoiseManager(&noise.ZZCrossTalk{}); err != nil {
		return err
	}
	core.SetInfo(conf)
	return nil
}

func zapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotater, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		syncer := zapcore.AddSync(rotater)
		rotateCore := zapcore.NewCore(
			encoder,
			syncer,
			level)
		cores = append(cores, rotateCore)
	}
	if !conf.DisableStdoutLog {
		debugCore := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stdout),
			level)
		cores = append(cores, debugCore)
	}
	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	if err := common.IsDirWritable(dirPath); err != nil {
		return &rotate.RotateLogs{}, err
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "transim-chip-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

func main() {
	parse()
}

type describeCmd struct{}

func newDescribeCmd() *describeCmd {
	return &describeCmd{}
}

func (c *describeCmd) Execute(args []string) error {
	logger := setZap(chipinfo.Conf)
	defer logger.Sync()

	core.ResetSetting()
	registerSetting()
	zap.L().Debug("Registered setting")
	// the chip setting file is the primary input of describe, so a
	// missing engine setting file is not fatal here
	if err := core.ParseSettingFromPath(chipinfo.Conf.SettingPath); err != nil {
		zap.L().Info(fmt.Sprintf("running without an engine setting file/reason:%s", err))
	}

	s := setupSystemComponents(chipinfo.Conf)
	defer s.TearDown()

	chipinfo.startCore(chipinfo.Conf)

	if _, err := s.BuildModel(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to build the chip model/reason:%s", err))
		return err
	}
	snapshot, err := s.TakeSnapshot()
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to take a parameter snapshot/reason:%s", err))
		return err
	}
	report := core.NewChipReport(s.GetChipInfo(), snapshot)
	zap.L().Debug(fmt.Sprintf("report:%s", common.PlainJsonString(report.String())))

	out := report.ToPrettyString()
	path := filepath.Join(chipinfo.Conf.ReportDir, fmt.Sprintf("chip_report_%s.json", report.ReportID))
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		zap.L().Error(fmt.Sprintf("failed to write the report to %s/reason:%s", path, err))
		return err
	}
	fmt.Println(out)
	zap.L().Info(fmt.Sprintf("wrote the chip report to %s", path))
	return nil
}

type watchCmd struct{}

func newWatchCmd() *watchCmd {
	return &watchCmd{}
}

func (c *watchCmd) Execute(args []string) error {
	logger := setZap(chipinfo.Conf)
	defer logger.Sync()

	core.ResetSetting()
	registerSetting()
	zap.L().Debug("Registered setting")
	if err := core.ParseSettingFromPath(chipinfo.Conf.SettingPath); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse settings/reason:%s", err))
		return err
	}

	s := setupSystemComponents(chipinfo.Conf)
	defer s.TearDown()

	im := &core.ImplMaps{
		PeriodicTaskImplMap: core.PeriodicTaskImplMap{
			watch.WatchTaskName:     &watch.Watcher{},
			log.VersionLogTaskName:  &log.VersionLogTaskImpl{},
			log.SnapshotLogTaskName: &log.SnapshotLogTaskImpl{},
		},
	}
	rc, err := core.NewRunContextWithSettingPath(chipinfo.Conf.SettingPath, im)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to setup run context/reason:%s", err.Error()))
		return err
	}

	chipinfo.startCore(chipinfo.Conf)

	zap.L().Debug("Setting up run-group")
	if err := c.setupRunGroup(rc); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setup run group. Reason:%s", err))
		return err
	}

	if err := rc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "execution error:%v\n", err)
		os.Exit(1)
	}

	return nil
}

func (c *watchCmd) setupRunGroup(rc *core.RunContext) error {
	rc.Add(
		run.SignalHandler(
			rc.Context,
			os.Interrupt))
	core.SetRunContext(rc)
	return nil
}

func setZap(conf *core.Conf) *zap.Logger {
	logger, err := zapLogger(conf)
	if err != nil {
		fmt.Printf("Failed to setup logger. Reason:%s\n", err)
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("Starting logger")
	zap.L().Info(fmt.Sprintf("DevMode is %t", conf.DevMode))
	zap.L().Info(fmt.Sprintf("Log rotation max days is %d", conf.LogRotationMaxDays))
	return logger
}

func setupSystemComponents(conf *core.Conf) *core.SystemComponents {
	core.SetVersion(conf, versionByBuildFlag)
	zap.L().Debug(fmt.Sprintf("Providing DI Container with parameters %+v", chipinfo.DIContainerParameters))

	container, err := chipinfo.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		panic(err)
	}
	zap.L().Debug("Setting up System Components")
	s := core.NewSystemComponents(container)
	if err := s.Setup(conf); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up Container. Reason:%s", err.Error()))
		panic(err)
	}
	return s
}

func registerSetting() {
	core.RegisterSetting("chip", transmon.NewChipSetting())
}
