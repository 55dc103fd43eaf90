package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Prepare returns the program logger. Everything goes to stderr since
// stdout may carry rendered output.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	return conf.build(zapcore.Lock(os.Stderr))
}

func (conf *LoggingConfig) build(out zapcore.WriteSyncer) (*zap.Logger, error) {
	var enabler zapcore.LevelEnabler
	switch conf.Level {
	case LevelNormal:
		enabler = zapcore.InfoLevel
	case LevelDebug:
		enabler = zapcore.DebugLevel
	case LevelNone, "":
		return zap.NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown logging level %q", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), out, enabler)
	return zap.New(core), nil
}
