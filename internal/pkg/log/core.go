package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func jsonEncoderConfig(withTime bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "message",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if withTime {
		cfg.TimeKey = "time"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg
}

// consoleEncoderConfig writes only the message, fields are appended as JSON.
func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func levelRange(minLevel, maxLevel zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l <= maxLevel
	})
}

func stdoutCore(w io.Writer, verbose bool) zapcore.Core {
	minLevel := InfoLevel
	if verbose {
		minLevel = DebugLevel
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), zapcore.AddSync(w), levelRange(minLevel, InfoLevel))
}

// stderrCore writes warnings and errors, the level is prefixed in color if the writer is a terminal.
func stderrCore(w io.Writer, color bool) zapcore.Core {
	cfg := consoleEncoderConfig()
	if color {
		cfg.LevelKey = "level"
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), levelRange(WarnLevel, zapcore.FatalLevel))
}

func jsonCore(w io.Writer, withTime bool, minLevel zapcore.Level) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig(withTime)), zapcore.AddSync(w), minLevel)
}
