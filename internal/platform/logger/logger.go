// Package logger builds the zap loggers used by commands.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvironmentProduction selects the JSON encoder.
const EnvironmentProduction = "production"

// New creates a logger writing to w.
//
// Production environments encode JSON; anything else uses the console
// encoder. Verbose lowers the level from warn to info so per-step progress
// becomes visible.
func New(environment string, verbose bool, w io.Writer) *zap.Logger {
	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder

	if environment == EnvironmentProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.CallerKey = "caller"
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.CallerKey = "caller"
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}
	if w == nil {
		w = io.Discard
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}
