package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes JSON logs to w, or colored console logs when w is a terminal.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// badgerLogger adapts a zap logger to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func newBadgerLogger(l *zap.Logger) badgerLogger {
	return badgerLogger{l.Named("badger").WithOptions(zap.IncreaseLevel(zap.WarnLevel)).Sugar()}
}

// Warningf implements the badger.Logger interface.
func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}
