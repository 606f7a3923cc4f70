package logging

import (
	"timedread/application/logging"

	"go.uber.org/zap"
)

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts l to logging.Logger. A nil l yields a no-op logger.
func NewZapLogger(l *zap.Logger) logging.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{sugar: l.Sugar()}
}

var (
	_ logging.Logger      = &ZapLogger{}
	_ logging.DebugLogger = &ZapLogger{}
)

// Printf carries read timeouts and transport failures, so it logs at warn
// level.
func (z *ZapLogger) Printf(format string, v ...any) {
	z.sugar.Warnf(format, v...)
}

func (z *ZapLogger) Debugf(format string, v ...any) {
	z.sugar.Debugf(format, v...)
}

// NewProduction builds the zap logger used by the probe: JSON output,
// debug level when verbose.
func NewProduction(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
