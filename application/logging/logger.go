package logging

type Logger interface {
	Printf(format string, v ...any)
}

// DebugLogger is implemented by loggers that can emit per-read trace
// lines. Readers use it only when the configured Logger provides it.
type DebugLogger interface {
	Debugf(format string, v ...any)
}
