package reader

import (
	"context"
	"fmt"

	"timedread/application/logging"
	"timedread/application/network/connection"
	"timedread/application/telemetry"
	"timedread/infrastructure/network/deadline"
	"timedread/infrastructure/network/race"
	"timedread/infrastructure/settings"

	"k8s.io/utils/clock"
)

var _ connection.DataReader = &IoReader{}

// IoReader performs bounded reads from a connection it does not own.
//
// Each ReadSome races one read against a fresh deadline of
// ReadConfig.ReadTimeoutMs. The returned bytes alias the reader's buffer
// and are valid until the next ReadSome.
//
// An IoReader is NOT safe for concurrent use.
type IoReader struct {
	handle   connection.Handle
	cfg      settings.ReadConfig
	buffer   []byte
	logger   logging.Logger
	debug    logging.DebugLogger
	clock    clock.WithDelayedExecution
	recorder telemetry.ReadRecorder
}

type Option func(r *IoReader)

func WithLogger(logger logging.Logger) Option {
	return func(r *IoReader) {
		r.logger = logger
	}
}

func WithClock(clk clock.WithDelayedExecution) Option {
	return func(r *IoReader) {
		r.clock = clk
	}
}

func WithRecorder(recorder telemetry.ReadRecorder) Option {
	return func(r *IoReader) {
		r.recorder = recorder
	}
}

// NewIoReader returns a reader over handle. Zero config fields take their
// defaults; invalid values are rejected.
func NewIoReader(handle connection.Handle, cfg settings.ReadConfig, opts ...Option) (*IoReader, error) {
	if handle == nil {
		return nil, fmt.Errorf("nil connection handle")
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &IoReader{
		handle:   handle,
		cfg:      cfg,
		buffer:   make([]byte, cfg.BufferSize),
		logger:   nopLogger{},
		clock:    clock.RealClock{},
		recorder: telemetry.NopReadRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.debug, _ = r.logger.(logging.DebugLogger)
	return r, nil
}

func (r *IoReader) ReadSome(ctx context.Context) ([]byte, error) {
	conn, ok := r.handle.Resolve()
	if !ok {
		r.recorder.RecordExpired()
		return nil, ErrConnectionExpired
	}

	d := deadline.New(r.clock, r.cfg.ReadTimeoutMs.Duration())
	res := race.Run(ctx, d, func(readCtx context.Context) (int, error) {
		return conn.ReadSome(readCtx, r.buffer)
	})

	switch res.Outcome {
	case race.DeadlineWon:
		r.recorder.RecordTimeout()
		r.logger.Printf("read from %s timed out after %v", describe(conn), d.Timeout())
		return nil, ErrIoTimeout
	case race.Canceled:
		return nil, res.Err
	}

	if res.Err == nil && (res.N < 0 || res.N > len(r.buffer)) {
		res.Err = fmt.Errorf("%w: %d (buffer %d)", ErrInvalidReadCount, res.N, len(r.buffer))
	}
	if res.Err != nil {
		r.recorder.RecordFailure()
		r.logger.Printf("read from %s failed: %v", describe(conn), res.Err)
		return nil, &IoError{Conn: describe(conn), Err: res.Err}
	}

	r.recorder.RecordRead(res.N)
	if r.debug != nil {
		r.debug.Debugf("read %d bytes from %s", res.N, describe(conn))
	}
	return r.buffer[:res.N], nil
}

// IsEOF reports whether the connection is gone or closed. It performs no
// I/O.
func (r *IoReader) IsEOF() bool {
	conn, ok := r.handle.Resolve()
	if !ok {
		return true
	}
	return !conn.IsOpen()
}

// Finish marks the end of this reader's use. It is a no-op.
func (r *IoReader) Finish() {}

func (r *IoReader) BufferSize() int {
	return len(r.buffer)
}

func describe(conn connection.Connection) string {
	if s, ok := conn.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", conn)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
