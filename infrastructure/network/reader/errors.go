package reader

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionExpired is returned when the connection handle no longer
	// resolves. No I/O has been attempted.
	ErrConnectionExpired = errors.New("connection expired")
	// ErrIoTimeout is returned when the read deadline elapsed before any
	// data arrived. It satisfies net.Error with Timeout() == true.
	ErrIoTimeout error = timeoutError{}
	// ErrInvalidReadCount is wrapped in an IoError when a connection
	// reports a byte count outside the buffer.
	ErrInvalidReadCount = errors.New("invalid read count")
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "read timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

// IoError is a transport failure other than a timeout.
type IoError struct {
	Conn string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("read from %s: %v", e.Conn, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
