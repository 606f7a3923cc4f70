package connection

import "context"

type DataReader interface {
	// ReadSome performs one bounded read. The returned slice aliases the
	// reader's buffer and is valid until the next call.
	ReadSome(ctx context.Context) ([]byte, error)
	IsEOF() bool
	Finish()
}
