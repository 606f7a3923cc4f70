package connection

import "context"

// Connection is an open bidirectional byte stream owned by someone else.
type Connection interface {
	// ReadSome reads at most len(p) bytes into p. It blocks until data
	// arrives, the transport fails, or ctx is done; on ctx cancellation it
	// must return promptly.
	ReadSome(ctx context.Context, p []byte) (int, error)
	// IsOpen reports whether the transport is open. It never blocks.
	IsOpen() bool
}

// Handle is a non-owning reference to a Connection.
// Resolve returns false once the Connection is gone.
type Handle interface {
	Resolve() (Connection, bool)
}
