package race

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type Outcome int32

const (
	Pending Outcome = iota
	ReadWon
	DeadlineWon
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case ReadWon:
		return "read"
	case DeadlineWon:
		return "deadline"
	case Canceled:
		return "canceled"
	default:
		return "pending"
	}
}

// Timer is the deadline branch of a race.
type Timer interface {
	Arm()
	Fired() <-chan struct{}
	Cancel() bool
}

type ReadFunc func(ctx context.Context) (int, error)

type Result struct {
	Outcome Outcome
	N       int
	Err     error
}

// errSettled cancels the group context once a branch has claimed the outcome.
var errSettled = errors.New("race settled")

// Run races read against timer. The first branch to complete decides the
// outcome and cancels the other; both branches have returned by the time
// Run does. A read that returns data after losing to the deadline still
// reports ReadWon so the bytes are not lost.
//
// If ctx is cancelled before either branch wins, the outcome is Canceled.
func Run(ctx context.Context, timer Timer, read ReadFunc) Result {
	var (
		winner atomic.Int32
		n      int
		err    error
	)
	claim := func(o Outcome) bool {
		return winner.CompareAndSwap(int32(Pending), int32(o))
	}

	g, gctx := errgroup.WithContext(ctx)
	timer.Arm()

	// read branch
	g.Go(func() error {
		rn, rerr := read(gctx)
		n, err = rn, rerr
		if !claim(ReadWon) {
			return nil
		}
		return errSettled
	})

	// deadline branch
	g.Go(func() error {
		select {
		case <-timer.Fired():
			if claim(DeadlineWon) {
				return errSettled
			}
		case <-gctx.Done():
			timer.Cancel()
		}
		return nil
	})

	_ = g.Wait()

	outcome := Outcome(winner.Load())
	switch {
	case outcome == DeadlineWon && err == nil && n > 0:
		// The read completed after the deadline but its bytes are already
		// consumed from the transport.
		return Result{Outcome: ReadWon, N: n}
	case outcome == DeadlineWon:
		return Result{Outcome: DeadlineWon}
	case outcome == ReadWon && err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return Result{Outcome: Canceled, N: n, Err: ctx.Err()}
	}
	return Result{Outcome: outcome, N: n, Err: err}
}
