package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"timedread/application/logging"
	"timedread/infrastructure/network/handle"
	"timedread/infrastructure/network/reader"
	"timedread/infrastructure/settings"
	"timedread/infrastructure/telemetry/readstats"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Count is the number of reads per target; 0 reads until EOF or error.
	Count int
	// Parallel bounds the number of targets probed at once; 0 means all.
	Parallel int
}

type Result struct {
	Target Target
	Reads  int
	Bytes  int
	EOF    bool
	Err    error
}

type Runner struct {
	cfg    settings.Configuration
	opts   Options
	dialer Dialer
	logger logging.Logger
	stats  *readstats.Collector
	out    io.Writer
	outMu  sync.Mutex
}

func NewRunner(
	cfg settings.Configuration,
	opts Options,
	dialer Dialer,
	logger logging.Logger,
	stats *readstats.Collector,
	out io.Writer,
) *Runner {
	return &Runner{
		cfg:    cfg,
		opts:   opts,
		dialer: dialer,
		logger: logger,
		stats:  stats,
		out:    out,
	}
}

// Run probes every target and returns the per-target failures combined.
// One failing target does not stop the others.
func (r *Runner) Run(ctx context.Context, targets []Target) ([]Result, error) {
	statsCtx, stopStats := context.WithCancel(ctx)
	sampling := make(chan struct{})
	go func() {
		defer close(sampling)
		r.stats.Start(statsCtx)
	}()
	defer func() {
		stopStats()
		<-sampling
	}()

	results := make([]Result, len(targets))
	var eg errgroup.Group
	if r.opts.Parallel > 0 {
		eg.SetLimit(r.opts.Parallel)
	}
	for i, target := range targets {
		eg.Go(func() error {
			results[i] = r.probe(ctx, target)
			r.report(results[i])
			return nil
		})
	}
	_ = eg.Wait()

	var merr *multierror.Error
	for _, res := range results {
		if res.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", res.Target, res.Err))
		}
	}
	r.printf("total\t%s\n", r.stats.Snapshot())
	return results, merr.ErrorOrNil()
}

func (r *Runner) probe(ctx context.Context, target Target) Result {
	res := Result{Target: target}

	conn, err := r.dialer.Dial(ctx, target)
	if err != nil {
		res.Err = err
		return res
	}
	owner := handle.NewShared(conn)
	defer func() {
		if releaseErr := owner.Release(); releaseErr != nil && !errors.Is(releaseErr, handle.ErrReleased) {
			r.logger.Printf("close %s: %v", target, releaseErr)
		}
	}()

	rd, err := reader.NewIoReader(owner.Weak(), r.cfg.Read,
		reader.WithLogger(r.logger),
		reader.WithRecorder(r.stats),
	)
	if err != nil {
		res.Err = err
		return res
	}
	defer rd.Finish()

	for r.opts.Count <= 0 || res.Reads < r.opts.Count {
		if rd.IsEOF() {
			res.EOF = true
			break
		}
		data, readErr := rd.ReadSome(ctx)
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				res.EOF = true
				break
			}
			res.Err = readErr
			break
		}
		res.Reads++
		res.Bytes += len(data)
	}
	return res
}

func (r *Runner) report(res Result) {
	status := "ok"
	switch {
	case res.Err != nil:
		status = "error: " + res.Err.Error()
	case res.EOF:
		status = "eof"
	}
	r.printf("%s\treads=%d\tbytes=%s\t%s\n", res.Target, res.Reads, readstats.FormatTotal(uint64(res.Bytes)), status)
}

func (r *Runner) printf(format string, v ...any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	_, _ = fmt.Fprintf(r.out, format, v...)
}
