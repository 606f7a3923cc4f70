package readstats

import (
	"context"
	"sync/atomic"
	"time"

	"timedread/application/telemetry"
)

var _ telemetry.ReadRecorder = &Collector{}

type Snapshot struct {
	Reads    uint64
	Bytes    uint64
	Timeouts uint64
	Expired  uint64
	Failures uint64
	Rate     uint64 // bytes/sec
}

// Collector aggregates read outcomes from any number of readers.
type Collector struct {
	reads    atomic.Uint64
	bytes    atomic.Uint64
	timeouts atomic.Uint64
	expired  atomic.Uint64
	failures atomic.Uint64
	rate     atomic.Uint64

	sampleInterval time.Duration
	emaAlpha       float64

	// accessed only from the sampler goroutine in Start()
	lastBytes uint64
	ema       float64
	started   atomic.Bool
}

func NewCollector(sampleInterval time.Duration, emaAlpha float64) *Collector {
	if sampleInterval <= 0 {
		sampleInterval = time.Second
	}
	if emaAlpha < 0 {
		emaAlpha = 0
	}
	if emaAlpha > 1 {
		emaAlpha = 1
	}
	return &Collector{
		sampleInterval: sampleInterval,
		emaAlpha:       emaAlpha,
	}
}

// Start samples the byte rate until ctx is done. Only the first call runs.
func (c *Collector) Start(ctx context.Context) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}

	ticker := time.NewTicker(c.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.updateRate(c.sampleInterval)
		}
	}
}

func (c *Collector) RecordRead(bytes int) {
	c.reads.Add(1)
	if bytes > 0 {
		c.bytes.Add(uint64(bytes))
	}
}

func (c *Collector) RecordTimeout() { c.timeouts.Add(1) }
func (c *Collector) RecordExpired() { c.expired.Add(1) }
func (c *Collector) RecordFailure() { c.failures.Add(1) }

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Reads:    c.reads.Load(),
		Bytes:    c.bytes.Load(),
		Timeouts: c.timeouts.Load(),
		Expired:  c.expired.Load(),
		Failures: c.failures.Load(),
		Rate:     c.rate.Load(),
	}
}

func (c *Collector) updateRate(interval time.Duration) {
	seconds := interval.Seconds()
	if seconds <= 0 {
		return
	}

	now := c.bytes.Load()
	perSec := float64(now-c.lastBytes) / seconds
	c.lastBytes = now

	if c.emaAlpha > 0 {
		if c.ema == 0 {
			c.ema = perSec
		} else {
			c.ema = c.emaAlpha*perSec + (1-c.emaAlpha)*c.ema
		}
		perSec = c.ema
	}
	c.rate.Store(uint64(perSec))
}
