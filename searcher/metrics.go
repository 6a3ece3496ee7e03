package searcher

import (
	"sync/atomic"
	"time"
)

// Metrics summarizes one Decide call for the caller to log.
type Metrics struct {
	Simulations int           // passes that produced a vote
	Dropped     int           // passes lost to a panic or an empty expansion
	Elapsed     time.Duration // wall-clock time of the whole fan-out
	Overrun     bool          // elapsed exceeded the configured time limit
}

// collector tallies pass outcomes across worker goroutines.
type collector struct {
	votes   atomic.Int64
	dropped atomic.Int64
	started time.Time
}

func newCollector() *collector {
	return &collector{started: time.Now()}
}

func (c *collector) addVote() {
	c.votes.Add(1)
}

func (c *collector) addDropped() {
	c.dropped.Add(1)
}

func (c *collector) complete(timeLimit time.Duration) Metrics {
	elapsed := time.Since(c.started)
	return Metrics{
		Simulations: int(c.votes.Load()),
		Dropped:     int(c.dropped.Load()),
		Elapsed:     elapsed,
		Overrun:     elapsed > timeLimit,
	}
}
