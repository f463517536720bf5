// Copyright 2020-2021, DataCube, Inc.

package client

import (
	"time"

	cmap "github.com/orcaman/concurrent-map"

	cerr "github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
	"github.com/datacube-org/cubeclient/retry"
)

// Progress is the last observed progress of one job.
type Progress struct {
	JobID     string
	Timestamp string  // engine submission timestamp
	Ratio     float64 // 0.0 .. 1.0
	State     byte    // proto.STATE_* const
}

// Done reports whether the job reached a terminal state: complete, failed,
// or cancelled.
func (p Progress) Done() bool {
	switch p.State {
	case proto.STATE_COMPLETE, proto.STATE_FAIL, proto.STATE_CANCELLED:
		return true
	}
	return false
}

// Monitor polls workflow progress at a caller-controlled interval. Each poll
// tolerates a bounded number of transient transport failures; any other
// failure stops the watch. Wait blocks the calling goroutine; Watching and
// Last read the shared registry, so other goroutines can observe progress of
// in-flight waits.
type Monitor struct {
	client   *Client
	interval time.Duration

	// Transport retries per poll tick.
	Tries     int
	RetryWait time.Duration

	active cmap.ConcurrentMap // job id -> Progress
}

const (
	defaultTries     = 3
	defaultRetryWait = 2 * time.Second
)

func NewMonitor(c *Client, interval time.Duration) *Monitor {
	return &Monitor{
		client:    c,
		interval:  interval,
		Tries:     defaultTries,
		RetryWait: defaultRetryWait,
		active:    cmap.New(),
	}
}

// Wait polls the job until it reaches a terminal state, returning its final
// progress; check Progress.State to tell completion from failure or
// cancellation. An empty jobID falls back to the client's last submitted
// job. The wait ends only on a terminal state or a non-transient failure; to
// stop earlier, stop polling (cancel the job itself with Client.Cancel).
func (m *Monitor) Wait(jobID string) (Progress, error) {
	if jobID == "" {
		jobID = m.client.Session().LastJobID
	}
	if jobID == "" {
		return Progress{}, cerr.MissingJobIdError{}
	}

	defer m.active.Remove(jobID)
	for {
		p, err := m.poll(jobID)
		if err != nil {
			return Progress{}, err
		}
		m.active.Set(jobID, p)
		if p.Done() {
			m.client.logger.Debugf("job %s %s at ratio %.2f", jobID, proto.StateName[p.State], p.Ratio)
			return p, nil
		}
		time.Sleep(m.interval)
	}
}

// Watching lists the jobs with an in-flight Wait.
func (m *Monitor) Watching() []string {
	return m.active.Keys()
}

// Last returns the last observed progress of a watched job.
func (m *Monitor) Last(jobID string) (Progress, bool) {
	v, ok := m.active.Get(jobID)
	if !ok {
		return Progress{}, false
	}
	return v.(Progress), true
}

// poll queries progress once, retrying transport errors up to Tries times.
// Validation, engine, and precondition errors are never retried.
func (m *Monitor) poll(jobID string) (Progress, error) {
	var p Progress
	var fatal error

	err := retry.Do(m.Tries, m.RetryWait, func() error {
		var err error
		p, err = m.client.Progress(jobID)
		if err == nil {
			return nil
		}
		if _, ok := err.(cerr.TransportError); ok {
			return err
		}
		fatal = err
		return nil
	}, func(err error) {
		m.client.logger.Warnf("progress poll for %s failed, retrying: %s", jobID, err)
	})

	if fatal != nil {
		return Progress{}, fatal
	}
	if err != nil {
		return Progress{}, err
	}
	return p, nil
}
