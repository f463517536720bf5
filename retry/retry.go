package retry

import (
	"time"
)

type TryFunc func() error
type LogFunc func(error)

// Do runs tryFunc up to tries times, sleeping between attempts and logging
// each failure via logFunc (may be nil). Returns nil on the first success,
// else the last error. The client core never retries; this is for
// caller-side loops like progress polling.
func Do(tries int, sleep time.Duration, tryFunc TryFunc, logFunc LogFunc) error {
	var err error
	for i := 0; i < tries; i++ {
		if err = tryFunc(); err == nil {
			return nil
		}
		if logFunc != nil {
			logFunc(err)
		}
		if i < tries-1 {
			time.Sleep(sleep)
		}
	}
	return err
}
