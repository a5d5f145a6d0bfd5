package repeat

import "time"

// Repeat calls f until it succeeds or attempts run out, waiting delay between calls,
// and returns the last error.
func Repeat(f func() error, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}

	return err
}

// Until calls f while it reports a retryable error, up to attempts times.
// Non-retryable errors are returned immediately.
func Until(f func() error, retryable func(error) bool, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil || !retryable(err) {
			return err
		}
	}

	return err
}
