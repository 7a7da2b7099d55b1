package utils

import "time"

// Retry runs fn up to attempts times, doubling the wait between tries
// starting at base. retryable decides whether an error is worth another
// try; a nil retryable retries every error. The last error is returned
// once the attempts are spent.
func Retry(attempts int, base time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	wait := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if i < attempts-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return err
}
