package retry

import "time"

// BackoffPolicy returns the delay to wait before the attempt following the
// given one. attempt starts at 0 for the delay after the first attempt.
type BackoffPolicy interface {
	NextBackoff(attempt int) time.Duration
}

type noBackoff struct{}

// NoBackoff retries immediately.
func NoBackoff() BackoffPolicy {
	return noBackoff{}
}

func (noBackoff) NextBackoff(int) time.Duration { return 0 }

type fixedBackoff time.Duration

// FixedBackoff waits the same duration between every attempt.
func FixedBackoff(d time.Duration) BackoffPolicy {
	return fixedBackoff(d)
}

func (f fixedBackoff) NextBackoff(int) time.Duration { return time.Duration(f) }

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

// ExponentialBackoff doubles the delay after every attempt, capped at max.
func ExponentialBackoff(base, max time.Duration) BackoffPolicy {
	return &exponentialBackoff{base: base, max: max}
}

func (e *exponentialBackoff) NextBackoff(attempt int) time.Duration {
	d := e.base * time.Duration(1<<attempt)
	if d > e.max || d < 0 { // d < 0 guards shift overflow
		return e.max
	}
	return d
}
