package upstream

import (
	"fmt"
	"time"
)

const DefaultRetryDelay = 2 * time.Second

// Backoff decides how long to wait before the next attempt. failed is the
// number of attempts made so far and is at least 1.
type Backoff interface {
	Delay(failed int) time.Duration
}

type BackoffFunc func(failed int) time.Duration

func (f BackoffFunc) Delay(failed int) time.Duration {
	return f(failed)
}

type FixedBackoff struct {
	Interval time.Duration
}

func (b FixedBackoff) Delay(int) time.Duration {
	return b.Interval
}

// LinearBackoff waits Step, 2*Step, 3*Step, ...
type LinearBackoff struct {
	Step time.Duration
}

func (b LinearBackoff) Delay(failed int) time.Duration {
	if failed < 1 {
		failed = 1
	}
	return time.Duration(failed) * b.Step
}

// ExponentialBackoff waits Base, 2*Base, 4*Base, ... never more than Max
// when Max is set.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b ExponentialBackoff) Delay(failed int) time.Duration {
	if failed < 1 {
		failed = 1
	}
	d := b.Base
	for i := 1; i < failed; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// NewBackoff builds a strategy by name: fixed, linear or exponential.
func NewBackoff(name string, delay time.Duration) (Backoff, error) {
	switch name {
	case "", "fixed":
		return FixedBackoff{Interval: delay}, nil
	case "linear":
		return LinearBackoff{Step: delay}, nil
	case "exponential":
		return ExponentialBackoff{Base: delay, Max: 30 * delay}, nil
	default:
		return nil, fmt.Errorf("unknown backoff strategy %q", name)
	}
}
