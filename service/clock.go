package service

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Now is truncated to milliseconds, the precision the store keeps.
func (realClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
