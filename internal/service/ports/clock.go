package ports

import "time"

// Clock abstracts time for the confirmation-window checks.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
