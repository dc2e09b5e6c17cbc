package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/stride/internal/model"
)

var (
	ErrNotScheduled     = errors.New("scheduler: reminder not scheduled")
	ErrDeltaOutOfRange  = errors.New("scheduler: delay outside arming window")
	ErrSchedulerStopped = errors.New("scheduler: stopped")
	ErrPermissionDenied = errors.New("scheduler: notification permission not granted")
)

// MaxArmDelay bounds a single arm. A daily reminder is never more than 24h
// away, the extra hour absorbs DST shifts.
const MaxArmDelay = 25 * time.Hour

// NextFireTime returns the next instant at hh:mm strictly after now, in now's
// location.
func NextFireTime(hhmm string, now time.Time) (time.Time, error) {
	hour, minute, err := model.ParseClock(hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrNotScheduled, err)
	}
	y, m, d := now.Date()
	next := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
