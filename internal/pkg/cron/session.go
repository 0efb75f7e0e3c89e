package cron

import (
	"context"
	"time"
)

const sessionSweepTimeout = 30 * time.Second

// SessionSweeper is satisfied by auth.AuthService.
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) error
}

type SessionJobs struct {
	sweeper  SessionSweeper
	interval time.Duration
}

func NewSessionJobs(sweeper SessionSweeper, interval time.Duration) *SessionJobs {
	return &SessionJobs{
		sweeper:  sweeper,
		interval: interval,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Add(Job{
		Name:     "sweep_expired_sessions",
		Interval: j.interval,
		Timeout:  sessionSweepTimeout,
		Fn:       j.sweeper.SweepExpiredSessions,
	})
}
