package sync

import (
	"errors"
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// ErrBooksFailed is returned by Service.Run when the run finished but at
// least one book could not be synced.
var ErrBooksFailed = errors.New("sync: some books failed")

type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Status        string // RUNNING, COMPLETED, FAILED
	DevMode       bool
	BooksFetched  int
	BooksSynced   int
	BooksFailed   int
	BlocksWritten int
	Error         string
}
