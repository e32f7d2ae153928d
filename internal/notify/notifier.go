// Package notify defines the notification interface and implementations
// for scheduler job alerts.
package notify

import (
	"context"
	"time"
)

// JobAlert contains the outcome of a scheduled job run.
type JobAlert struct {
	JobName  string
	Status   string
	Error    string
	Rows     int
	Duration time.Duration
}

// Notifier defines the interface for delivering job outcome alerts.
type Notifier interface {
	SendJobAlert(ctx context.Context, alert *JobAlert) error
}
