package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when no webhook backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendJobAlert logs and discards a job alert.
func (n *NoOpNotifier) SendJobAlert(_ context.Context, alert *JobAlert) error {
	n.log.Debug("job alert discarded (no backend configured)",
		"job", alert.JobName,
		"status", alert.Status,
	)
	return nil
}
