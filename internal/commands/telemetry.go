package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// TelemetryStatus is the coarse result of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to the telemetry callback after the wrapped
// function returns. Metrics is never nil.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
	Metrics   metrics.Recorder
}

// Outcome labels the execution with "ok", "context_error", the taxonomy kind
// of a domain failure, or "failed".
func (i TelemetryInfo) Outcome() string {
	switch {
	case i.Status == TelemetryStatusContextError:
		return string(TelemetryStatusContextError)
	case i.Error == nil:
		return "ok"
	}
	if kind := domain.Kind(i.Error); kind != "unknown" {
		return kind
	}
	return string(TelemetryStatusFailed)
}

// Telemetry represents an optional callback invoked after command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome and counts it on info.Metrics. Rejected
// reorders and missing rows are expected editor mistakes and log at warn.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		outcome := info.Outcome()
		if info.Metrics != nil {
			info.Metrics.Command(info.Command, outcome, info.Duration)
		}

		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch outcome {
		case "ok":
			entry.Info("command.execute.success", args...)
		case "validation", "not_found", "conflict", "reorder_mismatch":
			logging.WithOperation(entry, info.Operation, outcome).
				Warn("command.execute.rejected", append(args, "error", info.Error)...)
		default:
			logging.WithOperation(entry, info.Operation, outcome).
				Error("command.execute.failed", append(args, "error", info.Error)...)
		}
	}
}
