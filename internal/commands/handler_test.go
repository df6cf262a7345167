package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/metrics"
)

type testMessage struct{}

func (testMessage) Type() string { return "sections.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "sections.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerPassesDomainErrorsThrough(t *testing.T) {
	notFound := &domain.NotFoundError{Resource: "page", Key: "about"}
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return notFound
	})

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	var target *domain.NotFoundError
	if !errors.As(err, &target) || target != notFound {
		t.Fatalf("expected original error value, got %v", err)
	}
}

func TestHandlerReportsTelemetry(t *testing.T) {
	var infos []TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("sections.test"),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"site": "primary"}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			infos = append(infos, info)
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected one telemetry callback, got %d", len(infos))
	}
	info := infos[0]
	if info.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", info.Status)
	}
	if info.Operation != "sections.test" || info.Fields["site"] != "primary" {
		t.Fatalf("unexpected telemetry info %+v", info)
	}
	if info.Command != "sections.test.message" {
		t.Fatalf("expected command type sections.test.message, got %q", info.Command)
	}
}

type commandObservation struct {
	command string
	outcome string
}

type recordingRecorder struct {
	metrics.Noop
	commands []commandObservation
}

func (r *recordingRecorder) Command(command, outcome string, _ time.Duration) {
	r.commands = append(r.commands, commandObservation{command: command, outcome: outcome})
}

func TestDefaultTelemetryRecordsOutcomes(t *testing.T) {
	recorder := &recordingRecorder{}
	results := []error{
		nil,
		&domain.ReorderMismatchError{Container: "page"},
		errors.New("disk full"),
	}
	var call int
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		err := results[call]
		call++
		return err
	},
		WithMetrics[testMessage](recorder),
		WithTelemetry(DefaultTelemetry[testMessage](nil)),
	)

	for range results {
		_ = h.Execute(context.Background(), testMessage{})
	}

	want := []commandObservation{
		{command: "sections.test.message", outcome: "ok"},
		{command: "sections.test.message", outcome: "reorder_mismatch"},
		{command: "sections.test.message", outcome: "failed"},
	}
	if len(recorder.commands) != len(want) {
		t.Fatalf("expected %d observations, got %+v", len(want), recorder.commands)
	}
	for i := range want {
		if recorder.commands[i] != want[i] {
			t.Fatalf("observation %d: expected %+v, got %+v", i, want[i], recorder.commands[i])
		}
	}
}

func TestTelemetryOutcomeForContextErrors(t *testing.T) {
	info := TelemetryInfo{Status: TelemetryStatusContextError, Error: context.Canceled}
	if got := info.Outcome(); got != "context_error" {
		t.Fatalf("expected context_error, got %q", got)
	}
}
