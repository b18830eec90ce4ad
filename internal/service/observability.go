package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent captures lightweight execution telemetry for a store operation.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes store use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "store_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "store_use_case", attrs...)
}

// useCaseSpan times one operation and reports it on end.
type useCaseSpan struct {
	observer UseCaseObserver
	name     string
	started  time.Time
	fields   map[string]any
}

func startUseCase(observer UseCaseObserver, name string) *useCaseSpan {
	return &useCaseSpan{observer: observer, name: name, started: time.Now(), fields: map[string]any{}}
}

func (s *useCaseSpan) set(k string, v any) { s.fields[k] = v }

func (s *useCaseSpan) end(ctx context.Context, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      s.name,
		Duration:  time.Since(s.started),
		Success:   err == nil,
		Err:       err,
		Fields:    s.fields,
		StartedAt: s.started,
	})
}
