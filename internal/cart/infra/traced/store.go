package traced

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
)

const instrumentationName = "github.com/dwikikusuma/gomarketplace/internal/cart/infra/traced"

// Store wraps a durable store with a span and a debug log line per call.
type Store struct {
	next    app.KV
	backend string
	tracer  trace.Tracer
	log     *slog.Logger
}

// Wrap uses the global tracer provider when tp is nil.
func Wrap(next app.KV, backend string, tp trace.TracerProvider, log *slog.Logger) *Store {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		next:    next,
		backend: backend,
		tracer:  tp.Tracer(instrumentationName),
		log:     log.With(slog.String("store", backend)),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := s.start(ctx, "kv.get", key)
	defer span.End()

	began := time.Now()
	v, ok, err := s.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("kv.found", ok), attribute.Int("kv.value_bytes", len(v)))
	s.finish(span, "kv get", key, began, err)
	return v, ok, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	ctx, span := s.start(ctx, "kv.set", key)
	defer span.End()

	began := time.Now()
	span.SetAttributes(attribute.Int("kv.value_bytes", len(value)))
	err := s.next.Set(ctx, key, value)
	s.finish(span, "kv set", key, began, err)
	return err
}

// Ping forwards to the wrapped store when it can be pinged.
func (s *Store) Ping(ctx context.Context) error {
	p, ok := s.next.(app.Pinger)
	if !ok {
		return nil
	}
	ctx, span := s.start(ctx, "kv.ping", "")
	defer span.End()

	err := p.Ping(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *Store) start(ctx context.Context, name, key string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("kv.backend", s.backend)}
	if key != "" {
		attrs = append(attrs, attribute.String("kv.key", key))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindClient))
}

func (s *Store) finish(span trace.Span, msg, key string, began time.Time, err error) {
	took := time.Since(began)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn(msg+" failed", slog.String("key", key), slog.Duration("took", took), slog.Any("err", err))
		return
	}
	s.log.Debug(msg, slog.String("key", key), slog.Duration("took", took))
}
