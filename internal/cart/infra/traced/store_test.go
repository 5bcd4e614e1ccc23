package traced

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dwikikusuma/gomarketplace/internal/cart/infra/memory"
)

type brokenKV struct{ err error }

func (b brokenKV) Get(ctx context.Context, key string) (string, bool, error) { return "", false, b.err }
func (b brokenKV) Set(ctx context.Context, key, value string) error          { return b.err }

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestStoreRecordsSpans(t *testing.T) {
	ctx := context.Background()
	sr, tp := newRecorder()
	s := Wrap(memory.NewStore(), "memory", tp, quiet())

	if err := s.Set(ctx, "@GoMarketplace", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "@GoMarketplace")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("got (%q,%v,%v)", v, ok, err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	names := []string{"kv.set", "kv.get", "kv.ping"}
	for i, want := range names {
		if spans[i].Name() != want {
			t.Fatalf("span %d: got %q, want %q", i, spans[i].Name(), want)
		}
	}
}

func TestStoreMarksErrors(t *testing.T) {
	sr, tp := newRecorder()
	boom := errors.New("boom")
	s := Wrap(brokenKV{err: boom}, "broken", tp, quiet())

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("expected one errored span, got %+v", spans)
	}
}

func TestPingWithoutPinger(t *testing.T) {
	s := Wrap(brokenKV{}, "broken", nil, quiet())
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("expected nil for store without Ping, got %v", err)
	}
}
