package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"github.com/dwikikusuma/gomarketplace/internal/cart/provider"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatusFromGRPC(t *testing.T) {
	t.Run("InvalidArgument -> 400", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, "bad")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		err := status.Error(codes.NotFound, "missing")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("Unavailable -> 503", func(t *testing.T) {
		err := status.Error(codes.Unavailable, "down")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("DeadlineExceeded -> 503", func(t *testing.T) {
		err := status.Error(codes.DeadlineExceeded, "timeout")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("non-grpc error -> 500", func(t *testing.T) {
		err := errors.New("boom")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})
}

func TestToStatus(t *testing.T) {
	t.Run("wrapped ErrInvalidInput -> InvalidArgument", func(t *testing.T) {
		err := toStatus(fmt.Errorf("add: %w", app.ErrInvalidInput))
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("got %v", status.Code(err))
		}
	})

	t.Run("ErrNoProvider -> FailedPrecondition", func(t *testing.T) {
		err := toStatus(provider.ErrNoProvider)
		if status.Code(err) != codes.FailedPrecondition {
			t.Fatalf("got %v", status.Code(err))
		}
	})

	t.Run("store error -> left as is", func(t *testing.T) {
		boom := errors.New("boom")
		if err := toStatus(boom); err != boom {
			t.Fatalf("got %v", err)
		}
	})
}
