package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"github.com/dwikikusuma/gomarketplace/internal/cart/provider"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus classifies a cart error the same way the grpc edge would.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, provider.ErrNoProvider):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, app.ErrCorruptCart):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return err
}

func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", st.Message()
	case codes.Canceled:
		return 499, "CANCELED", st.Message()
	case codes.FailedPrecondition:
		return http.StatusInternalServerError, "FAILED_PRECONDITION", st.Message()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}
