package api

import (
	"errors"
	"fmt"
	nethttp "net/http"

	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/model/external"
	"skynow-api/pkg/http"
)

// classify wraps a provider error in the failure sentinel callers branch on.
func classify(operation string, status int, errResp any, err error) error {
	var decodeErr *http.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("%s: %w: %v", operation, failure.ErrMalformedSource, err)
	}

	detail := err.Error()
	switch body := errResp.(type) {
	case *external.APIErrorResponse:
		if body != nil && body.Message != "" {
			detail = body.String()
		}
	case *external.OpenMeteoErrorResponse:
		if body != nil && body.Reason != "" {
			detail = body.Reason
		}
	}

	if status == nethttp.StatusUnauthorized || status == nethttp.StatusForbidden {
		return fmt.Errorf("%s: %w: %s", operation, failure.ErrUnauthorized, detail)
	}
	return fmt.Errorf("%s: %w: %s", operation, failure.ErrNetworkFailure, detail)
}
