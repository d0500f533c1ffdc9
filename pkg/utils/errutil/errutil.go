package errutil

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/utils/async"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// Handle logs the error with a message and returns it unchanged. Goerr
// context values and stack traces are included in the log record.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// HandleHTTP logs the error and writes an HTTP error response. Server
// errors are also reported to Sentry when it is configured.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	// Reported off the request path so a slow Sentry endpoint does not
	// delay the error response
	if statusCode >= http.StatusInternalServerError && sentry.CurrentHub().Client() != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	http.Error(w, err.Error(), statusCode)
}
