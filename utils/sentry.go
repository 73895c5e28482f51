package utils

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// InitSentry is a no-op when dsn is empty. Callers flush on shutdown.
func InitSentry(dsn, environment, release string, tracesSampleRate float64) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "mad-labs-apply@" + release,
		TracesSampleRate: tracesSampleRate,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	return nil
}

func CaptureError(err error, context map[string]interface{}) {
	if hub := sentry.CurrentHub(); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
