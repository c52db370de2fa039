// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/logging"
)

// AccessLog logs each request at DEBUG, or WARN when it took longer than
// slow. Server errors are logged at ERROR. A non-positive slow disables the
// slow-request promotion.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func AccessLog(logger zerolog.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			status := statusOf(ww)
			l := logging.CtxWith(r.Context(), logger)

			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = l.Error()
			case slow > 0 && duration > slow:
				event = l.Warn().Bool("slow", true)
			default:
				event = l.Debug()
			}
			event.
				Str("method", r.Method).
				Str("route", routeLabel(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Msg("http request")
		})
	}
}
