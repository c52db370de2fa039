// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package middleware holds the Castmatch-specific HTTP middleware. Everything
else (recovery, real IP, CORS, rate limiting, compression) comes from the chi
ecosystem and is assembled in internal/api.

  - RequestID: accepts or generates X-Request-ID and puts it in the logging context
  - PrometheusMetrics: request latency by method, chi route pattern and status
  - AccessLog: one zerolog line per request, raised to WARN above a threshold

All three use chi's WrapResponseWriter so hijacking (WebSocket upgrades)
keeps working underneath them.
*/
package middleware
