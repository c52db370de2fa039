// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package api provides the HTTP and WebSocket surface of Castmatch.

Routes (all under /api/v1):

  - POST /recommend, /recommend/explain: ranked recommendations
  - POST /sessions, GET /sessions/{id}/summary, POST /sessions/{id}/feedback,
    DELETE /sessions/{id}: session lifecycle
  - POST /intent/classify, /intent/resolve: the intent engine alone
  - POST /search, /search/explain: the semantic engine alone
  - GET /catalog, /catalog/{id}
  - GET /health, /health/live, /health/ready
  - GET /ws: WebSocket stream of recommendations and session updates

Prometheus metrics are served at /metrics.

Every JSON response uses the models.APIResponse envelope. Domain errors are
mapped by classifyError: unknown or expired sessions are 404, invalid input
is 400, and an open session store breaker is 503.

Middleware order is request ID, real IP, panic recovery, CORS, access log,
then Prometheus. The data routes add per-IP rate limiting (go-chi/httprate),
security headers and gzip; /ws has its own upgrade limit, and each
connection is limited per message with golang.org/x/time/rate.
*/
package api
