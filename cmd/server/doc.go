// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package main is the Castmatch server.
//
// Castmatch picks a 3D character asset for a free-text request by blending
// three signals: the structured intent of the query, its semantic
// similarity to each item's tags, and the preferences learned in the
// caller's session. Every recommendation carries its component scores and
// a plain-language explanation.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog
//  3. Catalog and vocabulary: file or embedded; a catalog failure is fatal
//  4. Session store: memory or BadgerDB, behind a circuit breaker
//  5. Engines: intent, semantic, personalization, ranking integrator
//  6. Supervisor tree: session sweeper, WebSocket hub, HTTP server
//
// # Configuration
//
// Common environment variables:
//
//	CONFIG_PATH=/etc/castmatch/config.yaml
//	HTTP_PORT=8420
//	LOG_LEVEL=debug
//	CATALOG_PATH=/data/catalog.yaml
//	SESSION_STORE=badger
//	SESSION_STORE_PATH=/data/sessions
//	SESSION_TTL=24h
//	CORS_ORIGINS=https://studio.example.com
//
// # Signals
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains for
// server.shutdown_timeout, WebSocket clients receive a close frame, and the
// session store is closed last.
package main
