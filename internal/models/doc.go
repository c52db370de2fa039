// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package models defines the wire structures of the Castmatch HTTP and
WebSocket API.

Domain types (catalog items, intents, sessions, recommendations) live in
their own packages; this package holds only the envelope every endpoint
returns and the request bodies the API accepts. Request structs carry
go-playground/validator tags that internal/validation enforces.
*/
package models
