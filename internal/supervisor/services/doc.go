// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package services adapts Castmatch components to suture's Serve(ctx) pattern.

HTTPServerService wraps an *http.Server (or anything with ListenAndServe and
Shutdown) and shuts it down gracefully when the context is canceled.

SessionSweeperService periodically purges expired sessions from a session
store. A failed sweep is logged and retried on the next tick. It only returns
an error (and so gets restarted) after repeated consecutive failures.

Both implement fmt.Stringer so suture logs them by name.
*/
package services
