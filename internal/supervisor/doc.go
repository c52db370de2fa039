// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package supervisor runs Castmatch's long-lived services under a suture v4 tree.

	castmatch
	├── session-layer
	│   └── SessionSweeperService
	└── api-layer
	    └── HTTPServerService

Each layer restarts independently. A crashing sweeper (for example, while the
badger store is unavailable) backs off without affecting request handling.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddSessionService(services.NewSessionSweeperService(store, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	errCh := tree.ServeBackground(ctx)

# Failure Handling

Failures feed a counter that decays over FailureDecay seconds. Past
FailureThreshold the supervisor waits FailureBackoff before restarting.
Services return nil to stop permanently and an error to be restarted.

Supervisor events (start, fail, backoff) are logged through sutureslog, with
the slog handler bridged onto zerolog by internal/logging.

The session store itself is not supervised. It is opened before the tree
starts and closed after it stops.
*/
package supervisor
