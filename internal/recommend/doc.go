// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package recommend blends intent, semantic and personalization signals
// into a single explained choice from the character catalog.
//
// # Architecture
//
// Three engines each score every catalog item:
//
//   - intent (subpackage intent): keyword classification of style, purpose
//     and motion, compared against item metadata
//   - semantic (subpackage semantic): cosine similarity in a hand-built
//     concept space, with lexical fallback
//   - personalization (subpackage personalize): decayed, feedback-weighted
//     affinity from the caller's session
//
// Engine depends on them only through the IntentEngine, SemanticEngine and
// PersonalizationEngine interfaces, so tests substitute fakes freely.
//
// # Adaptive Weights
//
// The personalization weight grows by Config.PersonalStep for each of the
// first Config.PersonalCapInteractions interactions in a session. Intent
// and semantic weights share the remainder in their base proportion. With
// the defaults this moves from 0.4/0.4/0.2 on a cold session to
// 0.25/0.25/0.5 from the third interaction on.
//
// # Determinism
//
// Ranking has no randomness. Equal scores resolve to catalog order, and
// the only I/O on the scoring path is the session store read.
//
// # Usage
//
//	ec, err := recommend.NewEngineContext(ctx, catalog.EmbeddedRepository{}, "", logger)
//	...
//	engine, err := recommend.NewEngine(ec, intentEngine, semanticEngine, personalEngine, recommend.DefaultConfig(), logger)
//	rec, err := engine.Recommend(ctx, recommend.Request{Query: "a cheerful dancer", SessionID: id})
//
// # Thread Safety
//
// Engine is safe for concurrent use. Concurrent recommendations for the
// same session each record their own interaction; the personalization
// engine serializes the writes.
package recommend
