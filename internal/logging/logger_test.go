// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("item", "walking").Msg("selected")

	out := buf.String()
	if !strings.Contains(out, `"item":"walking"`) {
		t.Errorf("output missing field: %s", out)
	}
	if !strings.Contains(out, `"message":"selected"`) {
		t.Errorf("output missing message: %s", out)
	}
}

func TestCtxAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewTestLogger(&buf)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")

	l := CtxWith(ctx, base)
	l.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Errorf("missing request_id: %s", out)
	}
	if !strings.Contains(out, `"session_id":"sess-1"`) {
		t.Errorf("missing session_id: %s", out)
	}
}

func TestCtxWithoutFields(t *testing.T) {
	var buf bytes.Buffer
	l := CtxWith(context.Background(), NewTestLogger(&buf))
	l.Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id in %s", buf.String())
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := slog.New(NewSlogHandler(NewTestLogger(&buf))).
		With("service", "sweeper").
		WithGroup("supervisor")
	logger.Warn("service restarted", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"sweeper"`, `"supervisor.attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Errorf("GenerateRequestID returned duplicate %q", a)
	}
	if len(a) != 36 {
		t.Errorf("len(GenerateRequestID()) = %d, want 36", len(a))
	}
}
