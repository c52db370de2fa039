// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		in      string
		want    Feedback
		wantErr bool
	}{
		{"positive", FeedbackPositive, false},
		{" Negative ", FeedbackNegative, false},
		{"NEUTRAL", FeedbackNeutral, false},
		{"none", FeedbackNone, false},
		{"great", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFeedback(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFeedback(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseFeedback(%q) error = %v, want ErrInvalidInput", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFeedback(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New("u1", now, time.Hour)

	parsed, err := uuid.Parse(s.ID)
	if err != nil || parsed.Version() != 4 {
		t.Errorf("ID = %q, want uuid v4", s.ID)
	}
	if !s.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, want %v", s.ExpiresAt, now.Add(time.Hour))
	}
	if s.IsExpiredAt(now.Add(59 * time.Minute)) {
		t.Errorf("expired before ttl")
	}
	if !s.IsExpiredAt(now.Add(61 * time.Minute)) {
		t.Errorf("not expired after ttl")
	}

	forever := New("", now, 0)
	if forever.IsExpiredAt(now.Add(1000 * time.Hour)) {
		t.Errorf("zero ttl session expired")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New("", time.Now(), time.Hour)
	s.Interactions = append(s.Interactions, Interaction{SelectedItemID: "walking", SatisfactionWeight: 1})
	s.PreferenceWeights["walking"] = 1

	c := s.Clone()
	c.Interactions[0].SatisfactionWeight = 0.5
	c.PreferenceWeights["walking"] = 2

	if s.Interactions[0].SatisfactionWeight != 1 || s.PreferenceWeights["walking"] != 1 {
		t.Errorf("Clone shares state with original")
	}
}
