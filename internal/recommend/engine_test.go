// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package recommend

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
	"github.com/tomtom215/castmatch/internal/session"
)

type pipeline struct {
	engine   *Engine
	personal *personalize.Engine
	ec       *EngineContext
}

func newPipeline(t *testing.T) pipeline {
	t.Helper()
	return newPipelineWithLogger(t, zerolog.Nop())
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newPipelineWithLogger(t *testing.T, logger zerolog.Logger) pipeline {
	t.Helper()
	ctx := context.Background()

	ec, err := NewEngineContext(ctx, catalog.EmbeddedRepository{}, "", logger)
	if err != nil {
		t.Fatalf("NewEngineContext() error = %v", err)
	}
	ie, err := intent.NewEngine(intent.DefaultConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	se, err := semantic.NewEngine(ec.Catalog, ec.Vocabulary, semantic.DefaultConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	pe, err := personalize.NewEngine(session.NewMemoryStore(), ec.Catalog, personalize.DefaultConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(ec, ie, se, pe, DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return pipeline{engine: e, personal: pe, ec: ec}
}

func (p pipeline) startSession(t *testing.T) string {
	t.Helper()
	id, err := p.personal.StartSession(context.Background(), "tester")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	return id
}

func (p pipeline) selectWalking(t *testing.T, id string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		_, err := p.personal.RecordInteraction(context.Background(), id, personalize.InteractionInput{
			Query:          "walking",
			SelectedItemID: "walking",
			Intent:         intent.Intent{Style: intent.StyleNeutral, Purpose: intent.PurposeGeneral, Motion: intent.MotionWalking},
		})
		if err != nil {
			t.Fatalf("RecordInteraction() error = %v", err)
		}
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func scoreOf(rec *Recommendation, id string) float64 {
	for _, r := range rec.RankedAlternatives {
		if r.ItemID == id {
			return r.Score
		}
	}
	return -1
}

func TestWalkingQuery(t *testing.T) {
	p := newPipeline(t)
	rec, err := p.engine.Recommend(context.Background(), Request{Query: "show me a walking person"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if rec.SelectedItemID != "walking" {
		t.Fatalf("SelectedItemID = %q, want walking", rec.SelectedItemID)
	}
	if got := rec.ComponentScores[ComponentIntent]["walking"]; got != 1 {
		t.Errorf("intent[walking] = %v, want 1", got)
	}
	sem := rec.ComponentScores[ComponentSemantic]["walking"]
	if sem < 0.95 {
		t.Errorf("semantic[walking] = %v, want >= 0.95", sem)
	}
	if want := 0.4 + 0.4*sem; !approx(rec.RankedAlternatives[0].Score, want) {
		t.Errorf("combined = %v, want %v", rec.RankedAlternatives[0].Score, want)
	}
	if !approx(rec.Confidence, rec.RankedAlternatives[0].Score) {
		t.Errorf("Confidence = %v, want combined score without boost", rec.Confidence)
	}
	if rec.SessionState != StateCold || rec.InteractionIndex != nil {
		t.Errorf("state = %s, index = %v; want cold and nothing recorded", rec.SessionState, rec.InteractionIndex)
	}
	if len(rec.RankedAlternatives) != p.ec.Catalog.Len() {
		t.Errorf("len(RankedAlternatives) = %d, want %d", len(rec.RankedAlternatives), p.ec.Catalog.Len())
	}
	for _, part := range []string{"Intent:", "Semantic:", "Personalization: no session"} {
		if !strings.Contains(rec.Reasoning, part) {
			t.Errorf("Reasoning missing %q: %s", part, rec.Reasoning)
		}
	}
}

func TestAdaptiveWeighting(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	id := p.startSession(t)
	p.selectWalking(t, id, 3)

	rec, err := p.engine.Recommend(ctx, Request{Query: "show me something", SessionID: id})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if rec.SelectedItemID != "walking" {
		t.Errorf("SelectedItemID = %q, want walking", rec.SelectedItemID)
	}
	if rec.SessionState != StatePersonalized {
		t.Errorf("SessionState = %s, want personalized", rec.SessionState)
	}
	if !approx(rec.Weights.Personalization, 0.5) || !approx(rec.Weights.Intent, 0.25) {
		t.Errorf("Weights = %+v, want 0.25/0.25/0.5", rec.Weights)
	}
	if got := scoreOf(rec, "walking"); !approx(got, 0.5) {
		t.Errorf("walking score = %v, want 0.5", got)
	}
	if rec.InteractionIndex == nil || *rec.InteractionIndex != 3 {
		t.Errorf("InteractionIndex = %v, want 3", rec.InteractionIndex)
	}
	if n, _ := p.personal.InteractionCount(ctx, id); n != 4 {
		t.Errorf("InteractionCount = %d, want 4", n)
	}
}

func TestFeedbackReversal(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	id := p.startSession(t)
	p.selectWalking(t, id, 3)

	first, err := p.engine.Recommend(ctx, Request{Query: "show me something", SessionID: id})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if err := p.personal.ApplyFeedback(ctx, id, *first.InteractionIndex, session.FeedbackNegative); err != nil {
		t.Fatalf("ApplyFeedback() error = %v", err)
	}

	second, err := p.engine.Recommend(ctx, Request{Query: "show me something", SessionID: id})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	before, after := scoreOf(first, "walking"), scoreOf(second, "walking")
	if !(after < before) {
		t.Errorf("walking score %v -> %v after negative feedback, want strictly lower", before, after)
	}
	if second.ComponentScores[ComponentPersonalization]["walking"] >= 1 {
		t.Errorf("personalization[walking] = %v, want < 1", second.ComponentScores[ComponentPersonalization]["walking"])
	}
}

func TestColdStartNeutrality(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	for _, q := range []string{"show me a walking person", "cartoon dance party", "xyzzy", ""} {
		anon, err := p.engine.Explain(ctx, Request{Query: q})
		if err != nil {
			t.Fatalf("Explain(%q) error = %v", q, err)
		}
		cold, err := p.engine.Explain(ctx, Request{Query: q, SessionID: p.startSession(t)})
		if err != nil {
			t.Fatalf("Explain(%q, session) error = %v", q, err)
		}
		if !reflect.DeepEqual(anon.RankedAlternatives, cold.RankedAlternatives) {
			t.Errorf("%q: cold session ranking differs from anonymous ranking", q)
		}
		if anon.Confidence != cold.Confidence {
			t.Errorf("%q: confidence %v vs %v", q, anon.Confidence, cold.Confidence)
		}
	}
}

func TestCorroborationBoost(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	id := p.startSession(t)
	p.selectWalking(t, id, 3)

	rec, err := p.engine.Explain(ctx, Request{Query: "walking", SessionID: id})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if rec.SelectedItemID != "walking" {
		t.Fatalf("SelectedItemID = %q, want walking", rec.SelectedItemID)
	}
	want := math.Min(1, rec.RankedAlternatives[0].Score+0.1)
	if !approx(rec.Confidence, want) {
		t.Errorf("Confidence = %v, want %v", rec.Confidence, want)
	}
	if !strings.Contains(rec.Reasoning, "agree") {
		t.Errorf("Reasoning does not mention corroboration: %s", rec.Reasoning)
	}
}

func TestExplainRecordsNothing(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	id := p.startSession(t)

	rec, err := p.engine.Explain(ctx, Request{Query: "dance", SessionID: id})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if rec.InteractionIndex != nil {
		t.Errorf("InteractionIndex = %v, want nil", *rec.InteractionIndex)
	}
	if n, _ := p.personal.InteractionCount(ctx, id); n != 0 {
		t.Errorf("InteractionCount = %d, want 0", n)
	}
}

func TestBoundsAndDeterminism(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	queries := []string{
		"", "show me a walking person", "cartoon robot dancing for a game",
		"a knight standing guard", "friendly presenter waving hello",
		"xyzzy plugh", "someone", "fast energetic workout", "!!!",
	}
	for _, q := range queries {
		first, err := p.engine.Explain(ctx, Request{Query: q})
		if err != nil {
			t.Fatalf("Explain(%q) error = %v", q, err)
		}
		if first.Confidence < 0 || first.Confidence > 1 {
			t.Errorf("%q: confidence %v outside [0,1]", q, first.Confidence)
		}
		for comp, scores := range first.ComponentScores {
			for item, s := range scores {
				if s < 0 || s > 1 {
					t.Errorf("%q: %s[%s] = %v outside [0,1]", q, comp, item, s)
				}
			}
		}
		if first.Reasoning == "" {
			t.Errorf("%q: empty reasoning", q)
		}
		again, _ := p.engine.Explain(ctx, Request{Query: q})
		if !reflect.DeepEqual(first.RankedAlternatives, again.RankedAlternatives) || first.Reasoning != again.Reasoning {
			t.Errorf("%q: ranking not deterministic", q)
		}
	}
}

func TestUnknownQueryDegradesGracefully(t *testing.T) {
	p := newPipeline(t)
	rec, err := p.engine.Recommend(context.Background(), Request{Query: "xyzzy plugh"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// every signal is zero, so the first catalog item wins
	if rec.SelectedItemID != p.ec.Catalog.Items()[0].ID {
		t.Errorf("SelectedItemID = %q, want first catalog item", rec.SelectedItemID)
	}
	if !strings.Contains(rec.Reasoning, "no known concepts") {
		t.Errorf("Reasoning does not mention lexical fallback: %s", rec.Reasoning)
	}
}

func TestHintsShapeIntent(t *testing.T) {
	p := newPipeline(t)
	rec, err := p.engine.Explain(context.Background(), Request{
		Query: "show me a character",
		Hints: map[string]string{"style": "fantasy"},
	})
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if rec.Intent.Style != intent.StyleFantasy {
		t.Errorf("Intent.Style = %s, want fantasy", rec.Intent.Style)
	}
	if rec.SelectedItemID != "knight-idle" {
		t.Errorf("SelectedItemID = %q, want knight-idle", rec.SelectedItemID)
	}
}

func TestRankLogIncludesUserID(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	p := newPipelineWithLogger(t, zerolog.New(&buf))
	if _, err := p.engine.Explain(context.Background(), Request{Query: "walking", UserID: "animator-7"}); err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"Recommendation ranked"`) || !strings.Contains(out, `"user_id":"animator-7"`) {
		t.Errorf("ranking log missing user_id: %s", out)
	}
}

// Fakes for error paths.

type fakeIntent struct{}

func (fakeIntent) Classify(string, map[string]string) intent.Intent {
	return intent.Intent{Style: intent.StyleNeutral, Purpose: intent.PurposeGeneral, Motion: intent.MotionNone}
}

type fakeSemantic struct {
	calls int
}

func (f *fakeSemantic) Search(string, int) []semantic.SearchResult {
	f.calls++
	return nil
}

func (f *fakeSemantic) Similarities(string) map[string]float64 {
	f.calls++
	return map[string]float64{}
}

type fakePersonal struct {
	countErr  error
	recordErr error
}

func (f *fakePersonal) InteractionCount(context.Context, string) (int, error) {
	return 0, f.countErr
}

func (f *fakePersonal) Score(_ context.Context, _, _ string, candidates []string) (map[string]float64, error) {
	out := make(map[string]float64, len(candidates))
	for _, id := range candidates {
		out[id] = 0
	}
	return out, nil
}

func (f *fakePersonal) RecordInteraction(context.Context, string, personalize.InteractionInput) (int, error) {
	return 0, f.recordErr
}

func newFakeEngine(t *testing.T, se *fakeSemantic, pe *fakePersonal) *Engine {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{ID: "a", DisplayName: "A", Tags: []string{"a"}},
		{ID: "b", DisplayName: "B", Tags: []string{"b"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(&EngineContext{Catalog: cat}, fakeIntent{}, se, pe, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestUnknownSessionFailsBeforeScoring(t *testing.T) {
	for _, storeErr := range []error{session.ErrSessionNotFound, session.ErrSessionExpired} {
		se := &fakeSemantic{}
		e := newFakeEngine(t, se, &fakePersonal{countErr: storeErr})

		_, err := e.Recommend(context.Background(), Request{Query: "a", SessionID: "gone"})
		if !errors.Is(err, ErrUnknownSession) || !errors.Is(err, storeErr) {
			t.Errorf("error = %v, want ErrUnknownSession wrapping %v", err, storeErr)
		}
		if se.calls != 0 {
			t.Errorf("semantic engine called %d times, want 0", se.calls)
		}
	}
}

func TestStoreFailureIsNotUnknownSession(t *testing.T) {
	e := newFakeEngine(t, &fakeSemantic{}, &fakePersonal{recordErr: session.ErrStoreUnavailable})
	_, err := e.Recommend(context.Background(), Request{Query: "a", SessionID: "s"})
	if errors.Is(err, ErrUnknownSession) || !errors.Is(err, session.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable only", err)
	}
}

func TestNewEngineRequiresDependencies(t *testing.T) {
	if _, err := NewEngine(nil, fakeIntent{}, &fakeSemantic{}, &fakePersonal{}, nil, zerolog.Nop()); err == nil {
		t.Errorf("NewEngine(nil context) error = nil")
	}
	bad := DefaultConfig()
	bad.Base.Intent = 2
	if _, err := NewEngine(&EngineContext{}, fakeIntent{}, &fakeSemantic{}, &fakePersonal{}, bad, zerolog.Nop()); err == nil {
		t.Errorf("NewEngine(bad config) error = nil")
	}
}
