package grading

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

const (
	fifteenA = "The algorithm uses a function and a variable inside every loop with a condition check."
	fifteenB = "Each array holds an object of some class whose method will return the final value."
)

func excellentAnswer() string {
	return strings.Repeat(fifteenA+" "+fifteenB+" ", 4)
}

func grade(t *testing.T, e *Engine, content string, max float64) Result {
	t.Helper()
	res, err := e.Grade(context.Background(), Item{Content: content, MaxScore: max})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	return res
}

func TestGrade_PoorAnswer(t *testing.T) {
	res := grade(t, NewEngine(), "Bad answer.", 100)

	if res.Score < 0 || res.Score >= 50 {
		t.Fatalf("expected score in [0,50), got %v", res.Score)
	}
	if !strings.Contains(res.Feedback, "expand") || !strings.Contains(res.Feedback, "more details") {
		t.Errorf("feedback should ask for more details, got %q", res.Feedback)
	}
	if res.Components.Keywords != 0 {
		t.Errorf("no keywords expected, got %v", res.Components.Keywords)
	}
}

func TestGrade_ExcellentAnswer(t *testing.T) {
	content := excellentAnswer()
	if n := charCount(content); n < 500 {
		t.Fatalf("fixture too short: %d chars", n)
	}
	if avg := float64(countWords(content)) / float64(countSentences(content)); avg != 15 {
		t.Fatalf("fixture should average 15 words/sentence, got %v", avg)
	}

	res := grade(t, NewEngine(), content, 100)

	if res.Score < 90 {
		t.Fatalf("expected score >= 90, got %v", res.Score)
	}
	if !strings.Contains(res.Feedback, "Excellent") {
		t.Errorf("expected excellent remark, got %q", res.Feedback)
	}
	for _, clause := range []string{FeedbackExpand, FeedbackTerms, FeedbackStructure} {
		if strings.Contains(res.Feedback, clause) {
			t.Errorf("unexpected deficiency clause %q in %q", clause, res.Feedback)
		}
	}
	if len(res.MatchedKeywords) != len(DefaultKeywords) {
		t.Errorf("expected all %d keywords, got %v", len(DefaultKeywords), res.MatchedKeywords)
	}
}

func TestGrade_EmptyContent(t *testing.T) {
	res := grade(t, NewEngine(), "", 100)

	if res.Score != 0 {
		t.Fatalf("expected 0, got %v", res.Score)
	}
	want := "• " + FeedbackExpand + "\n• " + FeedbackTerms + "\n• " + FeedbackStructure
	if res.Feedback != want {
		t.Errorf("feedback = %q, want %q", res.Feedback, want)
	}
}

func TestGrade_InvalidMaxScore(t *testing.T) {
	e := NewEngine()
	for _, max := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := e.Grade(context.Background(), Item{Content: "anything", MaxScore: max})
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("max=%v: expected ErrInvalidConfiguration, got %v", max, err)
		}
	}
}

func TestGrade_ScoreWithinBounds(t *testing.T) {
	e := NewEngine()
	inputs := []string{
		"",
		"   ",
		"...!!!???",
		"loop",
		strings.Repeat("word ", 400),
		strings.Repeat("Algorithm! ", 200),
		excellentAnswer() + excellentAnswer(),
		"Ünïcödé räñdöm téxt wïth nø pünctüätïøn",
	}
	for _, max := range []float64{1, 10, 100, 12.5} {
		for _, in := range inputs {
			res := grade(t, e, in, max)
			if res.Score < 0 || res.Score > max {
				t.Errorf("score %v out of [0,%v] for %q", res.Score, max, in)
			}
			if res.Feedback == "" {
				t.Errorf("empty feedback for %q", in)
			}
		}
	}
}

func TestGrade_Deterministic(t *testing.T) {
	e := NewEngine()
	a := grade(t, e, fifteenA, 100)
	b := grade(t, e, fifteenA, 100)
	if math.Float64bits(a.Score) != math.Float64bits(b.Score) || a.Feedback != b.Feedback {
		t.Fatalf("non-deterministic result: %+v vs %+v", a, b)
	}
}

func TestLengthComponent_Monotonic(t *testing.T) {
	e := NewEngine()
	prev := -1.0
	for n := 0; n <= 600; n += 25 {
		got := e.lengthScore(strings.Repeat("x", n))
		if got < prev {
			t.Fatalf("length score decreased at %d chars: %v < %v", n, got, prev)
		}
		prev = got
	}
	if prev != 1 {
		t.Errorf("length score should saturate at 1, got %v", prev)
	}
}

func TestKeywords_CountedOnce(t *testing.T) {
	got := matchKeywords("LOOP loop Loop looping", DefaultKeywords)
	if len(got) != 1 || got[0] != "loop" {
		t.Fatalf("expected [loop], got %v", got)
	}
}

// The structure component uses the triangular formula around 15 words per
// sentence, not the saturating min(avg/15, 1) variant.
func TestStructure_TriangularAroundFifteen(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		words int
		want  float64
	}{
		{15, 1},
		{30, 0},
		{45, 0},
		{0, 0},
	}
	for _, c := range cases {
		s := strings.TrimSpace(strings.Repeat("w ", c.words)) + "."
		if got := e.structureScore(s); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%d words: got %v, want %v", c.words, got, c.want)
		}
	}
	// 20 words: 1 - 5/15
	s := strings.TrimSpace(strings.Repeat("w ", 20)) + "."
	if got := e.structureScore(s); math.Abs(got-(1-5.0/15)) > 1e-9 {
		t.Errorf("20 words: got %v", got)
	}
}

func TestCountSentences_IgnoresBlankSegments(t *testing.T) {
	cases := map[string]int{
		"":                 0,
		"Bad answer.":      1,
		"One. Two! Three?": 3,
		"No terminator":    1,
		"Wait... what?!":   2,
		"  .  !  ?  ":      0,
	}
	for in, want := range cases {
		if got := countSentences(in); got != want {
			t.Errorf("countSentences(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFeedback_Fallback(t *testing.T) {
	got := Feedback(Components{Length: 0.6, Keywords: 0.6, Structure: 0.75})
	if got != "• "+FeedbackReceived {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestFeedback_Order(t *testing.T) {
	got := Feedback(Components{Length: 0.1, Keywords: 0.9, Structure: 0.1})
	want := "• " + FeedbackExpand + "\n• " + FeedbackStructure
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRubric_ClampsOverweight(t *testing.T) {
	e := NewEngine(WithRubric(Rubric{Criteria: []Criterion{
		{Key: CriterionLength, Weight: 1},
		{Key: CriterionKeywords, Weight: 1},
		{Key: CriterionStructure, Weight: 1},
	}}))
	res := grade(t, e, excellentAnswer(), 50)
	if res.Score != 50 {
		t.Fatalf("expected clamp to 50, got %v", res.Score)
	}
}

func TestWithKeywords_Custom(t *testing.T) {
	e := NewEngine(WithKeywords([]string{" Goroutine ", "CHANNEL", ""}))
	if kw := e.Keywords(); len(kw) != 2 || kw[0] != "goroutine" || kw[1] != "channel" {
		t.Fatalf("keywords not normalized: %v", kw)
	}
	res := grade(t, e, "A goroutine sends on a channel.", 100)
	if math.Abs(res.Components.Keywords-0.2) > 1e-9 {
		t.Errorf("expected keyword component 0.2, got %v", res.Components.Keywords)
	}
}

func TestWithIdealSentenceLength_NonFiniteFallsBack(t *testing.T) {
	for _, ideal := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 0, -3} {
		e := NewEngine(WithIdealSentenceLength(ideal))
		res := grade(t, e, "Bad answer.", 100)
		if math.IsNaN(res.Components.Structure) || math.IsInf(res.Components.Structure, 0) {
			t.Fatalf("ideal=%v: structure component %v", ideal, res.Components.Structure)
		}
		if !strings.Contains(res.Feedback, FeedbackStructure) {
			t.Errorf("ideal=%v: structure line missing from %q", ideal, res.Feedback)
		}
		if got := e.structureScore(fifteenA); got != 1 {
			t.Errorf("ideal=%v: expected default of 15 words, got %v", ideal, got)
		}
	}
}
