package grading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfiguration is returned when the assignment scale cannot
// produce a meaningful score (max score <= 0, NaN or Inf).
var ErrInvalidConfiguration = errors.New("invalid grading configuration")

// Item is the minimal view of a submission needed for grading.
type Item struct {
	Content  string
	MaxScore float64
}

// Components holds the normalized sub-scores, each in [0,1].
type Components struct {
	Length    float64 `json:"length"`
	Keywords  float64 `json:"keywords"`
	Structure float64 `json:"structure"`
}

// Result is the outcome of grading a single submission.
type Result struct {
	Score           float64    `json:"score"`
	Feedback        string     `json:"feedback"`
	Components      Components `json:"components"`
	MatchedKeywords []string   `json:"matched_keywords,omitempty"`
}

// Grader scores a submission against its assignment scale.
type Grader interface {
	Grade(ctx context.Context, it Item) (Result, error)
}

// DefaultKeywords is the technical vocabulary rewarded by the keyword component.
var DefaultKeywords = []string{
	"algorithm", "function", "variable", "loop", "condition",
	"array", "object", "class", "method", "return",
}

// Engine options

type Option func(*config)

type config struct {
	Keywords            []string
	LengthSaturation    int     // characters at which the length component saturates
	IdealSentenceLength float64 // words per sentence scoring 1.0 on structure
	Rubric              Rubric
}

func WithKeywords(kw []string) Option          { return func(c *config) { c.Keywords = kw } }
func WithLengthSaturation(n int) Option        { return func(c *config) { c.LengthSaturation = n } }
func WithIdealSentenceLength(w float64) Option { return func(c *config) { c.IdealSentenceLength = w } }
func WithRubric(r Rubric) Option               { return func(c *config) { c.Rubric = r } }

// Engine is the heuristic grader. It holds no mutable state once built and
// is safe for concurrent use.
type Engine struct {
	keywords   []string
	saturation float64
	ideal      float64
	rubric     Rubric
}

var _ Grader = (*Engine)(nil)

// NewEngine builds an Engine with the default vocabulary, a 500 character
// length saturation, a 15 word ideal sentence and the default rubric.
func NewEngine(opts ...Option) *Engine {
	cfg := &config{
		Keywords:            DefaultKeywords,
		LengthSaturation:    500,
		IdealSentenceLength: 15,
		Rubric:              DefaultRubric(),
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.LengthSaturation <= 0 {
		cfg.LengthSaturation = 500
	}
	if !finitePositive(cfg.IdealSentenceLength) {
		cfg.IdealSentenceLength = 15
	}
	kw := make([]string, 0, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Engine{
		keywords:   kw,
		saturation: float64(cfg.LengthSaturation),
		ideal:      cfg.IdealSentenceLength,
		rubric:     cfg.Rubric,
	}
}

// Keywords returns a copy of the vocabulary in use.
func (e *Engine) Keywords() []string {
	out := make([]string, len(e.keywords))
	copy(out, e.keywords)
	return out
}

// Grade never fails on content; only the assignment scale is validated.
func (e *Engine) Grade(_ context.Context, it Item) (Result, error) {
	if it.MaxScore <= 0 || math.IsNaN(it.MaxScore) || math.IsInf(it.MaxScore, 0) {
		return Result{}, fmt.Errorf("%w: max score %v", ErrInvalidConfiguration, it.MaxScore)
	}

	matched := matchKeywords(it.Content, e.keywords)
	comp := Components{
		Length:    e.lengthScore(it.Content),
		Keywords:  e.keywordScore(len(matched)),
		Structure: e.structureScore(it.Content),
	}

	score := e.rubric.Combine(map[string]float64{
		CriterionLength:    comp.Length,
		CriterionKeywords:  comp.Keywords,
		CriterionStructure: comp.Structure,
	}) * it.MaxScore
	score = clamp(score, 0, it.MaxScore)

	return Result{
		Score:           score,
		Feedback:        Feedback(comp),
		Components:      comp,
		MatchedKeywords: matched,
	}, nil
}

func (e *Engine) lengthScore(content string) float64 {
	return math.Min(float64(charCount(content))/e.saturation, 1)
}

// keywordScore normalizes against ten hits regardless of vocabulary size,
// so a custom vocabulary shorter than ten can never saturate the component.
func (e *Engine) keywordScore(hits int) float64 {
	return math.Min(float64(hits)/10.0, 1)
}

// structureScore is triangular around the ideal sentence length: 1.0 at the
// ideal, 0 at zero or at twice the ideal and beyond.
func (e *Engine) structureScore(content string) float64 {
	sentences := countSentences(content)
	words := countWords(content)
	if sentences == 0 || words == 0 {
		return 0
	}
	avg := float64(words) / float64(sentences)
	return math.Max(0, 1-math.Abs(avg-e.ideal)/e.ideal)
}

// Feedback lines, emitted in this order.
const (
	FeedbackExpand    = "Consider expanding your answer with more details."
	FeedbackTerms     = "Try to include more relevant technical terms."
	FeedbackStructure = "Review sentence structure and grammar."
	FeedbackExcellent = "Excellent work! Well-structured and comprehensive answer."
	FeedbackReceived  = "Submission received. No specific issues found."
)

// Feedback derives the feedback text from the sub-scores, one bulleted line
// per matching rule. It is never empty.
func Feedback(c Components) string {
	var lines []string
	if c.Length < 0.5 {
		lines = append(lines, FeedbackExpand)
	}
	if c.Keywords < 0.5 {
		lines = append(lines, FeedbackTerms)
	}
	if c.Structure < 0.7 {
		lines = append(lines, FeedbackStructure)
	}
	if c.Length > 0.8 && c.Keywords > 0.8 && c.Structure > 0.8 {
		lines = append(lines, FeedbackExcellent)
	}
	if len(lines) == 0 {
		lines = append(lines, FeedbackReceived)
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(l)
	}
	return b.String()
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
