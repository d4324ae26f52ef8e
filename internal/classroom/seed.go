package classroom

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk seed format. Submissions reference students and
// assignments by key; ids are generated when the fixture is applied.
type Fixture struct {
	Students    []FixtureStudent    `yaml:"students"`
	Assignments []FixtureAssignment `yaml:"assignments"`
	Submissions []FixtureSubmission `yaml:"submissions"`
}

type FixtureStudent struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type FixtureAssignment struct {
	Key         string  `yaml:"key"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	MaxScore    float64 `yaml:"max_score"`
	DueInDays   int     `yaml:"due_in_days"`
}

type FixtureSubmission struct {
	Student    string `yaml:"student"`
	Assignment string `yaml:"assignment"`
	Content    string `yaml:"content"`
}

// SampleFixture is the built-in demo classroom.
func SampleFixture() Fixture {
	return Fixture{
		Students: []FixtureStudent{
			{Key: "alice", Name: "Alice Johnson", Email: "alice@example.com"},
			{Key: "bob", Name: "Bob Smith", Email: "bob@example.com"},
			{Key: "carol", Name: "Carol Davis", Email: "carol@example.com"},
		},
		Assignments: []FixtureAssignment{{
			Key:         "quicksort",
			Title:       "Algorithm Analysis",
			Description: "Explain the time complexity of quicksort algorithm",
			MaxScore:    100,
			DueInDays:   7,
		}},
		Submissions: []FixtureSubmission{
			{
				Student:    "alice",
				Assignment: "quicksort",
				Content: "Quicksort is a divide-and-conquer algorithm. It has an average time complexity of O(n log n) " +
					"and worst-case complexity of O(n²). The algorithm works by selecting a pivot element and " +
					"partitioning the array around it.",
			},
			{
				Student:    "bob",
				Assignment: "quicksort",
				Content:    "Quicksort is fast. It sorts things quickly using recursion and pivot elements.",
			},
		},
	}
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	return f, nil
}

// Seed inserts the fixture through the service. Due dates are relative to now.
func (s *Service) Seed(ctx context.Context, f Fixture) error {
	now := s.now()
	students := make(map[string]string, len(f.Students))
	for _, fs := range f.Students {
		st, err := s.AddStudent(ctx, fs.Name, fs.Email)
		if err != nil {
			return fmt.Errorf("fixture: student %q: %w", fs.Key, err)
		}
		students[key(fs.Key, fs.Name)] = st.ID
	}
	assignments := make(map[string]string, len(f.Assignments))
	for _, fa := range f.Assignments {
		a, err := s.AddAssignment(ctx, fa.Title, fa.Description, fa.MaxScore, now.AddDate(0, 0, fa.DueInDays))
		if err != nil {
			return fmt.Errorf("fixture: assignment %q: %w", fa.Key, err)
		}
		assignments[key(fa.Key, fa.Title)] = a.ID
	}
	for i, fs := range f.Submissions {
		sid, ok := students[strings.TrimSpace(fs.Student)]
		if !ok {
			return fmt.Errorf("fixture: submission %d: unknown student %q: %w", i, fs.Student, ErrInvalidInput)
		}
		aid, ok := assignments[strings.TrimSpace(fs.Assignment)]
		if !ok {
			return fmt.Errorf("fixture: submission %d: unknown assignment %q: %w", i, fs.Assignment, ErrInvalidInput)
		}
		if _, err := s.AddSubmission(ctx, sid, aid, fs.Content); err != nil {
			return fmt.Errorf("fixture: submission %d: %w", i, err)
		}
	}
	return nil
}

// key falls back to the display name when a fixture entry has no key.
func key(k, fallback string) string {
	if k = strings.TrimSpace(k); k != "" {
		return k
	}
	return strings.TrimSpace(fallback)
}
