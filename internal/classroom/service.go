package classroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Reaishma/Automated-grading-app/internal/grading"
	syncx "github.com/Reaishma/Automated-grading-app/internal/sync"
)

type Clock func() time.Time

// Service runs the grading workflow over a Store. The mutex makes
// "read submission, grade, write back" atomic per submission so concurrent
// callers cannot lose updates.
type Service struct {
	store  Store
	grader grading.Grader
	events syncx.Appender
	log    *zap.Logger
	now    Clock

	mu sync.Mutex
}

type ServiceOption func(*Service)

func WithEvents(a syncx.Appender) ServiceOption { return func(s *Service) { s.events = a } }
func WithLogger(l *zap.Logger) ServiceOption    { return func(s *Service) { s.log = l } }
func WithClock(now Clock) ServiceOption         { return func(s *Service) { s.now = now } }

func NewService(store Store, grader grading.Grader, opts ...ServiceOption) *Service {
	s := &Service{store: store, grader: grader, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Store() Store { return s.store }

// BatchResult summarizes a GradeAll run.
type BatchResult struct {
	Total    int           `json:"total"`
	Graded   int           `json:"graded"`
	Failures []ItemFailure `json:"failures"`
}

// Evaluate grades a submission against an assignment without touching the store.
func (s *Service) Evaluate(ctx context.Context, sub Submission, a Assignment) (grading.Result, error) {
	return s.grader.Grade(ctx, grading.Item{Content: sub.Content, MaxScore: a.MaxScore})
}

// GradeOne grades the submission with the given ID and returns the stored
// graded value.
func (s *Service) GradeOne(ctx context.Context, submissionID string) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	return s.gradeLocked(ctx, sub)
}

// GradeAt grades the submission at a position in store order.
func (s *Service) GradeAt(ctx context.Context, index int) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, err := s.store.SubmissionAt(ctx, index)
	if err != nil {
		return Submission{}, err
	}
	return s.gradeLocked(ctx, sub)
}

// GradeAll grades every submission in store order. A failing item is
// recorded in the result and never stops the batch; the returned error is
// only set when the store cannot be listed.
func (s *Service) GradeAll(ctx context.Context) (BatchResult, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list submissions: %w", err)
	}
	res := BatchResult{Total: len(subs), Failures: []ItemFailure{}}
	for i, sub := range subs {
		if _, err := s.GradeOne(ctx, sub.ID); err != nil {
			res.Failures = append(res.Failures, ItemFailure{
				Index: i, SubmissionID: sub.ID, Err: err, Message: err.Error(),
			})
			continue
		}
		res.Graded++
	}
	s.log.Info("batch graded",
		zap.Int("total", res.Total),
		zap.Int("graded", res.Graded),
		zap.Int("failed", len(res.Failures)))
	return res, nil
}

func (s *Service) gradeLocked(ctx context.Context, sub Submission) (Submission, error) {
	a, err := s.store.GetAssignment(ctx, sub.AssignmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("submission %s references assignment %s: %w", sub.ID, sub.AssignmentID, ErrDanglingReference)
		}
		return Submission{}, s.fail(ctx, sub, err)
	}
	res, err := s.Evaluate(ctx, sub, a)
	if err != nil {
		return Submission{}, s.fail(ctx, sub, fmt.Errorf("assignment %s: %w", a.ID, err))
	}
	graded := sub.WithGrade(res, s.now())
	if err := s.store.ReplaceSubmission(ctx, graded); err != nil {
		return Submission{}, s.fail(ctx, sub, err)
	}
	s.log.Debug("submission graded",
		zap.String("submission_id", sub.ID),
		zap.String("assignment_id", a.ID),
		zap.Float64("score", res.Score))
	s.record(ctx, syncx.TypeSubmissionGraded, sub.ID, map[string]any{
		"assignment_id": a.ID,
		"score":         res.Score,
		"max_score":     a.MaxScore,
	})
	return graded, nil
}

func (s *Service) fail(ctx context.Context, sub Submission, err error) error {
	s.log.Warn("grading failed", zap.String("submission_id", sub.ID), zap.Error(err))
	s.record(ctx, syncx.TypeSubmissionGradeFailed, sub.ID, map[string]any{"error": err.Error()})
	return err
}

// record never fails the grading call; the event log is best effort.
func (s *Service) record(ctx context.Context, typ, key string, data map[string]any) {
	if s.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	if err := s.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		s.log.Warn("event log append", zap.String("type", typ), zap.Error(err))
	}
}

// ---- collaborator plumbing ----

func (s *Service) AddStudent(ctx context.Context, name, email string) (Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Student{}, fmt.Errorf("%w: student name required", ErrInvalidInput)
	}
	st := NewStudent(name, strings.TrimSpace(email))
	if err := s.store.AddStudent(ctx, st); err != nil {
		return Student{}, err
	}
	return st, nil
}

// AddAssignment does not check maxScore; a non-positive scale is reported
// when the assignment is graded.
func (s *Service) AddAssignment(ctx context.Context, title, description string, maxScore float64, due time.Time) (Assignment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Assignment{}, fmt.Errorf("%w: assignment title required", ErrInvalidInput)
	}
	a := NewAssignment(title, description, maxScore, due)
	if err := s.store.AddAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) AddSubmission(ctx context.Context, studentID, assignmentID, content string) (Submission, error) {
	if _, err := s.store.GetStudent(ctx, studentID); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.store.GetAssignment(ctx, assignmentID); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sub := NewSubmission(studentID, assignmentID, content, s.now())
	if err := s.store.AddSubmission(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Entry is a submission joined with its student and assignment. Student or
// Assignment is nil when the reference does not resolve.
type Entry struct {
	Submission Submission  `json:"submission"`
	Student    *Student    `json:"student,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// Roster joins every submission, in store order, with its references.
func (s *Service) Roster(ctx context.Context) ([]Entry, error) {
	entries, _, _, err := s.roster(ctx)
	return entries, err
}

// roster also returns the student and assignment counts it loaded.
func (s *Service) roster(ctx context.Context) ([]Entry, int, int, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	assignments, err := s.store.ListAssignments(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	byStudent := make(map[string]Student, len(students))
	for _, st := range students {
		byStudent[st.ID] = st
	}
	byAssignment := make(map[string]Assignment, len(assignments))
	for _, a := range assignments {
		byAssignment[a.ID] = a
	}
	out := make([]Entry, 0, len(subs))
	for _, sub := range subs {
		e := Entry{Submission: sub}
		if st, ok := byStudent[sub.StudentID]; ok {
			e.Student = &st
		}
		if a, ok := byAssignment[sub.AssignmentID]; ok {
			e.Assignment = &a
		}
		out = append(out, e)
	}
	return out, len(students), len(assignments), nil
}

type Overview struct {
	Students    int     `json:"students"`
	Assignments int     `json:"assignments"`
	Submissions int     `json:"submissions"`
	Graded      int     `json:"graded"`
	Recent      []Entry `json:"recent"`
}

// Overview returns dashboard counts and the first recent entries in store
// order whose references resolve.
func (s *Service) Overview(ctx context.Context, recent int) (Overview, error) {
	entries, students, assignments, err := s.roster(ctx)
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{
		Students:    students,
		Assignments: assignments,
		Submissions: len(entries),
		Recent:      []Entry{},
	}
	for _, e := range entries {
		if e.Submission.Graded() {
			ov.Graded++
		}
		if len(ov.Recent) < recent && e.Student != nil && e.Assignment != nil {
			ov.Recent = append(ov.Recent, e)
		}
	}
	return ov, nil
}
