package classroom_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
	"github.com/Reaishma/Automated-grading-app/internal/grading"
	syncx "github.com/Reaishma/Automated-grading-app/internal/sync"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T, store classroom.Store) (*classroom.Service, *syncx.MemoryLog) {
	t.Helper()
	events := syncx.NewMemoryLog()
	svc := classroom.NewService(store, grading.NewEngine(),
		classroom.WithEvents(events),
		classroom.WithLogger(zap.NewNop()),
		classroom.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, events
}

func mustAssignment(t *testing.T, svc *classroom.Service, max float64) classroom.Assignment {
	t.Helper()
	a, err := svc.AddAssignment(context.Background(), "Algorithm Analysis", "Explain quicksort", max, fixedNow.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("add assignment: %v", err)
	}
	return a
}

func mustStudent(t *testing.T, svc *classroom.Service) classroom.Student {
	t.Helper()
	st, err := svc.AddStudent(context.Background(), "Test Student", "test@example.com")
	if err != nil {
		t.Fatalf("add student: %v", err)
	}
	return st
}

func TestGradeOne_WritesScoreAndFeedback(t *testing.T) {
	ctx := context.Background()
	svc, events := newService(t, classroom.NewInMemoryStore())
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 100)
	sub, err := svc.AddSubmission(ctx, st.ID, a.ID,
		"Bubble sort is a simple algorithm that repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.")
	if err != nil {
		t.Fatalf("add submission: %v", err)
	}
	if sub.Graded() {
		t.Fatal("new submission must be ungraded")
	}

	graded, err := svc.GradeOne(ctx, sub.ID)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if graded.ID != sub.ID {
		t.Errorf("grading must keep the identity: %s != %s", graded.ID, sub.ID)
	}
	if !graded.Graded() || *graded.Score <= 0 || *graded.Feedback == "" {
		t.Fatalf("expected score and feedback, got %+v", graded)
	}
	if graded.GradedAt == nil || !graded.GradedAt.Equal(fixedNow) {
		t.Errorf("graded_at = %v, want %v", graded.GradedAt, fixedNow)
	}

	stored, err := svc.Store().GetSubmission(ctx, sub.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.Graded() || *stored.Score != *graded.Score {
		t.Errorf("store not updated: %+v", stored)
	}

	evs, _ := events.List(ctx, 0, 10)
	if len(evs) != 1 || evs[0].Type != syncx.TypeSubmissionGraded || evs[0].Key != sub.ID {
		t.Errorf("expected one SubmissionGraded event, got %+v", evs)
	}
}

func TestGradeOne_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, classroom.NewInMemoryStore())
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 100)
	sub, _ := svc.AddSubmission(ctx, st.ID, a.ID, "A loop calls a function. The method will return an array.")

	first, err := svc.GradeOne(ctx, sub.ID)
	if err != nil {
		t.Fatalf("first grade: %v", err)
	}
	second, err := svc.GradeOne(ctx, sub.ID)
	if err != nil {
		t.Fatalf("second grade: %v", err)
	}
	if *first.Score != *second.Score || *first.Feedback != *second.Feedback {
		t.Fatalf("re-grading changed the result: %v/%q vs %v/%q",
			*first.Score, *first.Feedback, *second.Score, *second.Feedback)
	}
}

func TestGradeOne_NotFound(t *testing.T) {
	svc, _ := newService(t, classroom.NewInMemoryStore())
	_, err := svc.GradeOne(context.Background(), "missing")
	if !errors.Is(err, classroom.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGradeAt_OutOfRange(t *testing.T) {
	svc, _ := newService(t, classroom.NewInMemoryStore())
	for _, idx := range []int{-1, 0, 5} {
		if _, err := svc.GradeAt(context.Background(), idx); !errors.Is(err, classroom.ErrNotFound) {
			t.Errorf("index %d: expected ErrNotFound, got %v", idx, err)
		}
	}
}

func TestGradeOne_DanglingReferenceLeavesSubmissionUngraded(t *testing.T) {
	ctx := context.Background()
	store := classroom.NewInMemoryStore()
	svc, events := newService(t, store)
	orphan := classroom.NewSubmission("student-x", "no-such-assignment", "content", fixedNow)
	if err := store.AddSubmission(ctx, orphan); err != nil {
		t.Fatal(err)
	}

	_, err := svc.GradeOne(ctx, orphan.ID)
	if !errors.Is(err, classroom.ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	got, _ := store.GetSubmission(ctx, orphan.ID)
	if got.Score != nil || got.Feedback != nil {
		t.Errorf("dangling submission must stay ungraded, got %+v", got)
	}
	evs, _ := events.List(ctx, 0, 10)
	if len(evs) != 1 || evs[0].Type != syncx.TypeSubmissionGradeFailed {
		t.Errorf("expected one failure event, got %+v", evs)
	}
}

func TestGradeOne_InvalidMaxScore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, classroom.NewInMemoryStore())
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 0)
	sub, _ := svc.AddSubmission(ctx, st.ID, a.ID, "content")

	_, err := svc.GradeOne(ctx, sub.ID)
	if !errors.Is(err, grading.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	got, _ := svc.Store().GetSubmission(ctx, sub.ID)
	if got.Graded() {
		t.Errorf("submission must stay ungraded, got %+v", got)
	}
}

func TestGradeAll_IsolatesFailures(t *testing.T) {
	ctx := context.Background()
	store := classroom.NewInMemoryStore()
	svc, _ := newService(t, store)
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 100)

	orphan := classroom.NewSubmission(st.ID, "no-such-assignment", "orphaned answer", fixedNow)
	if err := store.AddSubmission(ctx, orphan); err != nil {
		t.Fatal(err)
	}
	valid, err := svc.AddSubmission(ctx, st.ID, a.ID, "The algorithm uses a loop.")
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.GradeAll(ctx)
	if err != nil {
		t.Fatalf("grade all: %v", err)
	}
	if res.Total != 2 || res.Graded != 1 || len(res.Failures) != 1 {
		t.Fatalf("unexpected batch result: %+v", res)
	}
	f := res.Failures[0]
	if f.Index != 0 || f.SubmissionID != orphan.ID || !errors.Is(f, classroom.ErrDanglingReference) {
		t.Errorf("unexpected failure: %+v", f)
	}

	subs, _ := store.ListSubmissions(ctx)
	if subs[0].Graded() {
		t.Errorf("orphan must stay ungraded: %+v", subs[0])
	}
	if !subs[1].Graded() || subs[1].ID != valid.ID {
		t.Errorf("valid submission must be graded: %+v", subs[1])
	}
}

func TestGradeAll_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, classroom.NewInMemoryStore())
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 100)
	for i := 0; i < 20; i++ {
		if _, err := svc.AddSubmission(ctx, st.ID, a.ID, strings.Repeat("function ", i+1)); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GradeAll(ctx); err != nil {
				t.Errorf("grade all: %v", err)
			}
		}()
	}
	wg.Wait()

	subs, _ := svc.Store().ListSubmissions(ctx)
	for _, s := range subs {
		if !s.Graded() {
			t.Fatalf("submission %s left ungraded", s.ID)
		}
	}
}

func TestEvaluate_DoesNotTouchStore(t *testing.T) {
	ctx := context.Background()
	svc, events := newService(t, classroom.NewInMemoryStore())
	a := classroom.NewAssignment("t", "d", 10, fixedNow)
	sub := classroom.NewSubmission("s", a.ID, "Bad answer.", fixedNow)

	res, err := svc.Evaluate(ctx, sub, a)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Score < 0 || res.Score > 10 || res.Feedback == "" {
		t.Errorf("unexpected result: %+v", res)
	}
	if subs, _ := svc.Store().ListSubmissions(ctx); len(subs) != 0 {
		t.Errorf("evaluate must not write, store has %d submissions", len(subs))
	}
	if evs, _ := events.List(ctx, 0, 10); len(evs) != 0 {
		t.Errorf("evaluate must not record events, got %d", len(evs))
	}
}

func TestAddSubmission_RejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, classroom.NewInMemoryStore())
	st := mustStudent(t, svc)
	a := mustAssignment(t, svc, 100)

	if _, err := svc.AddSubmission(ctx, "nobody", a.ID, "x"); !errors.Is(err, classroom.ErrInvalidInput) {
		t.Errorf("unknown student: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AddSubmission(ctx, st.ID, "nothing", "x"); !errors.Is(err, classroom.ErrInvalidInput) {
		t.Errorf("unknown assignment: expected ErrInvalidInput, got %v", err)
	}
}

func TestAddStudent_RequiresName(t *testing.T) {
	svc, _ := newService(t, classroom.NewInMemoryStore())
	if _, err := svc.AddStudent(context.Background(), "   ", "a@b.c"); !errors.Is(err, classroom.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOverview_CountsAndRecent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, classroom.NewInMemoryStore())
	if err := svc.Seed(ctx, classroom.SampleFixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.GradeAt(ctx, 0); err != nil {
		t.Fatalf("grade: %v", err)
	}

	ov, err := svc.Overview(ctx, 3)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Students != 3 || ov.Assignments != 1 || ov.Submissions != 2 || ov.Graded != 1 {
		t.Errorf("unexpected counts: %+v", ov)
	}
	if len(ov.Recent) != 2 || ov.Recent[0].Student.Name != "Alice Johnson" {
		t.Errorf("unexpected recent entries: %+v", ov.Recent)
	}
}

type countingStore struct {
	classroom.Store
	students, assignments int
}

func (c *countingStore) ListStudents(ctx context.Context) ([]classroom.Student, error) {
	c.students++
	return c.Store.ListStudents(ctx)
}

func (c *countingStore) ListAssignments(ctx context.Context) ([]classroom.Assignment, error) {
	c.assignments++
	return c.Store.ListAssignments(ctx)
}

func TestOverview_ListsEachCollectionOnce(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: classroom.NewInMemoryStore()}
	svc, _ := newService(t, store)
	if err := svc.Seed(ctx, classroom.SampleFixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store.students, store.assignments = 0, 0

	ov, err := svc.Overview(ctx, 3)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Students != 3 || ov.Assignments != 1 {
		t.Errorf("unexpected counts: %+v", ov)
	}
	if store.students != 1 || store.assignments != 1 {
		t.Errorf("expected one listing each, got students=%d assignments=%d", store.students, store.assignments)
	}
}
