package classroom

import (
	"context"
	"fmt"
	"sync"
)

type memoryStore struct {
	mu          sync.RWMutex
	students    []Student
	assignments []Assignment
	submissions []Submission
	subIndex    map[string]int // submission id -> position
}

func NewInMemoryStore() Store {
	return &memoryStore{subIndex: map[string]int{}}
}

func (m *memoryStore) AddStudent(_ context.Context, s Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.students {
		if x.ID == s.ID {
			return fmt.Errorf("%w: duplicate student id %s", ErrInvalidInput, s.ID)
		}
	}
	m.students = append(m.students, s)
	return nil
}

func (m *memoryStore) AddAssignment(_ context.Context, a Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.assignments {
		if x.ID == a.ID {
			return fmt.Errorf("%w: duplicate assignment id %s", ErrInvalidInput, a.ID)
		}
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *memoryStore) AddSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subIndex[s.ID]; ok {
		return fmt.Errorf("%w: duplicate submission id %s", ErrInvalidInput, s.ID)
	}
	m.subIndex[s.ID] = len(m.submissions)
	m.submissions = append(m.submissions, s)
	return nil
}

func (m *memoryStore) GetStudent(_ context.Context, id string) (Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, fmt.Errorf("student %s: %w", id, ErrNotFound)
}

func (m *memoryStore) GetAssignment(_ context.Context, id string) (Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return Assignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.subIndex[id]
	if !ok {
		return Submission{}, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return m.submissions[i], nil
}

func (m *memoryStore) SubmissionAt(_ context.Context, index int) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.submissions) {
		return Submission{}, fmt.Errorf("submission #%d: %w", index, ErrNotFound)
	}
	return m.submissions[index], nil
}

func (m *memoryStore) ListStudents(_ context.Context) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Student(nil), m.students...), nil
}

func (m *memoryStore) ListAssignments(_ context.Context) ([]Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Assignment(nil), m.assignments...), nil
}

func (m *memoryStore) ListSubmissions(_ context.Context) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Submission(nil), m.submissions...), nil
}

func (m *memoryStore) ReplaceSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.subIndex[s.ID]
	if !ok {
		return fmt.Errorf("submission %s: %w", s.ID, ErrNotFound)
	}
	m.submissions[i] = s
	return nil
}
