package classroom

import "context"

// Store is the only mutable surface of the app. Submissions are kept in
// insertion order; ListSubmissions and SubmissionAt follow that order.
type Store interface {
	AddStudent(ctx context.Context, s Student) error
	AddAssignment(ctx context.Context, a Assignment) error
	AddSubmission(ctx context.Context, s Submission) error

	GetStudent(ctx context.Context, id string) (Student, error)
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	GetSubmission(ctx context.Context, id string) (Submission, error)
	SubmissionAt(ctx context.Context, index int) (Submission, error)

	ListStudents(ctx context.Context) ([]Student, error)
	ListAssignments(ctx context.Context) ([]Assignment, error)
	ListSubmissions(ctx context.Context) ([]Submission, error)

	// ReplaceSubmission swaps the stored value with the same ID for s.
	ReplaceSubmission(ctx context.Context, s Submission) error
}
