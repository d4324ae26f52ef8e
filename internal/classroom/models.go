package classroom

import (
	"time"

	"github.com/google/uuid"

	"github.com/Reaishma/Automated-grading-app/internal/grading"
)

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MaxScore    float64   `json:"max_score"`
	DueDate     time.Time `json:"due_date"`
}

// Submission is treated as an immutable value. Grading produces a new value
// through WithGrade which the store swaps in at the same ID.
type Submission struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	AssignmentID string     `json:"assignment_id"`
	Content      string     `json:"content"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Score        *float64   `json:"score"`    // nil until graded
	Feedback     *string    `json:"feedback"` // nil until graded
	GradedAt     *time.Time `json:"graded_at,omitempty"`
}

func NewStudent(name, email string) Student {
	return Student{ID: uuid.NewString(), Name: name, Email: email}
}

func NewAssignment(title, description string, maxScore float64, due time.Time) Assignment {
	return Assignment{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		MaxScore:    maxScore,
		DueDate:     due,
	}
}

func NewSubmission(studentID, assignmentID, content string, at time.Time) Submission {
	return Submission{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Content:      content,
		SubmittedAt:  at,
	}
}

// Graded reports whether score and feedback have been written.
func (s Submission) Graded() bool { return s.Score != nil && s.Feedback != nil }

// WithGrade returns a copy of s carrying the result. Score and feedback are
// always set together.
func (s Submission) WithGrade(r grading.Result, at time.Time) Submission {
	score, fb := r.Score, r.Feedback
	s.Score = &score
	s.Feedback = &fb
	s.GradedAt = &at
	return s
}
