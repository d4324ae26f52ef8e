package classroom

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLStore keeps records in the tables created by db.Open. Positional "$n"
// placeholders work on both the sqlite and pgx drivers.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) AddStudent(ctx context.Context, st Student) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id,name,email) VALUES ($1,$2,$3)`,
		st.ID, st.Name, st.Email)
	return insertErr("student", st.ID, err)
}

func (s *SQLStore) AddAssignment(ctx context.Context, a Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id,title,description,max_score,due_date) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.Title, a.Description, a.MaxScore, a.DueDate.UnixMilli())
	return insertErr("assignment", a.ID, err)
}

func (s *SQLStore) AddSubmission(ctx context.Context, sub Submission) error {
	score, feedback, gradedAt := gradeColumns(sub)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id,student_id,assignment_id,content,submitted_at,score,feedback,graded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sub.ID, sub.StudentID, sub.AssignmentID, sub.Content, sub.SubmittedAt.UnixMilli(),
		score, feedback, gradedAt)
	return insertErr("submission", sub.ID, err)
}

func (s *SQLStore) GetStudent(ctx context.Context, id string) (Student, error) {
	var st Student
	err := s.db.QueryRowContext(ctx, `SELECT id,name,email FROM students WHERE id=$1`, id).
		Scan(&st.ID, &st.Name, &st.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return st, err
}

func (s *SQLStore) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	a, err := scanAssignment(s.db.QueryRowContext(ctx,
		`SELECT id,title,description,max_score,due_date FROM assignments WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Assignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return a, err
}

const submissionCols = `id,student_id,assignment_id,content,submitted_at,score,feedback,graded_at`

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	sub, err := scanSubmission(s.db.QueryRowContext(ctx,
		`SELECT `+submissionCols+` FROM submissions WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return sub, err
}

func (s *SQLStore) SubmissionAt(ctx context.Context, index int) (Submission, error) {
	if index < 0 {
		return Submission{}, fmt.Errorf("submission #%d: %w", index, ErrNotFound)
	}
	sub, err := scanSubmission(s.db.QueryRowContext(ctx,
		`SELECT `+submissionCols+` FROM submissions ORDER BY seq LIMIT 1 OFFSET $1`, index))
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("submission #%d: %w", index, ErrNotFound)
	}
	return sub, err
}

func (s *SQLStore) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,email FROM students ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListAssignments(ctx context.Context) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,description,max_score,due_date FROM assignments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+submissionCols+` FROM submissions ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ReplaceSubmission rewrites the whole row except its position.
func (s *SQLStore) ReplaceSubmission(ctx context.Context, sub Submission) error {
	score, feedback, gradedAt := gradeColumns(sub)
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET student_id=$1, assignment_id=$2, content=$3, submitted_at=$4,
		score=$5, feedback=$6, graded_at=$7 WHERE id=$8`,
		sub.StudentID, sub.AssignmentID, sub.Content, sub.SubmittedAt.UnixMilli(),
		score, feedback, gradedAt, sub.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("submission %s: %w", sub.ID, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(r rowScanner) (Assignment, error) {
	var a Assignment
	var due int64
	if err := r.Scan(&a.ID, &a.Title, &a.Description, &a.MaxScore, &due); err != nil {
		return Assignment{}, err
	}
	a.DueDate = time.UnixMilli(due).UTC()
	return a, nil
}

func scanSubmission(r rowScanner) (Submission, error) {
	var sub Submission
	var submittedAt int64
	var score sql.NullFloat64
	var feedback sql.NullString
	var gradedAt sql.NullInt64
	if err := r.Scan(&sub.ID, &sub.StudentID, &sub.AssignmentID, &sub.Content, &submittedAt,
		&score, &feedback, &gradedAt); err != nil {
		return Submission{}, err
	}
	sub.SubmittedAt = time.UnixMilli(submittedAt).UTC()
	// a half-written row is read back as ungraded
	if score.Valid && feedback.Valid {
		sub.Score = &score.Float64
		sub.Feedback = &feedback.String
		if gradedAt.Valid {
			t := time.UnixMilli(gradedAt.Int64).UTC()
			sub.GradedAt = &t
		}
	}
	return sub, nil
}

func gradeColumns(sub Submission) (score sql.NullFloat64, feedback sql.NullString, gradedAt sql.NullInt64) {
	if !sub.Graded() {
		return
	}
	score = sql.NullFloat64{Float64: *sub.Score, Valid: true}
	feedback = sql.NullString{String: *sub.Feedback, Valid: true}
	if sub.GradedAt != nil {
		gradedAt = sql.NullInt64{Int64: sub.GradedAt.UnixMilli(), Valid: true}
	}
	return
}

// insertErr reports a duplicate id as ErrInvalidInput, matching the memory store.
func insertErr(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: duplicate %s id %s", ErrInvalidInput, kind, id)
	}
	return err
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}
	return false
}
