package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
)

type createStudentReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createAssignmentReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MaxScore    float64   `json:"max_score"`
	DueDate     time.Time `json:"due_date"`
}

type createSubmissionReq struct {
	StudentID    string `json:"student_id"`
	AssignmentID string `json:"assignment_id"`
	Content      string `json:"content"`
}

// GET /students
func ListStudentsHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Store().ListStudents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if out == nil {
			out = []classroom.Student{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /students
func CreateStudentHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStudentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		st, err := svc.AddStudent(r.Context(), req.Name, req.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, st)
	}
}

// GET /assignments
func ListAssignmentsHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Store().ListAssignments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if out == nil {
			out = []classroom.Assignment{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /assignments
func CreateAssignmentHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAssignmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		a, err := svc.AddAssignment(r.Context(), req.Title, req.Description, req.MaxScore, req.DueDate)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// GET /submissions
func ListSubmissionsHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Roster(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /submissions
func CreateSubmissionHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubmissionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		sub, err := svc.AddSubmission(r.Context(), strings.TrimSpace(req.StudentID), strings.TrimSpace(req.AssignmentID), req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sub)
	}
}

// GET /submissions/{submissionID}
func GetSubmissionHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "submissionID"))
		sub, err := svc.Store().GetSubmission(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

// GET /dashboard
func DashboardHandler(svc *classroom.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview(r.Context(), 3)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ov)
	}
}
