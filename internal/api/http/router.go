package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	auth "github.com/Reaishma/Automated-grading-app/internal/auth/middleware"
	"github.com/Reaishma/Automated-grading-app/internal/classroom"
	"github.com/Reaishma/Automated-grading-app/internal/grading"
	"github.com/Reaishma/Automated-grading-app/internal/rbac"
	"github.com/Reaishma/Automated-grading-app/internal/storage"
	syncx "github.com/Reaishma/Automated-grading-app/internal/sync"
)

type Deps struct {
	Service     *classroom.Service
	Grader      grading.Grader
	Auth        *auth.AuthService
	Log         *zap.Logger
	CORSOrigins []string

	// Archive keeps a copy of every export. Nil disables archiving.
	Archive storage.BlobStore

	// Events is the grading event log. Nil hides GET /events.
	Events syncx.Log

	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(r *http.Request) error
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, AccessLog(log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(d.Auth))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r); err != nil {
				http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require(rbac.PermStudentView)).Get("/students", ListStudentsHandler(d.Service))
		pr.With(rbac.Require(rbac.PermStudentCreate)).Post("/students", CreateStudentHandler(d.Service))

		pr.With(rbac.Require(rbac.PermAssignmentView)).Get("/assignments", ListAssignmentsHandler(d.Service))
		pr.With(rbac.Require(rbac.PermAssignmentCreate)).Post("/assignments", CreateAssignmentHandler(d.Service))

		pr.With(rbac.Require(rbac.PermSubmissionView)).Get("/submissions", ListSubmissionsHandler(d.Service))
		pr.With(rbac.Require(rbac.PermSubmissionCreate)).Post("/submissions", CreateSubmissionHandler(d.Service))
		pr.With(rbac.Require(rbac.PermSubmissionGrade)).Post("/submissions/grade", GradeAllHandler(d.Service))
		pr.With(rbac.Require(rbac.PermSubmissionView)).Get("/submissions/{submissionID}", GetSubmissionHandler(d.Service))
		pr.With(rbac.Require(rbac.PermSubmissionGrade)).Post("/submissions/{submissionID}/grade", GradeSubmissionHandler(d.Service))

		pr.With(rbac.RequireAny(rbac.PermSubmissionView, rbac.PermSubmissionGrade)).
			Post("/grading/preview", PreviewHandler(d.Grader))

		pr.With(rbac.Require(rbac.PermDashboardView)).Get("/dashboard", DashboardHandler(d.Service))
		pr.With(rbac.Require(rbac.PermReportExport)).Get("/reports/grades.xlsx", GradesXLSXHandler(d.Service, d.Archive, log))
		if d.Archive != nil {
			pr.With(rbac.Require(rbac.PermReportExport)).Get("/reports/archive", ListArchiveHandler(d.Archive))
			pr.With(rbac.Require(rbac.PermReportExport)).Get("/reports/archive/*", GetArchiveHandler(d.Archive))
		}
		if d.Events != nil {
			pr.With(rbac.RequireAll(rbac.PermSubmissionView, rbac.PermReportExport)).
				Get("/events", ListEventsHandler(d.Events))
		}
	})

	return r
}
