package rbac

const (
	PermStudentCreate    = "student:create"
	PermStudentView      = "student:view"
	PermAssignmentCreate = "assignment:create"
	PermAssignmentView   = "assignment:view"
	PermSubmissionCreate = "submission:create"
	PermSubmissionView   = "submission:view"
	PermSubmissionGrade  = "submission:grade"
	PermReportExport     = "report:export"
	PermDashboardView    = "dashboard:view"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	"instructor": {
		"student:*",
		"assignment:*",
		"submission:*",
		PermReportExport,
		PermDashboardView,
	},
	"assistant": {
		PermStudentView,
		PermAssignmentView,
		PermSubmissionView,
		PermSubmissionCreate,
		PermDashboardView,
	},
	"admin": {
		"*",
	},
}
