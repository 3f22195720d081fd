package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - HR
// ============================================================================

const (
	// Job scopes
	ScopeJobsAll     = "jobs:*"
	ScopeJobsRead    = "jobs:read"
	ScopeJobsWrite   = "jobs:write"
	ScopeJobsDelete  = "jobs:delete"
	ScopeJobsArchive = "jobs:archive" // Close and archive jobs

	// Resume scopes
	ScopeResumesAll    = "resumes:*"
	ScopeResumesRead   = "resumes:read"
	ScopeResumesWrite  = "resumes:write" // Upload and re-process
	ScopeResumesDelete = "resumes:delete"

	// Matching scopes
	ScopeMatchingRead = "matching:read"

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"
	ScopeApplicationsReview = "applications:review" // Move applications through the pipeline

	// Interview scopes
	ScopeInterviewsAll      = "interviews:*"
	ScopeInterviewsRead     = "interviews:read"
	ScopeInterviewsSchedule = "interviews:schedule"
	ScopeInterviewsConduct  = "interviews:conduct"

	// Coaching scopes
	ScopeCoachingUse = "coaching:use"

	// Training scopes
	ScopeTrainingsAll    = "trainings:*"
	ScopeTrainingsRead   = "trainings:read"
	ScopeTrainingsWrite  = "trainings:write"
	ScopeTrainingsEnroll = "trainings:enroll"

	// Expense scopes
	ScopeExpensesAll     = "expenses:*"
	ScopeExpensesRead    = "expenses:read"
	ScopeExpensesSubmit  = "expenses:submit"
	ScopeExpensesApprove = "expenses:approve" // Approve and reject
	ScopeExpensesReports = "expenses:reports"

	// Performance review scopes
	ScopeReviewsAll   = "reviews:*"
	ScopeReviewsRead  = "reviews:read"
	ScopeReviewsWrite = "reviews:write"

	// Notification scopes
	ScopeNotificationsRead  = "notifications:read"
	ScopeNotificationsWrite = "notifications:write"
)

// DomainScopeCategories groups scopes for display
var DomainScopeCategories = map[string][]string{
	"jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
		ScopeJobsArchive,
	},
	"resumes": {
		ScopeResumesAll,
		ScopeResumesRead,
		ScopeResumesWrite,
		ScopeResumesDelete,
		ScopeMatchingRead,
	},
	"applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
	},
	"interviews": {
		ScopeInterviewsAll,
		ScopeInterviewsRead,
		ScopeInterviewsSchedule,
		ScopeInterviewsConduct,
	},
	"coaching": {
		ScopeCoachingUse,
	},
	"trainings": {
		ScopeTrainingsAll,
		ScopeTrainingsRead,
		ScopeTrainingsWrite,
		ScopeTrainingsEnroll,
	},
	"expenses": {
		ScopeExpensesAll,
		ScopeExpensesRead,
		ScopeExpensesSubmit,
		ScopeExpensesApprove,
		ScopeExpensesReports,
	},
	"reviews": {
		ScopeReviewsAll,
		ScopeReviewsRead,
		ScopeReviewsWrite,
	},
	"notifications": {
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
	},
}

// DomainScopeDescriptions provides human-readable descriptions
var DomainScopeDescriptions = map[string]string{
	// Jobs
	ScopeJobsAll:     "Full access to job postings",
	ScopeJobsRead:    "View job postings",
	ScopeJobsWrite:   "Create and edit job postings",
	ScopeJobsDelete:  "Delete job postings",
	ScopeJobsArchive: "Close and archive job postings",

	// Resumes
	ScopeResumesAll:    "Full access to resumes",
	ScopeResumesRead:   "View resumes and processing jobs",
	ScopeResumesWrite:  "Upload resumes",
	ScopeResumesDelete: "Delete resumes",
	ScopeMatchingRead:  "View resume and job matches",

	// Applications
	ScopeApplicationsAll:    "Full access to applications",
	ScopeApplicationsRead:   "View applications",
	ScopeApplicationsWrite:  "Create applications",
	ScopeApplicationsReview: "Change application status",

	// Interviews
	ScopeInterviewsAll:      "Full access to interviews",
	ScopeInterviewsRead:     "View interviews",
	ScopeInterviewsSchedule: "Schedule and cancel interviews",
	ScopeInterviewsConduct:  "Record interview feedback",

	// Coaching
	ScopeCoachingUse: "Use the AI coaching tools",

	// Trainings
	ScopeTrainingsAll:    "Full access to trainings",
	ScopeTrainingsRead:   "View trainings and courses",
	ScopeTrainingsWrite:  "Create and edit trainings and courses",
	ScopeTrainingsEnroll: "Enroll in courses and report progress",

	// Expenses
	ScopeExpensesAll:     "Full access to expenses",
	ScopeExpensesRead:    "View expenses",
	ScopeExpensesSubmit:  "Submit and edit pending expenses",
	ScopeExpensesApprove: "Approve and reject expenses",
	ScopeExpensesReports: "View expense reports",

	// Reviews
	ScopeReviewsAll:   "Full access to performance reviews",
	ScopeReviewsRead:  "View performance reviews",
	ScopeReviewsWrite: "Write performance reviews",

	// Notifications
	ScopeNotificationsRead:  "View notifications",
	ScopeNotificationsWrite: "Send notifications",
}

// DomainScopeGroups are the scope sets of the seeded roles
var DomainScopeGroups = map[string][]string{
	"admin": {
		ScopeAll,
	},
	"hr": {
		ScopeJobsAll,
		ScopeResumesAll,
		ScopeMatchingRead,
		ScopeApplicationsAll,
		ScopeInterviewsAll,
		ScopeCoachingUse,
		ScopeTrainingsAll,
		ScopeExpensesAll,
		ScopeReviewsAll,
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
		ScopeUsersRead,
	},
	"manager": {
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeResumesRead,
		ScopeMatchingRead,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeInterviewsAll,
		ScopeTrainingsRead,
		ScopeExpensesRead,
		ScopeExpensesApprove,
		ScopeExpensesReports,
		ScopeReviewsAll,
		ScopeNotificationsRead,
		ScopeNotificationsWrite,
		ScopeUsersRead,
	},
	"employee": {
		ScopeJobsRead,
		ScopeResumesRead,
		ScopeResumesWrite,
		ScopeMatchingRead,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeInterviewsRead,
		ScopeCoachingUse,
		ScopeTrainingsRead,
		ScopeTrainingsEnroll,
		ScopeExpensesRead,
		ScopeExpensesSubmit,
		ScopeReviewsRead,
		ScopeReviewsWrite,
		ScopeNotificationsRead,
	},
	"candidate": {
		ScopeJobsRead,
		ScopeResumesRead,
		ScopeResumesWrite,
		ScopeMatchingRead,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeCoachingUse,
		ScopeNotificationsRead,
	},
}
