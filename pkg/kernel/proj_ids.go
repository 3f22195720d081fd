package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

// ProcessingJobID identifies an async resume ingestion job, not a job posting
type ProcessingJobID string

func NewProcessingJobID(id string) ProcessingJobID { return ProcessingJobID(id) }
func (r ProcessingJobID) String() string           { return string(r) }
func (r ProcessingJobID) IsEmpty() bool            { return string(r) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (r ApplicationID) String() string         { return string(r) }
func (r ApplicationID) IsEmpty() bool          { return string(r) == "" }

type InterviewID string

func NewInterviewID(id string) InterviewID { return InterviewID(id) }
func (r InterviewID) String() string       { return string(r) }
func (r InterviewID) IsEmpty() bool        { return string(r) == "" }

type TrainingID string

func NewTrainingID(id string) TrainingID { return TrainingID(id) }
func (r TrainingID) String() string      { return string(r) }
func (r TrainingID) IsEmpty() bool       { return string(r) == "" }

type CourseID string

func NewCourseID(id string) CourseID { return CourseID(id) }
func (r CourseID) String() string    { return string(r) }
func (r CourseID) IsEmpty() bool     { return string(r) == "" }

type EnrollmentID string

func NewEnrollmentID(id string) EnrollmentID { return EnrollmentID(id) }
func (r EnrollmentID) String() string        { return string(r) }
func (r EnrollmentID) IsEmpty() bool         { return string(r) == "" }

type ExpenseID string

func NewExpenseID(id string) ExpenseID { return ExpenseID(id) }
func (r ExpenseID) String() string     { return string(r) }
func (r ExpenseID) IsEmpty() bool      { return string(r) == "" }

type ReviewID string

func NewReviewID(id string) ReviewID { return ReviewID(id) }
func (r ReviewID) String() string    { return string(r) }
func (r ReviewID) IsEmpty() bool     { return string(r) == "" }
