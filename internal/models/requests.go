package models

// RegisterStudentRequest is the public self-registration payload. The shorter
// password floor from the legacy registration form is kept.
type RegisterStudentRequest struct {
	NationalID string `json:"national_id" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Career     string `json:"career" validate:"required"`
	Semester   string `json:"semester" validate:"required"`
	Phone      string `json:"phone,omitempty"`
}

// CreateUserRequest is the admin payload for creating any account. When the
// password is empty the national id is used as the initial password and the
// account is flagged for a forced change.
type CreateUserRequest struct {
	NationalID string `json:"national_id" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty"`
	Roles      []Role `json:"roles" validate:"required,min=1"`
	Career     string `json:"career,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateUserRequest is a partial profile update payload.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Roles     []Role  `json:"roles,omitempty"`
	Career    *string `json:"career,omitempty"`
	Semester  *string `json:"semester,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// CreateCareerRequest is the payload for registering an academic program.
type CreateCareerRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description,omitempty"`
}

// UpdateCareerRequest is a partial career update payload.
type UpdateCareerRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// CreateSemesterRequest is the payload for registering a term label.
type CreateSemesterRequest struct {
	Name    string `json:"name" validate:"required"`
	Ordinal int    `json:"ordinal" validate:"gte=0"`
}

// CreateSubjectRequest is the payload for registering a curriculum subject.
type CreateSubjectRequest struct {
	Code          string       `json:"code" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	CareerID      string       `json:"career_id" validate:"required"`
	SemesterID    string       `json:"semester_id" validate:"required"`
	Credits       *float64     `json:"credits,omitempty"`
	Hours         *float64     `json:"hours,omitempty"`
	Unit          AcademicUnit `json:"unit,omitempty"`
	Prerequisites []string     `json:"prerequisites,omitempty"`
}

// UpdateSubjectRequest is a partial subject update payload.
type UpdateSubjectRequest struct {
	Name          *string       `json:"name,omitempty"`
	SemesterID    *string       `json:"semester_id,omitempty"`
	Credits       *float64      `json:"credits,omitempty"`
	Hours         *float64      `json:"hours,omitempty"`
	Unit          *AcademicUnit `json:"unit,omitempty"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
	Active        *bool         `json:"active,omitempty"`
}

// ReviewSubjectRequest is the admin approval decision payload.
type ReviewSubjectRequest struct {
	Approve bool `json:"approve"`
}

// CreateAssignmentRequest is the payload for assigning a teacher to a subject
// in a semester.
type CreateAssignmentRequest struct {
	TeacherID  string `json:"teacher_id" validate:"required"`
	SubjectID  string `json:"subject_id" validate:"required"`
	SemesterID string `json:"semester_id" validate:"required"`
	CareerID   string `json:"career_id" validate:"required"`
}

// CreateTutoringRequestPayload is the student payload for requesting a
// session.
type CreateTutoringRequestPayload struct {
	TeacherID   string `json:"teacher_id" validate:"required"`
	SubjectID   string `json:"subject_id,omitempty"`
	SemesterID  string `json:"semester_id,omitempty"`
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
}

// RescheduleRequest carries a new date and time for an accepted session.
type RescheduleRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// RateRequest is the student payload closing out a finished session.
type RateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// SendMessageRequest is the chat payload scoped to one tutoring request.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreatePeriodRequest is the payload for registering an academic period.
type CreatePeriodRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Year      int    `json:"year" validate:"required"`
}

// CreateReportRequest is the payload queuing an asynchronous export.
type CreateReportRequest struct {
	Type   ReportType   `json:"type" validate:"required"`
	Format ReportFormat `json:"format" validate:"required"`
	Career string       `json:"career,omitempty"`
	Role   Role         `json:"role,omitempty"`
}

// BroadcastRequest is the payload for a role or career fan-out.
type BroadcastRequest struct {
	Message string `json:"message" validate:"required"`
	Role    Role   `json:"role,omitempty"`
	Career  string `json:"career,omitempty"`
}

// ImportUserRow is one row of a bulk user import.
type ImportUserRow struct {
	NationalID string `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Roles      []Role `json:"roles"`
	Career     string `json:"career,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ImportUsersRequest is the bulk user import payload.
type ImportUsersRequest struct {
	Users []ImportUserRow `json:"users" validate:"required,min=1"`
}

// ImportSubjectRow is one row of a bulk curriculum import.
type ImportSubjectRow struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	CareerCode    string   `json:"career_code"`
	Semester      string   `json:"semester"`
	Credits       *float64 `json:"credits,omitempty"`
	Hours         *float64 `json:"hours,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
}

// ImportSubjectsRequest is the bulk curriculum import payload.
type ImportSubjectsRequest struct {
	Subjects []ImportSubjectRow `json:"subjects" validate:"required,min=1"`
}

// ImportOutcome reports the per-row result of a bulk import.
type ImportOutcome struct {
	Row     int    `json:"row"`
	Key     string `json:"key"`
	Created bool   `json:"created"`
	Error   string `json:"error,omitempty"`
}

// ImportSummary aggregates a bulk import run.
type ImportSummary struct {
	Total    int             `json:"total"`
	Created  int             `json:"created"`
	Failed   int             `json:"failed"`
	Outcomes []ImportOutcome `json:"outcomes"`
}
