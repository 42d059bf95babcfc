package store

import (
	"github.com/uta-tic/tutoring-api/internal/models"
)

// Well-known collection keys in the durable medium.
const (
	KeyUsers         = "users"
	KeySession       = "session"
	KeyCareers       = "careers"
	KeySubjects      = "subjects"
	KeySemesters     = "semesters"
	KeyAssignments   = "teacher_assignments"
	KeyRequests      = "tutoring_requests"
	KeyMessages      = "messages"
	KeyNotifications = "notifications"
	KeyPeriods       = "academic_periods"
	KeyDocuments     = "documents"
	KeyReports       = "report_jobs"
)

// Store bundles every named collection over one durable medium.
type Store struct {
	Users         *Collection[models.User]
	Sessions      *Collection[models.Session]
	Careers       *Collection[models.Career]
	Subjects      *Collection[models.Subject]
	Semesters     *Collection[models.Semester]
	Assignments   *Collection[models.TeacherAssignment]
	Requests      *Collection[models.TutoringRequest]
	Messages      *Collection[models.Message]
	Notifications *Collection[models.Notification]
	Periods       *Collection[models.AcademicPeriod]
	Documents     *Collection[models.Document]
	Reports       *Collection[models.ReportJob]
}

// New wires every collection to the medium. The observer may be nil.
func New(medium Medium, observe Observer) *Store {
	return &Store{
		Users:         NewCollection[models.User](KeyUsers, medium, observe),
		Sessions:      NewCollection[models.Session](KeySession, medium, observe),
		Careers:       NewCollection[models.Career](KeyCareers, medium, observe),
		Subjects:      NewCollection[models.Subject](KeySubjects, medium, observe),
		Semesters:     NewCollection[models.Semester](KeySemesters, medium, observe),
		Assignments:   NewCollection[models.TeacherAssignment](KeyAssignments, medium, observe),
		Requests:      NewCollection[models.TutoringRequest](KeyRequests, medium, observe),
		Messages:      NewCollection[models.Message](KeyMessages, medium, observe),
		Notifications: NewCollection[models.Notification](KeyNotifications, medium, observe),
		Periods:       NewCollection[models.AcademicPeriod](KeyPeriods, medium, observe),
		Documents:     NewCollection[models.Document](KeyDocuments, medium, observe),
		Reports:       NewCollection[models.ReportJob](KeyReports, medium, observe),
	}
}
