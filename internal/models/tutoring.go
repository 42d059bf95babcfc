package models

import "time"

// RequestStatus is the canonical lifecycle state of a tutoring request. The
// legacy system mixed a capitalized initial state with lowercase states; all
// creation paths here use the single lowercase enum.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestFinalized RequestStatus = "finalized"
)

// ValidRequestStatus reports whether the tag is a known lifecycle state.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestFinalized:
		return true
	}
	return false
}

// TutoringRequest is a scheduled session request between a student and a
// teacher around a subject/topic. Rating is set only by the student once the
// session was accepted; callers setting a rating must pass the finalized
// status in the same update.
type TutoringRequest struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	TeacherID   string        `json:"teacher_id"`
	SubjectID   string        `json:"subject_id,omitempty"`
	SemesterID  string        `json:"semester_id,omitempty"`
	Topic       string        `json:"topic"`
	Description string        `json:"description,omitempty"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Status      RequestStatus `json:"status"`
	Rating      *int          `json:"rating,omitempty"`
	Comment     string        `json:"comment,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Key returns the collection key for the record.
func (t TutoringRequest) Key() string { return t.ID }

// TutoringRequestUpdate carries a partial merge for a tutoring request.
// Nil fields are left untouched.
type TutoringRequestUpdate struct {
	TeacherID   *string        `json:"teacher_id,omitempty"`
	SubjectID   *string        `json:"subject_id,omitempty"`
	SemesterID  *string        `json:"semester_id,omitempty"`
	Topic       *string        `json:"topic,omitempty"`
	Description *string        `json:"description,omitempty"`
	Date        *string        `json:"date,omitempty"`
	Time        *string        `json:"time,omitempty"`
	Status      *RequestStatus `json:"status,omitempty"`
	Rating      *int           `json:"rating,omitempty"`
	Comment     *string        `json:"comment,omitempty"`
}

// TutoringRequestDetail enriches a request with resolved display names.
// Dangling references resolve to "Unknown" rather than failing.
type TutoringRequestDetail struct {
	TutoringRequest
	StudentName string `json:"student_name"`
	TeacherName string `json:"teacher_name"`
	SubjectName string `json:"subject_name,omitempty"`
}
