package entity

import "time"

const (
	EnrollmentActive    = "active"
	EnrollmentCancelled = "cancelled"
)

// Enrollment is the student/course join row. The composite unique index
// allows at most one row per pair ever: cancellation keeps the row, so a
// re-enroll attempt hits the constraint and fails as a conflict.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`
	Status     string    `gorm:"size:20;not null;default:active" json:"status"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
}
