package dto

import "time"

type EnrollRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// EnrolledCourse is what a student sees in my-courses: the course joined
// with the instructor name and the enrollment date.
type EnrolledCourse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorID   uint      `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	EnrolledAt     time.Time `json:"enrolled_at"`
}

// TaughtCourse is what an instructor sees in my-courses: their own course
// with the count of active enrollments.
type TaughtCourse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	InstructorID     uint      `json:"instructor_id"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	EnrolledStudents int64     `json:"enrolled_students"`
}

// RosterEntry is one student on a course roster.
type RosterEntry struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
