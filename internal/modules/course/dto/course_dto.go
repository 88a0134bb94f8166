package dto

import "time"

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateCourseRequest distinguishes absent from empty only for the
// description: an explicit empty string clears it, while empty title/status
// leave the stored value untouched.
type UpdateCourseRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// CourseResponse is a course row joined with its instructor's display name.
type CourseResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorID   uint      `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
