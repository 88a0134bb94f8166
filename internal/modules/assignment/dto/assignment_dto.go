package dto

import "time"

type CreateAssignmentRequest struct {
	CourseID    uint       `json:"course_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Points      int        `json:"points"`
}

// UpdateAssignmentRequest merges only what the client sent. Description is a
// pointer so an explicit empty string clears the stored value; Points keeps
// the original presence-by-truthiness rule, so an explicit 0 is ignored and
// the prior value kept.
type UpdateAssignmentRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Points      int        `json:"points"`
}
