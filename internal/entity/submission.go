package entity

import "time"

// Submission is persisted for schema parity with the deployed database; no
// route exposes it yet.
type Submission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null" json:"assignment_id"`
	StudentID    uint      `gorm:"not null" json:"student_id"`
	Content      string    `gorm:"type:text" json:"content"`
	FileURL      string    `gorm:"type:text" json:"file_url"`
	Grade        *int      `json:"grade"`
	SubmittedAt  time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
