package entity

import "time"

const (
	CourseActive   = "active"
	CourseInactive = "inactive"
)

// Course deletion is a soft delete: status flips to inactive and the row is
// retained. Children (assignments, announcements) are never cascaded.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	InstructorID uint      `gorm:"not null" json:"instructor_id"`
	Instructor   User      `gorm:"foreignKey:InstructorID" json:"-"`
	Status       string    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
