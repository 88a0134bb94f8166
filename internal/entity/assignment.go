package entity

import "time"

type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CourseID    uint       `gorm:"not null" json:"course_id"`
	Course      Course     `gorm:"foreignKey:CourseID" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Points      int        `gorm:"not null;default:100" json:"points"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
