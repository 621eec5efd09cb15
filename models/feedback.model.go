package models

import "gorm.io/gorm"

// Feedback is a student's free-text note on a course
type Feedback struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Message   string `json:"message" gorm:"type:text"`
	Rating    int    `json:"rating" gorm:"default:0"` // 1-5, 0 when not given
	IsDeleted bool   `gorm:"default:false"`
}
