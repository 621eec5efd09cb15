package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's assignment to a course, its activation
// state and the cached watched-video counter.
//
// Status is PENDING until the activation code is redeemed, then ACTIVE.
// There is no transition back. ActivatedAt is null exactly while PENDING.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID       uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	ActivationCode string     `json:"activation_code" gorm:"uniqueIndex;size:8;not null"`
	Status         string     `json:"status" gorm:"default:'PENDING'"` // PENDING, ACTIVE
	WatchedCount   int        `json:"watched_count" gorm:"default:0"`  // cached, recomputed from video_views
	ActivatedAt    *time.Time `json:"activated_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
	Comment        string     `json:"comment"`
	User           User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course         Course     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

const (
	EnrollmentPending = "PENDING"
	EnrollmentActive  = "ACTIVE"
)
