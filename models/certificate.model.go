package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion
type Certificate struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CourseID        uint      `json:"course_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CertificateCode string    `json:"certificate_code" gorm:"uniqueIndex;not null"`
	CertificateURL  string    `json:"certificate_url"`
	Status          string    `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, REVOKED
	IssuedAt        time.Time `json:"issued_at"`
}

const (
	CertificateActive  = "ACTIVE"
	CertificateRevoked = "REVOKED"
)
