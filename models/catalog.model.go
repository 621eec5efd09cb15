package models

import "gorm.io/gorm"

// Category groups courses for the catalog listing
type Category struct {
	gorm.Model
	Name      string `json:"name" gorm:"unique;not null"`
	IsDeleted bool   `gorm:"default:false"`
}

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	CategoryID  *uint  `json:"category_id" gorm:"index"`
	AccessCode  string `json:"access_code,omitempty" gorm:"index"` // optional course-wide code for self-service enrollment
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Module represents a section within a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
}

// Video represents a single lesson video inside a module
type Video struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted       bool   `gorm:"default:false"`
}
