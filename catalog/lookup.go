package catalog

import (
	"aula/models"

	"gorm.io/gorm"
)

// Lookup is the read-only view of the course catalog the enrollment and
// progress code depends on. It resolves the video -> module -> course chain
// and the per-course video total without the callers doing their own joins.
type Lookup interface {
	// CourseForVideo resolves the owning course of a video.
	CourseForVideo(videoID uint) (uint, error)
	// VideoCount returns the number of videos a course currently has.
	VideoCount(courseID uint) (int64, error)
}

type gormLookup struct {
	db *gorm.DB
}

// NewLookup returns a Lookup backed by the given database handle
func NewLookup(db *gorm.DB) Lookup {
	return &gormLookup{db: db}
}

func (l *gormLookup) CourseForVideo(videoID uint) (uint, error) {
	var video models.Video
	if err := l.db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return 0, err
	}

	var module models.Module
	if err := l.db.Where("id = ? AND is_deleted = ?", video.ModuleID, false).First(&module).Error; err != nil {
		return 0, err
	}

	return module.CourseID, nil
}

func (l *gormLookup) VideoCount(courseID uint) (int64, error) {
	var count int64
	err := l.db.Model(&models.Video{}).
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("modules.course_id = ? AND videos.is_deleted = ? AND modules.is_deleted = ?", courseID, false, false).
		Count(&count).Error
	return count, err
}
