package controllers

import (
	"aula/catalog"
	"aula/database"
	"aula/middleware"
	"aula/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Reconcile recomputes the enrollment's watched_count from the view ledger
// and writes it back. The count is always rebuilt from a full join rather
// than incremented, so any prior drift in the cached counter heals on the
// next call.
func Reconcile(db *gorm.DB, userID, courseID uint) (int, error) {
	var watched int64
	err := db.Model(&models.VideoView{}).
		Joins("JOIN videos ON videos.id = video_views.video_id").
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("video_views.user_id = ? AND modules.course_id = ? AND videos.is_deleted = ? AND modules.is_deleted = ?",
			userID, courseID, false, false).
		Count(&watched).Error
	if err != nil {
		return 0, err
	}

	err = db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("watched_count", watched).Error
	return int(watched), err
}

// ProgressPercent converts a watched count into a percentage. A course with
// no videos reports 0, never a division error.
func ProgressPercent(watched int, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(watched) / float64(total) * 100
}

// GetCourseProgress returns the caller's progress in a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	total, err := catalog.NewLookup(db).VideoCount(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"total_videos":  total,
		"watched_count": enrollment.WatchedCount,
		"progreso":      ProgressPercent(enrollment.WatchedCount, total),
	})
}

// RecountCourseProgress forces a recount of the caller's watched videos for
// a course. Repair operation for counter drift; the regular toggle path
// already reconciles on every effective change.
func RecountCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	watched, err := Reconcile(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recount progress!", nil)
	}

	total, err := catalog.NewLookup(db).VideoCount(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recount progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recounted successfully!", fiber.Map{
		"watched_count": watched,
		"total_videos":  total,
		"progreso":      ProgressPercent(watched, total),
	})
}
