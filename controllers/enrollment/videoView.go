package controllers

import (
	"aula/catalog"
	"aula/database"
	"aula/middleware"
	"aula/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MarkVideoSeen records that the authenticated student watched a video.
// Idempotent: marking an already-watched video refreshes last_seen_at and
// reports created=false without touching the progress counter.
func MarkVideoSeen(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(int)
	db := database.Database.Db
	lookup := catalog.NewLookup(db)

	courseID, err := lookup.CourseForVideo(uint(videoID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}
	if enrollment.Status != models.EnrollmentActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please activate this course first!", nil)
	}

	now := time.Now()
	created := false

	var view models.VideoView
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&view).Error; err == nil {
		view.LastSeenAt = now
		db.Save(&view)
	} else {
		view = models.VideoView{
			UserID:      userID,
			VideoID:     uint(videoID),
			FirstSeenAt: now,
			LastSeenAt:  now,
		}
		if err := db.Create(&view).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark video as seen!", nil)
		}
		created = true
	}

	watched := enrollment.WatchedCount
	if created {
		// Only an actual insert changes the count; a redundant mark skips
		// the recount entirely.
		if watched, err = Reconcile(db, userID, courseID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	touchLastAccessed(&enrollment, now)

	total, err := lookup.VideoCount(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video marked as seen!", fiber.Map{
		"created":       created,
		"watched_count": watched,
		"total_videos":  total,
		"progreso":      ProgressPercent(watched, total),
	})
}

// UnmarkVideoSeen removes the watched marker for a video. Idempotent and
// lenient: unmarking a never-marked video reports removed=false with a 200,
// never a 404.
func UnmarkVideoSeen(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(int)
	db := database.Database.Db
	lookup := catalog.NewLookup(db)

	courseID, err := lookup.CourseForVideo(uint(videoID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	removed := false
	watched := enrollment.WatchedCount

	var view models.VideoView
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&view).Error; err == nil {
		if err := db.Unscoped().Delete(&view).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unmark video!", nil)
		}
		removed = true
		if watched, err = Reconcile(db, userID, courseID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	touchLastAccessed(&enrollment, time.Now())

	total, err := lookup.VideoCount(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video unmarked!", fiber.Map{
		"removed":       removed,
		"watched_count": watched,
		"total_videos":  total,
		"progreso":      ProgressPercent(watched, total),
	})
}

// touchLastAccessed stamps the enrollment's last_accessed_at. Side effect
// only; errors are ignored.
func touchLastAccessed(enrollment *models.Enrollment, at time.Time) {
	database.Database.Db.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("last_accessed_at", at)
}
