package controllers

import (
	"aula/database"
	"aula/middleware"
	"aula/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for students
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Access codes are redeemed, never listed
	for i := range courses {
		courses[i].AccessCode = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourseDetails gets a published course with its modules and videos.
// Viewing a course counts as access: the caller's enrollment, if any, gets
// its last_accessed_at stamped.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	course.AccessCode = ""

	var modules []models.Module
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleWithVideos struct {
		models.Module
		Videos []models.Video `json:"videos"`
	}

	result := make([]ModuleWithVideos, len(modules))
	for i, mod := range modules {
		var videos []models.Video
		db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).Order("order_index asc").Find(&videos)
		result[i] = ModuleWithVideos{Module: mod, Videos: videos}
	}

	// Check if user is enrolled; record the access if so
	var enrollment models.Enrollment
	isEnrolled := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error == nil
	if isEnrolled {
		now := time.Now()
		db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Update("last_accessed_at", now)
		enrollment.LastAccessedAt = &now
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"modules":     result,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
