package feedbackControllers

import (
	"aula/database"
	"aula/middleware"
	"aula/models"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback stores a student's feedback on a course they are enrolled in
func CreateFeedback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedFeedback").(*struct {
		Message string `json:"message"`
		Rating  int    `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	feedback := models.Feedback{
		UserID:   userID,
		CourseID: uint(courseID),
		Message:  reqData.Message,
		Rating:   reqData.Rating,
	}

	if err := db.Create(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback saved successfully!", feedback)
}

// AdminListCourseFeedback lists all feedback left on a course
func AdminListCourseFeedback(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var feedbacks []models.Feedback
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&feedbacks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully!", fiber.Map{
		"feedback": feedbacks,
		"total":    len(feedbacks),
	})
}
