package enrollmentValidator

import (
	"aula/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AssignCourse validates the admin assignment payload
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID uint   `json:"student_id"`
			CourseID  uint   `json:"course_id"`
			Comment   string `json:"comment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.StudentID == 0 {
			errors["student_id"] = "Student ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// Activate validates the activation-code payload
func Activate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ActivationCode string `json:"activation_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.ActivationCode = strings.TrimSpace(reqData.ActivationCode)

		errors := make(map[string]string)

		if reqData.ActivationCode == "" {
			errors["activation_code"] = "Activation code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedActivation", reqData)
		return c.Next()
	}
}

// VideoToggle validates the mark/unmark payload
func VideoToggle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoID uint `json:"video_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.VideoID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"video_id": "Video ID is required!",
			})
		}

		c.Locals("videoID", int(reqData.VideoID))
		return c.Next()
	}
}

// EnrollmentID validates the :id route parameter
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// StudentID validates the :id route parameter on student-scoped routes
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("studentID", id)
		return c.Next()
	}
}

// CourseID validates the :id route parameter on course-scoped routes
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}
