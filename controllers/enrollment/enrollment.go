package controllers

import (
	"aula/catalog"
	"aula/database"
	"aula/middleware"
	"aula/models"
	"aula/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AssignCourse assigns a course to a student (admin only). The enrollment
// starts PENDING with a fresh single-use activation code which is also
// mailed to the student.
func AssignCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*struct {
		StudentID uint   `json:"student_id"`
		CourseID  uint   `json:"course_id"`
		Comment   string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check student exists
	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	// Check course exists
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if student is already assigned
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", reqData.StudentID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student already assigned to this course!", nil)
	}

	code, err := freshActivationCode(5)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate activation code!", nil)
	}

	enrollment := models.Enrollment{
		UserID:         reqData.StudentID,
		CourseID:       reqData.CourseID,
		ActivationCode: code,
		Status:         models.EnrollmentPending,
		Comment:        reqData.Comment,
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course!", nil)
	}
	tx.Commit()

	go func(name, email, title, code string) {
		if err := utils.SendActivationEmail(name, email, title, code); err != nil {
			log.Printf("Error sending activation email to %s: %v", email, err)
		}
	}(student.Name, student.Email, course.Title, code)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course assigned successfully!", enrollment)
}

// freshActivationCode generates an activation code not yet used by any
// enrollment, retrying on the rare collision.
func freshActivationCode(attempts int) (string, error) {
	db := database.Database.Db
	for i := 0; i < attempts; i++ {
		code := utils.GenerateActivationCode(utils.ActivationCodeLength)
		var count int64
		if err := db.Model(&models.Enrollment{}).Where("activation_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fiber.ErrInternalServerError
}

// ActivateEnrollment redeems an activation code for the authenticated
// student. Single entry point for both activation paths:
//
//  1. a per-assignment code, matched against the caller's own pending
//     enrollment (the lookup filters by student AND code, so a code that
//     belongs to another student reads as not found);
//  2. a course-level access code, which creates and activates the
//     enrollment in one step (self-service path).
func ActivateEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedActivation").(*struct {
		ActivationCode string `json:"activation_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	now := time.Now()

	// Path 1: per-assignment activation code
	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND activation_code = ?", userID, reqData.ActivationCode).First(&enrollment).Error; err == nil {
		if enrollment.Status == models.EnrollmentActive {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already activated!", nil)
		}
		enrollment.Status = models.EnrollmentActive
		enrollment.ActivatedAt = &now
		if err := db.Save(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course activated successfully!", enrollment)
	}

	// Path 2: course-level access code
	var course models.Course
	if err := db.Where("access_code = ? AND access_code <> '' AND is_deleted = ? AND is_published = ?",
		reqData.ActivationCode, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid activation code!", nil)
	}

	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&existing).Error; err == nil {
		if existing.Status == models.EnrollmentActive {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already activated!", nil)
		}
		existing.Status = models.EnrollmentActive
		existing.ActivatedAt = &now
		if err := db.Save(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course activated successfully!", existing)
	}

	code, err := freshActivationCode(5)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate course!", nil)
	}

	enrollment = models.Enrollment{
		UserID:         userID,
		CourseID:       course.ID,
		ActivationCode: code,
		Status:         models.EnrollmentActive,
		ActivatedAt:    &now,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course activated successfully!", enrollment)
}

// RemoveEnrollment hard-deletes an enrollment (admin only). The student's
// video-view history is deliberately left in place; a later re-assignment
// picks it up again on the first recount.
func RemoveEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := db.Unscoped().Delete(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment removed successfully!", nil)
}

// GetStudentCourses lists a student's enrollments with course info and the
// completion percentage. Students can read their own list, admins anyone's.
func GetStudentCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentID := c.Locals("studentID").(int)
	db := database.Database.Db

	var caller models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&caller).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if caller.ID != uint(studentID) && caller.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own courses!", nil)
	}

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", studentID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseTitle       string  `json:"course_title"`
		CourseDescription string  `json:"course_description"`
		TotalVideos       int64   `json:"total_videos"`
		Progreso          float64 `json:"progreso"`
	}

	lookup := catalog.NewLookup(db)
	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course models.Course
		if err := db.Where("id = ?", e.CourseID).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}

		total, err := lookup.VideoCount(e.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}

		result[i] = EnrollmentWithCourse{
			Enrollment:        e,
			CourseTitle:       course.Title,
			CourseDescription: course.Description,
			TotalVideos:       total,
			Progreso:          ProgressPercent(e.WatchedCount, total),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}
