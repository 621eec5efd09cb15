package controllers

import (
	"aula/database"
	"aula/middleware"
	"aula/models"
	"aula/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminIssueCertificate issues a certificate for a student's course (admin
// only). Eligibility is the admin's call; this handler only enforces the
// uniqueness guards. Both checks run before the insert so the caller gets a
// specific conflict message instead of a bare constraint violation.
func AdminIssueCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCertificate").(*struct {
		StudentID       uint   `json:"student_id"`
		CourseID        uint   `json:"course_id"`
		CertificateCode string `json:"certificate_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", reqData.StudentID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not enrolled in this course!", nil)
	}

	// One certificate per (student, course)
	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", reqData.StudentID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued for this course!", nil)
	}

	code := reqData.CertificateCode
	if code == "" {
		code = utils.GenerateCertificateCode()
	}

	// Certificate codes are globally unique, even across students
	var collision models.Certificate
	if err := db.Where("certificate_code = ?", code).First(&collision).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate code already in use!", nil)
	}

	certificate := models.Certificate{
		UserID:          reqData.StudentID,
		CourseID:        reqData.CourseID,
		CertificateCode: code,
		Status:          models.CertificateActive,
		IssuedAt:        time.Now(),
	}

	if err := db.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// PDF rendering lives in an external service
	go utils.RequestCertificateRender(utils.RenderRequest{
		CertificateCode: certificate.CertificateCode,
		StudentName:     student.Name,
		CourseTitle:     course.Title,
		IssuedAt:        certificate.IssuedAt.Format(time.RFC3339),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}

// AdminRevokeCertificate marks an issued certificate as revoked
func AdminRevokeCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(int)
	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status == models.CertificateRevoked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already revoked!", nil)
	}

	certificate.Status = models.CertificateRevoked
	if err := db.Save(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", certificate)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		models.Certificate
		CourseTitle string `json:"course_title"`
	}

	var certificates []models.Certificate
	if err := db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course models.Course
		db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
