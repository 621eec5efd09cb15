package certificateValidator

import (
	"aula/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Certificate codes carry a minimum length so hand-entered codes stay
// collision resistant.
const minCertificateCodeLength = 12

// IssueCertificate validates the admin issuance payload
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID       uint   `json:"student_id"`
			CourseID        uint   `json:"course_id"`
			CertificateCode string `json:"certificate_code"`
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

		// Code is optional; one gets generated when absent
		reqData.CertificateCode = strings.TrimSpace(reqData.CertificateCode)
		if reqData.CertificateCode != "" && len(reqData.CertificateCode) < minCertificateCodeLength {
			errors["certificate_code"] = "Certificate code must be at least 12 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// CertificateID validates the :id route parameter
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", id)
		return c.Next()
	}
}
