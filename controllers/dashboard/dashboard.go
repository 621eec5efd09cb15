package controllers

import (
	"aula/database"
	"aula/middleware"
	"aula/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboardStats returns platform totals plus current-month activity
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalCourses, totalEnrollments, activeEnrollments, totalCertificates int64

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)
	db.Model(&models.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&totalCourses)
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentActive).Count(&activeEnrollments)
	db.Model(&models.Certificate{}).Where("status = ?", models.CertificateActive).Count(&totalCertificates)

	monthStart := now.BeginningOfMonth()

	var enrollmentsThisMonth, activationsThisMonth int64
	db.Model(&models.Enrollment{}).Where("created_at >= ?", monthStart).Count(&enrollmentsThisMonth)
	db.Model(&models.Enrollment{}).Where("activated_at >= ?", monthStart).Count(&activationsThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":         totalStudents,
		"published_courses":      totalCourses,
		"total_enrollments":      totalEnrollments,
		"active_enrollments":     activeEnrollments,
		"active_certificates":    totalCertificates,
		"enrollments_this_month": enrollmentsThisMonth,
		"activations_this_month": activationsThisMonth,
	})
}
