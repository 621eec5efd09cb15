package adminRoutes

import (
	catalogControllers "aula/controllers/catalog"
	certificateControllers "aula/controllers/certificate"
	dashboardControllers "aula/controllers/dashboard"
	enrollmentControllers "aula/controllers/enrollment"
	feedbackControllers "aula/controllers/feedback"
	"aula/middleware"
	catalogValidators "aula/validators/catalog"
	certificateValidators "aula/validators/certificate"
	enrollmentValidators "aula/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin management routes
func SetupAdminRoutes(app *fiber.App) {
	// Enrollment ledger
	app.Post("/enrollments", middleware.JWTMiddleware, middleware.RequireAdmin, enrollmentValidators.AssignCourse(), enrollmentControllers.AssignCourse)
	app.Delete("/enrollments/:id", middleware.JWTMiddleware, middleware.RequireAdmin, enrollmentValidators.EnrollmentID(), enrollmentControllers.RemoveEnrollment)

	// Catalog management
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	adminGroup.Post("/category", catalogValidators.CreateCategory(), catalogControllers.AdminCreateCategory)

	adminGroup.Post("/course/create", catalogValidators.CreateCourse(), catalogControllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", catalogValidators.CourseID(), catalogValidators.UpdateCourse(), catalogControllers.AdminUpdateCourse)
	adminGroup.Delete("/course/:id", catalogValidators.CourseID(), catalogControllers.AdminDeleteCourse)
	adminGroup.Post("/course/:id/publish", catalogValidators.CourseID(), catalogControllers.AdminPublishCourse)

	adminGroup.Post("/course/:id/module", catalogValidators.CourseID(), catalogValidators.CreateModule(), catalogControllers.AdminCreateModule)
	adminGroup.Post("/module/:module_id/video", catalogValidators.ModuleID(), catalogValidators.CreateVideo(), catalogControllers.AdminCreateVideo)
	adminGroup.Delete("/video/:video_id", catalogValidators.VideoID(), catalogControllers.AdminDeleteVideo)

	// Feedback review
	adminGroup.Get("/course/:id/feedback", catalogValidators.CourseID(), feedbackControllers.AdminListCourseFeedback)

	// Certificate management
	adminGroup.Post("/certificates", certificateValidators.IssueCertificate(), certificateControllers.AdminIssueCertificate)
	adminGroup.Post("/certificates/:id/revoke", certificateValidators.CertificateID(), certificateControllers.AdminRevokeCertificate)

	// Dashboard
	adminGroup.Get("/dashboard/stats", dashboardControllers.AdminDashboardStats)
}
