package courseRoutes

import (
	catalogControllers "aula/controllers/catalog"
	certificateControllers "aula/controllers/certificate"
	enrollmentControllers "aula/controllers/enrollment"
	feedbackControllers "aula/controllers/feedback"
	"aula/middleware"
	catalogValidators "aula/validators/catalog"
	enrollmentValidators "aula/validators/enrollment"
	feedbackValidators "aula/validators/feedback"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, catalogControllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, catalogValidators.CourseID(), catalogControllers.GetCourseDetails)

	// Progress tracking
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, enrollmentValidators.CourseID(), enrollmentControllers.GetCourseProgress)
	courseGroup.Post("/:id/recount", middleware.JWTMiddleware, enrollmentValidators.CourseID(), enrollmentControllers.RecountCourseProgress)

	// Course feedback
	courseGroup.Post("/:id/feedback", middleware.JWTMiddleware, enrollmentValidators.CourseID(), feedbackValidators.CreateFeedback(), feedbackControllers.CreateFeedback)

	// Activation code redemption (single entry point for both code kinds)
	app.Post("/enrollments/activate", middleware.JWTMiddleware, enrollmentValidators.Activate(), enrollmentControllers.ActivateEnrollment)

	// Watched-video toggle
	app.Post("/video-views", middleware.JWTMiddleware, enrollmentValidators.VideoToggle(), enrollmentControllers.MarkVideoSeen)
	app.Delete("/video-views", middleware.JWTMiddleware, enrollmentValidators.VideoToggle(), enrollmentControllers.UnmarkVideoSeen)

	// Enrollments with progress
	app.Get("/students/:id/courses", middleware.JWTMiddleware, enrollmentValidators.StudentID(), enrollmentControllers.GetStudentCourses)

	// Certificates
	app.Get("/user/certificates", middleware.JWTMiddleware, certificateControllers.GetUserCertificates)
}
