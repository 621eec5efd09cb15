package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aula/config"
	"aula/database"
	"aula/middleware"
	"aula/models"
	adminRoutes "aula/routers/adminRoutes"
	authRoutes "aula/routers/authRoutes"
	courseRoutes "aula/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Envelope mirrors the standard JSON response shape
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SetupApp wires a fresh in-memory database and a Fiber app with all routes.
// Each call gets its own database; the global handle points at it for the
// duration of the test.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	return app
}

// CreateUser inserts a user with the given role and a bcrypt password
func CreateUser(t *testing.T, name, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Role: role, Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

// AuthHeader returns the Bearer header value for a user
func AuthHeader(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

// CreateCourseWithVideos inserts a published course with one module holding
// the given number of videos.
func CreateCourseWithVideos(t *testing.T, title string, videoCount int) (models.Course, []models.Video) {
	t.Helper()
	db := database.Database.Db

	course := models.Course{Title: title, Description: "test course", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	module := models.Module{CourseID: course.ID, Title: title + " module"}
	require.NoError(t, db.Create(&module).Error)

	videos := make([]models.Video, videoCount)
	for i := 0; i < videoCount; i++ {
		videos[i] = models.Video{ModuleID: module.ID, Title: "lesson", VideoURL: "https://videos.test/v", OrderIndex: i}
		require.NoError(t, db.Create(&videos[i]).Error)
	}
	return course, videos
}

// DoJSON performs a JSON request against the app and decodes the envelope
func DoJSON(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (*http.Response, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}
