package controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"aula/database"
	"aula/models"
	"aula/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrollActive(t *testing.T, userID, courseID uint, code string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		UserID: userID, CourseID: courseID,
		ActivationCode: code, Status: models.EnrollmentActive, ActivatedAt: &now,
	}).Error)
}

func TestIssueCertificate(t *testing.T) {
	app := testutil.SetupApp(t)
	admin := testutil.CreateUser(t, "Admin", "admin@aula.test", "ADMIN")
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, _ := testutil.CreateCourseWithVideos(t, "Go basics", 2)
	enrollActive(t, student.ID, course.ID, "AB12CD34")

	auth := testutil.AuthHeader(t, admin)
	body := map[string]interface{}{"student_id": student.ID, "course_id": course.ID}

	resp, env := testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cert struct {
		CertificateCode string `json:"certificate_code"`
		Status          string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cert))
	assert.Equal(t, models.CertificateActive, cert.Status)
	assert.GreaterOrEqual(t, len(cert.CertificateCode), 12)

	// One certificate per (student, course)
	resp, env = testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Certificate already issued for this course!", env.Message)

	var count int64
	database.Database.Db.Model(&models.Certificate{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestIssueCertificateCodeCollision(t *testing.T) {
	app := testutil.SetupApp(t)
	admin := testutil.CreateUser(t, "Admin", "admin@aula.test", "ADMIN")
	ana := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	bruno := testutil.CreateUser(t, "Bruno", "bruno@aula.test", "STUDENT")
	course, _ := testutil.CreateCourseWithVideos(t, "Go basics", 2)
	enrollActive(t, ana.ID, course.ID, "AB12CD34")
	enrollActive(t, bruno.ID, course.ID, "EF56GH78")

	auth := testutil.AuthHeader(t, admin)

	resp, _ := testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, map[string]interface{}{
		"student_id": ana.ID, "course_id": course.ID, "certificate_code": "CERT-2026-000001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Codes are globally unique, even across students
	resp, env := testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, map[string]interface{}{
		"student_id": bruno.ID, "course_id": course.ID, "certificate_code": "CERT-2026-000001",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Certificate code already in use!", env.Message)
}

func TestIssueCertificateValidation(t *testing.T) {
	app := testutil.SetupApp(t)
	admin := testutil.CreateUser(t, "Admin", "admin@aula.test", "ADMIN")
	auth := testutil.AuthHeader(t, admin)

	// Missing identifiers
	resp, _ := testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Short explicit code
	resp, _ = testutil.DoJSON(t, app, "POST", "/admin/certificates", auth, map[string]interface{}{
		"student_id": 1, "course_id": 1, "certificate_code": "SHORT",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRevokeCertificate(t *testing.T) {
	app := testutil.SetupApp(t)
	admin := testutil.CreateUser(t, "Admin", "admin@aula.test", "ADMIN")
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, _ := testutil.CreateCourseWithVideos(t, "Go basics", 1)
	enrollActive(t, student.ID, course.ID, "AB12CD34")

	cert := models.Certificate{
		UserID: student.ID, CourseID: course.ID,
		CertificateCode: "CERT-2026-000009", Status: models.CertificateActive, IssuedAt: time.Now(),
	}
	require.NoError(t, database.Database.Db.Create(&cert).Error)

	auth := testutil.AuthHeader(t, admin)
	path := "/admin/certificates/" + strconv.Itoa(int(cert.ID)) + "/revoke"

	resp, _ := testutil.DoJSON(t, app, "POST", path, auth, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var revoked models.Certificate
	require.NoError(t, database.Database.Db.Where("id = ?", cert.ID).First(&revoked).Error)
	assert.Equal(t, models.CertificateRevoked, revoked.Status)

	// Revoking twice conflicts
	resp, _ = testutil.DoJSON(t, app, "POST", path, auth, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetUserCertificates(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, _ := testutil.CreateCourseWithVideos(t, "Go basics", 1)
	enrollActive(t, student.ID, course.ID, "AB12CD34")

	require.NoError(t, database.Database.Db.Create(&models.Certificate{
		UserID: student.ID, CourseID: course.ID,
		CertificateCode: "CERT-2026-000010", Status: models.CertificateActive, IssuedAt: time.Now(),
	}).Error)

	resp, env := testutil.DoJSON(t, app, "GET", "/user/certificates", testutil.AuthHeader(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Certificates []struct {
			CertificateCode string `json:"certificate_code"`
			CourseTitle     string `json:"course_title"`
		} `json:"certificates"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "CERT-2026-000010", data.Certificates[0].CertificateCode)
	assert.Equal(t, "Go basics", data.Certificates[0].CourseTitle)
}
