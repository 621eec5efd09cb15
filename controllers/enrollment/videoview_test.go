package controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	controllers "aula/controllers/enrollment"
	"aula/database"
	"aula/models"
	"aula/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toggleResult struct {
	Created      bool    `json:"created"`
	Removed      bool    `json:"removed"`
	WatchedCount int     `json:"watched_count"`
	TotalVideos  int64   `json:"total_videos"`
	Progreso     float64 `json:"progreso"`
}

func activeEnrollment(t *testing.T, userID, courseID uint, code string) models.Enrollment {
	t.Helper()
	now := time.Now()
	enrollment := models.Enrollment{
		UserID: userID, CourseID: courseID,
		ActivationCode: code, Status: models.EnrollmentActive, ActivatedAt: &now,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return enrollment
}

func TestMarkSeenIdempotent(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 3)
	activeEnrollment(t, student.ID, course.ID, "AB12CD34")

	auth := testutil.AuthHeader(t, student)
	body := map[string]uint{"video_id": videos[0].ID}

	var result toggleResult

	resp, env := testutil.DoJSON(t, app, "POST", "/video-views", auth, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Created)
	assert.Equal(t, 1, result.WatchedCount)

	// Marking again creates nothing and keeps the count
	resp, env = testutil.DoJSON(t, app, "POST", "/video-views", auth, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Created)
	assert.Equal(t, 1, result.WatchedCount)

	var count int64
	database.Database.Db.Model(&models.VideoView{}).
		Where("user_id = ? AND video_id = ?", student.ID, videos[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMarkSeenRequiresActiveEnrollment(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 1)

	auth := testutil.AuthHeader(t, student)
	body := map[string]uint{"video_id": videos[0].ID}

	// Not enrolled at all
	resp, _ := testutil.DoJSON(t, app, "POST", "/video-views", auth, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Pending enrollment is not enough
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		UserID: student.ID, CourseID: course.ID,
		ActivationCode: "AB12CD34", Status: models.EnrollmentPending,
	}).Error)
	resp, _ = testutil.DoJSON(t, app, "POST", "/video-views", auth, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Unknown video
	resp, _ = testutil.DoJSON(t, app, "POST", "/video-views", auth, map[string]uint{"video_id": 99999})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnmarkSeenLenient(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 2)
	activeEnrollment(t, student.ID, course.ID, "AB12CD34")

	auth := testutil.AuthHeader(t, student)
	body := map[string]uint{"video_id": videos[0].ID}

	var result toggleResult

	// Unmarking a never-marked video is a no-op, not an error
	resp, env := testutil.DoJSON(t, app, "DELETE", "/video-views", auth, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Removed)

	// Mark then unmark removes the record
	testutil.DoJSON(t, app, "POST", "/video-views", auth, body)
	resp, env = testutil.DoJSON(t, app, "DELETE", "/video-views", auth, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Removed)
	assert.Equal(t, 0, result.WatchedCount)

	var count int64
	database.Database.Db.Model(&models.VideoView{}).
		Where("user_id = ? AND video_id = ?", student.ID, videos[0].ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAccessStampedOnToggleAndDetail(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 2)
	enrollment := activeEnrollment(t, student.ID, course.ID, "AB12CD34")
	require.Nil(t, enrollment.LastAccessedAt)

	auth := testutil.AuthHeader(t, student)
	db := database.Database.Db

	// Marking a video counts as access
	resp, _ := testutil.DoJSON(t, app, "POST", "/video-views", auth, map[string]uint{"video_id": videos[0].ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var afterMark models.Enrollment
	require.NoError(t, db.Where("id = ?", enrollment.ID).First(&afterMark).Error)
	require.NotNil(t, afterMark.LastAccessedAt)

	// Backdate the stamp; reading the course detail moves it forward again
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Update("last_accessed_at", past).Error)

	resp, _ = testutil.DoJSON(t, app, "GET", "/course/"+strconv.Itoa(int(course.ID)), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var afterDetail models.Enrollment
	require.NoError(t, db.Where("id = ?", enrollment.ID).First(&afterDetail).Error)
	require.NotNil(t, afterDetail.LastAccessedAt)
	assert.True(t, afterDetail.LastAccessedAt.After(past))
}

func TestProgressScenario(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 3)
	activeEnrollment(t, student.ID, course.ID, "AB12CD34")

	auth := testutil.AuthHeader(t, student)
	var result toggleResult

	// Watch video 1 of 3 -> 33%
	_, env := testutil.DoJSON(t, app, "POST", "/video-views", auth, map[string]uint{"video_id": videos[0].ID})
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.WatchedCount)
	assert.InDelta(t, 100.0/3, result.Progreso, 0.01)

	// Watch video 2 -> 67%
	_, env = testutil.DoJSON(t, app, "POST", "/video-views", auth, map[string]uint{"video_id": videos[1].ID})
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 2, result.WatchedCount)
	assert.InDelta(t, 200.0/3, result.Progreso, 0.01)

	// Unwatch video 1 -> back to 33%
	_, env = testutil.DoJSON(t, app, "DELETE", "/video-views", auth, map[string]uint{"video_id": videos[0].ID})
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.WatchedCount)
	assert.InDelta(t, 100.0/3, result.Progreso, 0.01)

	// The cached counter matches the ledger count
	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 1, enrollment.WatchedCount)
}

func TestProgressZeroVideoCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, _ := testutil.CreateCourseWithVideos(t, "Empty course", 0)
	activeEnrollment(t, student.ID, course.ID, "AB12CD34")

	resp, env := testutil.DoJSON(t, app, "GET", "/course/"+strconv.Itoa(int(course.ID))+"/progress", testutil.AuthHeader(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		TotalVideos int64   `json:"total_videos"`
		Progreso    float64 `json:"progreso"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.EqualValues(t, 0, data.TotalVideos)
	assert.Equal(t, 0.0, data.Progreso)
}

func TestRecountRepairsDrift(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Ana", "ana@aula.test", "STUDENT")
	course, videos := testutil.CreateCourseWithVideos(t, "Go basics", 5)
	enrollment := activeEnrollment(t, student.ID, course.ID, "AB12CD34")

	db := database.Database.Db
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.VideoView{
			UserID: student.ID, VideoID: videos[i].ID, FirstSeenAt: now, LastSeenAt: now,
		}).Error)
	}

	// Corrupt the cached counter
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Update("watched_count", 42).Error)

	resp, env := testutil.DoJSON(t, app, "POST", "/course/"+strconv.Itoa(int(course.ID))+"/recount", testutil.AuthHeader(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		WatchedCount int     `json:"watched_count"`
		Progreso     float64 `json:"progreso"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.WatchedCount)
	assert.InDelta(t, 60.0, data.Progreso, 0.01)

	var repaired models.Enrollment
	require.NoError(t, db.Where("id = ?", enrollment.ID).First(&repaired).Error)
	assert.Equal(t, 3, repaired.WatchedCount)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, controllers.ProgressPercent(0, 0))
	assert.Equal(t, 0.0, controllers.ProgressPercent(5, 0))
	assert.Equal(t, 60.0, controllers.ProgressPercent(3, 5))
	assert.Equal(t, 100.0, controllers.ProgressPercent(5, 5))
}
