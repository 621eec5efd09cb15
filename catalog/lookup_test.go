package catalog_test

import (
	"testing"

	"aula/catalog"
	"aula/database"
	"aula/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func TestCourseForVideo(t *testing.T) {
	db := openTestDb(t)

	course := models.Course{Title: "Go basics", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	module := models.Module{CourseID: course.ID, Title: "Intro"}
	require.NoError(t, db.Create(&module).Error)
	video := models.Video{ModuleID: module.ID, Title: "Hello", VideoURL: "https://videos.test/v"}
	require.NoError(t, db.Create(&video).Error)

	lookup := catalog.NewLookup(db)

	courseID, err := lookup.CourseForVideo(video.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, courseID)

	_, err = lookup.CourseForVideo(99999)
	assert.Error(t, err)

	// A soft-deleted video no longer resolves
	require.NoError(t, db.Model(&video).Update("is_deleted", true).Error)
	_, err = lookup.CourseForVideo(video.ID)
	assert.Error(t, err)
}

func TestVideoCount(t *testing.T) {
	db := openTestDb(t)

	course := models.Course{Title: "Go basics", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	first := models.Module{CourseID: course.ID, Title: "Intro"}
	second := models.Module{CourseID: course.ID, Title: "Advanced"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Video{ModuleID: first.ID, Title: "a", VideoURL: "u"}).Error)
	}
	require.NoError(t, db.Create(&models.Video{ModuleID: second.ID, Title: "b", VideoURL: "u"}).Error)

	deleted := models.Video{ModuleID: second.ID, Title: "gone", VideoURL: "u", IsDeleted: true}
	require.NoError(t, db.Create(&deleted).Error)

	lookup := catalog.NewLookup(db)

	count, err := lookup.VideoCount(course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// Unknown course simply counts zero
	count, err = lookup.VideoCount(99999)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
