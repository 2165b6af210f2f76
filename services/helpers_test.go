package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-blog-backend/config"
	"github.com/vnkhanh/social-blog-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDatabase(config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Name: name, Email: name + "-" + uuid.NewString()[:8] + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createPost(t *testing.T, db *gorm.DB, author models.User, title string) models.Post {
	t.Helper()
	p := models.Post{UserID: author.ID, Title: title, Body: title + " body"}
	p.Slug = uuid.NewString()
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countFavorites(t *testing.T, db *gorm.DB, kind models.TargetKind, targetID, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Favorite{}).
		Where("favorite_type = ? AND favorite_id = ? AND user_id = ?", kind, targetID, userID).
		Count(&n).Error)
	return n
}
