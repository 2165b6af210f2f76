package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/social-blog-backend/models"
	"github.com/vnkhanh/social-blog-backend/services"
)

func TestNewPostResourceWithoutAuthor(t *testing.T) {
	p := models.Post{ID: uuid.New(), Title: "t", Body: "b"}
	res := NewPostResource(p)
	assert.Nil(t, res.User)
	assert.Nil(t, res.ImageURL)

	p.User = models.User{ID: uuid.New(), Name: "alice", Password: "secret"}
	res = NewPostResource(p)
	require.NotNil(t, res.User)
	assert.Equal(t, "alice", res.User.Name)
}

func TestNewFavoriteResourceNeverNil(t *testing.T) {
	res := NewFavoriteResource(services.FavoriteList{})
	assert.NotNil(t, res.Posts)
	assert.NotNil(t, res.Users)
}
