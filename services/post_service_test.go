package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	deleted []string
	err     error
}

func (f *fakeImageStore) Delete(publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return f.err
}

func TestCreatePostReturnsEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	author := createUser(t, db, "john")

	post, evt, err := svc.CreatePost(context.Background(), author.ID, PostInput{Title: "Test Post", Body: "This is a test post."})
	require.NoError(t, err)

	assert.Equal(t, "Test Post", post.Title)
	assert.Equal(t, author.ID, post.UserID)
	assert.Equal(t, author.Name, post.User.Name)
	assert.Nil(t, post.ImageURL)
	assert.True(t, strings.HasPrefix(post.Slug, "test-post-"))
	assert.Equal(t, post.ID, evt.Post.ID)
	assert.Equal(t, post.Title, evt.Post.Title)
}

func TestUpdatePostByOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	ctx := context.Background()
	author := createUser(t, db, "john")

	post, _, err := svc.CreatePost(ctx, author.ID, PostInput{Title: "Original title", Body: "Original body."})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, author.ID, post.ID, PostInput{Title: "Updated title", Body: "Updated body."})
	require.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Equal(t, "Updated body.", updated.Body)
	assert.True(t, strings.HasPrefix(updated.Slug, "updated-title-"))
}

func TestUpdatePostByOtherUserIsForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	ctx := context.Background()
	john := createUser(t, db, "john")
	jack := createUser(t, db, "jack")

	post, _, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "Original title", Body: "Original body."})
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, jack.ID, post.ID, PostInput{Title: "Updated title", Body: "Updated body."})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original title", stored.Title)
	assert.Equal(t, "Original body.", stored.Body)
}

func TestUpdateMissingPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	_, err := svc.UpdatePost(context.Background(), uuid.New(), uuid.New(), PostInput{Title: "a", Body: "b"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	images := &fakeImageStore{}
	svc := NewPostService(db, images)
	ctx := context.Background()
	john := createUser(t, db, "john")
	jack := createUser(t, db, "jack")

	img := "https://proj.supabase.co/storage/v1/object/public/uploads/images/a.jpg"
	post, _, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "My title", Body: "My body.", ImageURL: &img})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, jack.ID, post.ID), ErrForbidden)
	assert.Empty(t, images.deleted)

	require.NoError(t, svc.DeletePost(ctx, john.ID, post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{img}, images.deleted)

	assert.ErrorIs(t, svc.DeletePost(ctx, john.ID, post.ID), ErrNotFound)
}

func TestDeletePostIgnoresImageCleanupError(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeImageStore{err: errors.New("storage down")})
	ctx := context.Background()
	john := createUser(t, db, "john")

	img := "https://example.com/a.jpg"
	post, _, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "t", Body: "b", ImageURL: &img})
	require.NoError(t, err)
	assert.NoError(t, svc.DeletePost(ctx, john.ID, post.ID))
}

func TestListPosts(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	ctx := context.Background()
	john := createUser(t, db, "john")
	for _, title := range []string{"a", "b", "c"} {
		_, _, err := svc.CreatePost(ctx, john.ID, PostInput{Title: title, Body: "x"})
		require.NoError(t, err)
	}

	posts, total, err := svc.ListPosts(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, posts, 2)

	posts, _, err = svc.ListPosts(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostSlug(t *testing.T) {
	id := uuid.MustParse("12345678-9abc-4def-8000-000000000000")
	assert.Equal(t, "hello-world-12345678", postSlug("Hello, World!", id))
	assert.Equal(t, "12345678", postSlug("!!!", id))
}
