package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/social-blog-backend/models"
)

func TestAddFavoritePost(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	author := createUser(t, db, "jack")
	post := createPost(t, db, author, "Hello")

	fav, err := svc.AddFavorite(ctx, user.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TargetPost, fav.FavoriteType)
	assert.Equal(t, post.ID, fav.FavoriteID)
	assert.Equal(t, user.ID, fav.UserID)
	assert.EqualValues(t, 1, countFavorites(t, db, models.TargetPost, post.ID, user.ID))
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	other := createUser(t, db, "jack")

	first, err := svc.AddFavorite(ctx, user.ID, models.TargetUser, other.ID)
	require.NoError(t, err)
	second, err := svc.AddFavorite(ctx, user.ID, models.TargetUser, other.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, countFavorites(t, db, models.TargetUser, other.ID, user.ID))
}

func TestAddFavoriteConcurrentYieldsOneRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	post := createPost(t, db, createUser(t, db, "jack"), "Race")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddFavorite(ctx, user.ID, models.TargetPost, post.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, countFavorites(t, db, models.TargetPost, post.ID, user.ID))
}

func TestAddFavoriteSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	user := createUser(t, db, "john")

	_, err := svc.AddFavorite(context.Background(), user.ID, models.TargetUser, user.ID)
	assert.ErrorIs(t, err, ErrSelfFavorite)
	assert.EqualValues(t, 0, countFavorites(t, db, models.TargetUser, user.ID, user.ID))
}

func TestAddFavoriteOwnPostIsAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	user := createUser(t, db, "john")
	post := createPost(t, db, user, "Mine")

	_, err := svc.AddFavorite(context.Background(), user.ID, models.TargetPost, post.ID)
	assert.NoError(t, err)
}

func TestAddFavoriteUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	user := createUser(t, db, "john")

	_, err := svc.AddFavorite(context.Background(), user.ID, models.TargetPost, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AddFavorite(context.Background(), user.ID, models.TargetUser, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AddFavorite(context.Background(), user.ID, models.TargetKind("comment"), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestRemoveFavorite(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	post := createPost(t, db, createUser(t, db, "jack"), "Hello")

	_, err := svc.AddFavorite(ctx, user.ID, models.TargetPost, post.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, models.TargetPost, post.ID))
	assert.EqualValues(t, 0, countFavorites(t, db, models.TargetPost, post.ID, user.ID))

	assert.ErrorIs(t, svc.RemoveFavorite(ctx, user.ID, models.TargetPost, post.ID), ErrNotFound)
}

func TestRemoveFavoriteOnlyTouchesActorRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	john := createUser(t, db, "john")
	jack := createUser(t, db, "jack")
	author := createUser(t, db, "author")

	_, err := svc.AddFavorite(ctx, john.ID, models.TargetUser, author.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveFavorite(ctx, jack.ID, models.TargetUser, author.ID), ErrNotFound)
	assert.EqualValues(t, 1, countFavorites(t, db, models.TargetUser, author.ID, john.ID))
}

func TestIsFavorited(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	post := createPost(t, db, createUser(t, db, "jack"), "Hello")

	ok, err := svc.IsFavorited(ctx, user.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.AddFavorite(ctx, user.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	ok, err = svc.IsFavorited(ctx, user.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListFavoritesPartitionsAndSkipsDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	user := createUser(t, db, "john")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	p1 := createPost(t, db, alice, "first")
	p2 := createPost(t, db, bob, "second")
	p3 := createPost(t, db, bob, "third")

	for _, step := range []struct {
		kind models.TargetKind
		id   uuid.UUID
	}{
		{models.TargetPost, p2.ID},
		{models.TargetUser, bob.ID},
		{models.TargetPost, p1.ID},
		{models.TargetPost, p3.ID},
		{models.TargetUser, alice.ID},
	} {
		_, err := svc.AddFavorite(ctx, user.ID, step.kind, step.id)
		require.NoError(t, err)
	}

	// target bị xóa sau khi favorite
	require.NoError(t, db.Delete(&models.Post{}, "id = ?", p1.ID).Error)
	require.NoError(t, db.Delete(&models.User{}, "id = ?", bob.ID).Error)

	list, err := svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, list.Posts, 2)
	assert.Equal(t, p2.ID, list.Posts[0].ID)
	assert.Equal(t, p3.ID, list.Posts[1].ID)
	require.Len(t, list.Users, 1)
	assert.Equal(t, alice.ID, list.Users[0].ID)
}

func TestListFavoritesEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	user := createUser(t, db, "john")

	list, err := svc.ListFavorites(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, list.Posts)
	assert.NotNil(t, list.Users)
	assert.Empty(t, list.Posts)
	assert.Empty(t, list.Users)
}

func TestFollowers(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	f1 := createUser(t, db, "f1")
	f2 := createUser(t, db, "f2")
	stranger := createUser(t, db, "stranger")
	post := createPost(t, db, author, "p")

	for _, u := range []models.User{f1, f2} {
		_, err := svc.AddFavorite(ctx, u.ID, models.TargetUser, author.ID)
		require.NoError(t, err)
	}
	// favorite bài viết không phải là follow
	_, err := svc.AddFavorite(ctx, stranger.ID, models.TargetPost, post.ID)
	require.NoError(t, err)

	followers, err := svc.Followers(ctx, author.ID)
	require.NoError(t, err)
	ids := []uuid.UUID{}
	for _, f := range followers {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{f1.ID, f2.ID}, ids)
}
