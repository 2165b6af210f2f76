package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-blog-backend/models"
)

// PostCreated được trả về sau khi tạo bài viết thành công
type PostCreated struct {
	Post models.Post
}

type PostInput struct {
	Title    string
	Body     string
	ImageURL *string
}

// ImageStore dọn ảnh của bài viết bị xóa
type ImageStore interface {
	Delete(publicURL string) error
}

type PostService struct {
	db     *gorm.DB
	images ImageStore
}

func NewPostService(db *gorm.DB, images ImageStore) *PostService {
	return &PostService{db: db, images: images}
}

func postSlug(title string, id uuid.UUID) string {
	base := slug.Make(title)
	suffix := id.String()[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, input PostInput) (models.Post, PostCreated, error) {
	db := s.db.WithContext(ctx)

	post := models.Post{
		ID:       uuid.New(),
		UserID:   authorID,
		Title:    input.Title,
		Body:     input.Body,
		ImageURL: input.ImageURL,
	}
	post.Slug = postSlug(post.Title, post.ID)

	if err := db.Create(&post).Error; err != nil {
		return models.Post{}, PostCreated{}, fmt.Errorf("create post: %w", err)
	}

	created, err := s.GetPost(ctx, post.ID)
	if err != nil {
		return models.Post{}, PostCreated{}, err
	}
	return created, PostCreated{Post: created}, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("User").First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}

// ListPosts phân trang, mới nhất trước
func (s *PostService) ListPosts(ctx context.Context, page, limit int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := db.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, input PostInput) (models.Post, error) {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err != nil {
		return models.Post{}, err
	}

	updates := map[string]interface{}{
		"title": input.Title,
		"body":  input.Body,
	}
	if input.Title != post.Title {
		updates["slug"] = postSlug(input.Title, post.ID)
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}

	if err := s.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).Updates(updates).Error; err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	return s.GetPost(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", post.ID).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	// Ảnh lỗi khi xóa không ảnh hưởng kết quả
	if s.images != nil && post.ImageURL != nil {
		if err := s.images.Delete(*post.ImageURL); err != nil {
			log.Printf("post %s: image cleanup failed: %v", post.ID, err)
		}
	}
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, actorID, postID uuid.UUID) (models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("load post: %w", err)
	}
	if post.UserID != actorID {
		return models.Post{}, ErrForbidden
	}
	return post, nil
}
