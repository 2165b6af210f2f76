package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/social-blog-backend/models"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// FavoriteList là danh sách yêu thích đã tách theo loại
type FavoriteList struct {
	Posts []models.Post
	Users []models.User
}

// AddFavorite tạo favorite nếu chưa có, trả về bản ghi hiện có nếu đã tồn tại.
// Unique index (favorite_type, favorite_id, user_id) chặn trùng khi gọi đồng thời.
func (s *FavoriteService) AddFavorite(ctx context.Context, actorID uuid.UUID, kind models.TargetKind, targetID uuid.UUID) (models.Favorite, error) {
	if !kind.Valid() {
		return models.Favorite{}, ErrInvalidKind
	}
	if kind == models.TargetUser && targetID == actorID {
		return models.Favorite{}, ErrSelfFavorite
	}

	db := s.db.WithContext(ctx)
	if err := s.ensureTarget(db, kind, targetID); err != nil {
		return models.Favorite{}, err
	}

	fav := models.Favorite{FavoriteType: kind, FavoriteID: targetID, UserID: actorID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return models.Favorite{}, fmt.Errorf("create favorite: %w", err)
	}

	var stored models.Favorite
	err := db.Where("favorite_type = ? AND favorite_id = ? AND user_id = ?", kind, targetID, actorID).
		First(&stored).Error
	if err != nil {
		return models.Favorite{}, fmt.Errorf("load favorite: %w", err)
	}
	return stored, nil
}

// RemoveFavorite xóa favorite của actor; ErrNotFound nếu chưa từng favorite
func (s *FavoriteService) RemoveFavorite(ctx context.Context, actorID uuid.UUID, kind models.TargetKind, targetID uuid.UUID) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}

	result := s.db.WithContext(ctx).
		Where("favorite_type = ? AND favorite_id = ? AND user_id = ?", kind, targetID, actorID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, actorID uuid.UUID, kind models.TargetKind, targetID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("favorite_type = ? AND favorite_id = ? AND user_id = ?", kind, targetID, actorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFavorites trả về các target còn tồn tại, giữ thứ tự favorite trong từng nhóm
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) (FavoriteList, error) {
	db := s.db.WithContext(ctx)

	var favorites []models.Favorite
	if err := db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&favorites).Error; err != nil {
		return FavoriteList{}, fmt.Errorf("fetch favorites: %w", err)
	}

	var postIDs, userIDs []uuid.UUID
	for _, f := range favorites {
		switch f.FavoriteType {
		case models.TargetPost:
			postIDs = append(postIDs, f.FavoriteID)
		case models.TargetUser:
			userIDs = append(userIDs, f.FavoriteID)
		}
	}

	posts := map[uuid.UUID]models.Post{}
	if len(postIDs) > 0 {
		var found []models.Post
		if err := db.Preload("User").Where("id IN ?", postIDs).Find(&found).Error; err != nil {
			return FavoriteList{}, fmt.Errorf("resolve favorite posts: %w", err)
		}
		for _, p := range found {
			posts[p.ID] = p
		}
	}

	users := map[uuid.UUID]models.User{}
	if len(userIDs) > 0 {
		var found []models.User
		if err := db.Where("id IN ?", userIDs).Find(&found).Error; err != nil {
			return FavoriteList{}, fmt.Errorf("resolve favorite users: %w", err)
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	list := FavoriteList{Posts: []models.Post{}, Users: []models.User{}}
	for _, f := range favorites {
		switch f.FavoriteType {
		case models.TargetPost:
			if p, ok := posts[f.FavoriteID]; ok {
				list.Posts = append(list.Posts, p)
			}
		case models.TargetUser:
			if u, ok := users[f.FavoriteID]; ok {
				list.Users = append(list.Users, u)
			}
		}
	}
	return list, nil
}

// Followers là những user đã favorite authorID
func (s *FavoriteService) Followers(ctx context.Context, authorID uuid.UUID) ([]models.User, error) {
	db := s.db.WithContext(ctx)

	followerIDs := db.Model(&models.Favorite{}).
		Select("user_id").
		Where("favorite_type = ? AND favorite_id = ?", models.TargetUser, authorID)

	var followers []models.User
	if err := db.Where("id IN (?)", followerIDs).Order("created_at ASC").Find(&followers).Error; err != nil {
		return nil, fmt.Errorf("fetch followers: %w", err)
	}
	return followers, nil
}

func (s *FavoriteService) ensureTarget(db *gorm.DB, kind models.TargetKind, targetID uuid.UUID) error {
	var model interface{}
	switch kind {
	case models.TargetPost:
		model = &models.Post{}
	case models.TargetUser:
		model = &models.User{}
	}

	err := db.Select("id").First(model, "id = ?", targetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
