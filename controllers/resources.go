package controllers

import (
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/social-blog-backend/models"
	"github.com/vnkhanh/social-blog-backend/services"
)

type UserResource struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type PostResource struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Body      string        `json:"body"`
	ImageURL  *string       `json:"image_url"`
	User      *UserResource `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type FavoriteResource struct {
	Posts []PostResource `json:"posts"`
	Users []UserResource `json:"users"`
}

func NewUserResource(u models.User) UserResource {
	return UserResource{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func NewPostResource(p models.Post) PostResource {
	res := PostResource{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	// tác giả có thể đã bị xóa
	if p.User.ID != uuid.Nil {
		u := NewUserResource(p.User)
		res.User = &u
	}
	return res
}

func NewPostResources(posts []models.Post) []PostResource {
	out := make([]PostResource, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResource(p))
	}
	return out
}

func NewFavoriteResource(list services.FavoriteList) FavoriteResource {
	res := FavoriteResource{
		Posts: NewPostResources(list.Posts),
		Users: make([]UserResource, 0, len(list.Users)),
	}
	for _, u := range list.Users {
		res.Users = append(res.Users, NewUserResource(u))
	}
	return res
}
