package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-blog-backend/services"
)

type PostRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Body     string  `json:"body" binding:"required"`
	ImageURL *string `json:"image_url" binding:"omitempty,url,max=500"`
}

func (r PostRequest) input() services.PostInput {
	return services.PostInput{Title: r.Title, Body: r.Body, ImageURL: r.ImageURL}
}

// PostCreatedPublisher nhận sự kiện sau khi tạo bài viết (services.Dispatcher)
type PostCreatedPublisher interface {
	Publish(ctx context.Context, evt services.PostCreated)
}

type PostController struct {
	Posts     *services.PostService
	Publisher PostCreatedPublisher
}

func NewPostController(posts *services.PostService, publisher PostCreatedPublisher) *PostController {
	return &PostController{Posts: posts, Publisher: publisher}
}

// GET /posts?page=&limit=
func (pc *PostController) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, total, err := pc.Posts.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err, "fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": NewPostResources(posts),
		"meta": gin.H{"page": page, "limit": limit, "total": total},
	})
}

// GET /posts/:post
func (pc *PostController) Show(c *gin.Context) {
	postID, ok := paramID(c, "post")
	if !ok {
		return
	}
	post, err := pc.Posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err, "fetch post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": NewPostResource(post)})
}

// POST /posts
func (pc *PostController) Store(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post, evt, err := pc.Posts.CreatePost(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err, "create post")
		return
	}

	// Bài viết đã lưu; lỗi gửi thông báo không ảnh hưởng response
	if pc.Publisher != nil {
		pc.Publisher.Publish(c.Request.Context(), evt)
	}

	c.JSON(http.StatusCreated, gin.H{"data": NewPostResource(post)})
}

// PUT /posts/:post
func (pc *PostController) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post, err := pc.Posts.UpdatePost(c.Request.Context(), userID, postID, req.input())
	if err != nil {
		respondError(c, err, "update post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": NewPostResource(post)})
}

// DELETE /posts/:post
func (pc *PostController) Destroy(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post")
	if !ok {
		return
	}

	if err := pc.Posts.DeletePost(c.Request.Context(), userID, postID); err != nil {
		respondError(c, err, "delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
