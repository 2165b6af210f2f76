package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-blog-backend/models"
	"github.com/vnkhanh/social-blog-backend/services"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Favorites: favorites}
}

// GET /favorites
func (fc *FavoriteController) Index(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	list, err := fc.Favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "fetch favorites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": NewFavoriteResource(list)})
}

// POST /posts/:post/favorites
func (fc *FavoriteController) StorePost(c *gin.Context) {
	fc.store(c, models.TargetPost, "post")
}

// DELETE /posts/:post/favorites
func (fc *FavoriteController) DestroyPost(c *gin.Context) {
	fc.destroy(c, models.TargetPost, "post")
}

// GET /posts/:post/favorites
func (fc *FavoriteController) CheckPost(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "post")
	if !ok {
		return
	}

	favorited, err := fc.Favorites.IsFavorited(c.Request.Context(), userID, models.TargetPost, postID)
	if err != nil {
		respondError(c, err, "check favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": favorited})
}

// POST /users/:user/favorites
func (fc *FavoriteController) StoreUser(c *gin.Context) {
	fc.store(c, models.TargetUser, "user")
}

// DELETE /users/:user/favorites
func (fc *FavoriteController) DestroyUser(c *gin.Context) {
	fc.destroy(c, models.TargetUser, "user")
}

func (fc *FavoriteController) store(c *gin.Context, kind models.TargetKind, param string) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	targetID, ok := paramID(c, param)
	if !ok {
		return
	}

	if _, err := fc.Favorites.AddFavorite(c.Request.Context(), userID, kind, targetID); err != nil {
		respondError(c, err, "add favorite")
		return
	}
	c.Status(http.StatusCreated)
}

func (fc *FavoriteController) destroy(c *gin.Context, kind models.TargetKind, param string) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	targetID, ok := paramID(c, param)
	if !ok {
		return
	}

	if err := fc.Favorites.RemoveFavorite(c.Request.Context(), userID, kind, targetID); err != nil {
		respondError(c, err, "remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}
