package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/social-blog-backend/middleware"
	"github.com/vnkhanh/social-blog-backend/services"
)

// actorID lấy user hiện tại; tự trả 401 nếu không có
func actorID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return uuid.Nil, false
	}
	return id, true
}

// paramID parse :name thành uuid; id sai định dạng coi như không tồn tại
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized."})
	case errors.Is(err, services.ErrSelfFavorite):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot favorite yourself."})
	case errors.Is(err, services.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("%s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to " + action})
	}
}
