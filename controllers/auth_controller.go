package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-blog-backend/models"
	"github.com/vnkhanh/social-blog-backend/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// ====== HANDLERS ======
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	db := ac.DB.WithContext(c.Request.Context())

	// Check email tồn tại
	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "The email has already been taken."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err, "register user")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err, "hash password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		respondError(c, err, "register user")
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		respondError(c, err, "issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":  NewUserResource(user),
		"token": token,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "These credentials do not match our records."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "These credentials do not match our records."})
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		respondError(c, err, "issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  NewUserResource(user),
		"token": token,
	})
}
