package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-blog-backend/controllers"
	"github.com/vnkhanh/social-blog-backend/middleware"
	"github.com/vnkhanh/social-blog-backend/services"
	"github.com/vnkhanh/social-blog-backend/ws"
)

type Deps struct {
	DB         *gorm.DB
	Hub        *ws.Hub
	Favorites  *services.FavoriteService
	Dispatcher *services.Dispatcher
	Images     services.ImageStore
}

func SetupRouter(r *gin.Engine, deps Deps) *gin.Engine {
	db := deps.DB
	favorites := deps.Favorites
	if favorites == nil {
		favorites = services.NewFavoriteService(db)
	}
	if deps.Hub == nil {
		deps.Hub = ws.H
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = services.NewDispatcher(favorites, services.DatabaseChannel{DB: db})
	}

	authCtl := controllers.NewAuthController(db)
	postCtl := controllers.NewPostController(services.NewPostService(db, deps.Images), deps.Dispatcher)
	favCtl := controllers.NewFavoriteController(favorites)
	notiCtl := controllers.NewNotificationController(services.NewNotificationService(db), deps.Hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck(db, deps.Hub))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	// Public
	api.GET("/posts", postCtl.Index)
	api.GET("/posts/:post", postCtl.Show)

	user := api.Group("")
	user.Use(middleware.AuthMiddleware(db))
	{
		user.POST("/posts", postCtl.Store)
		user.PUT("/posts/:post", postCtl.Update)
		user.DELETE("/posts/:post", postCtl.Destroy)

		user.GET("/favorites", favCtl.Index)
		user.GET("/posts/:post/favorites", favCtl.CheckPost)
		user.POST("/posts/:post/favorites", favCtl.StorePost)
		user.DELETE("/posts/:post/favorites", favCtl.DestroyPost)
		user.POST("/users/:user/favorites", favCtl.StoreUser)
		user.DELETE("/users/:user/favorites", favCtl.DestroyUser)

		user.GET("/notifications", notiCtl.Index)
		user.GET("/notifications/unread-count", notiCtl.UnreadCount)
		user.PATCH("/notifications/read-all", notiCtl.MarkAllRead)
		user.PATCH("/notifications/:id/read", notiCtl.MarkRead)
		user.DELETE("/notifications/read", notiCtl.DestroyRead)
		user.DELETE("/notifications/:id", notiCtl.Destroy)
		user.DELETE("/notifications", notiCtl.DestroyAll)
	}

	r.GET("/ws/notifications", deps.Hub.HandleUserWebSocket)

	return r
}
