package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/social-blog-backend/config"
	"github.com/vnkhanh/social-blog-backend/routes"
	"github.com/vnkhanh/social-blog-backend/services"
	"github.com/vnkhanh/social-blog-backend/utils"
	"github.com/vnkhanh/social-blog-backend/ws"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL)

	db := config.InitDB(cfg)

	favorites := services.NewFavoriteService(db)
	channels := []services.Channel{
		services.DatabaseChannel{DB: db},
		services.WebSocketChannel{DB: db, Hub: ws.H},
	}
	if cfg.SMTPEmail != "" {
		channels = append(channels, services.MailChannel{SMTP: utils.SMTPConfig{
			From:     cfg.SMTPEmail,
			Password: cfg.SMTPPassword,
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
		}})
		log.Println("Mail notifications enabled")
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis %s unreachable: %v", cfg.RedisAddr, err)
		}
		channels = append(channels, services.RedisChannel{Client: rdb})
		log.Println("Redis notifications enabled")
	}

	dispatcher := services.NewDispatcher(favorites, channels...)
	dispatcher.Start(cfg.NotifyWorkers, cfg.NotifyQueue)

	deps := routes.Deps{DB: db, Hub: ws.H, Favorites: favorites, Dispatcher: dispatcher}
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		deps.Images = utils.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	}

	r := gin.Default()

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r = routes.SetupRouter(r, deps)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Blog server is running")
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Server running at Port:" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	// đợi các thông báo còn trong hàng đợi
	dispatcher.Close()
}
