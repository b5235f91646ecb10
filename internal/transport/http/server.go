package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"socialnet/internal/auth"
	"socialnet/internal/config"
	"socialnet/internal/database"
	"socialnet/internal/handler"
	"socialnet/internal/metrics"
	"socialnet/internal/repository"
	"socialnet/internal/service"
)

// Run wires config, storage, services and handlers, then serves HTTP until
// the listener fails.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	log.Println("[Server] Database connection established")

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	metrics.Init()

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTMaxAge)*time.Second)

	// Avatar storage is optional. Without it the avatar endpoint reports 503
	// and everything else works.
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		log.Printf("[Server] Avatar storage disabled: %v", err)
		mediaService = nil
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, userRepo, likeRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	likeService := service.NewLikeService(likeRepo, postRepo, userRepo)

	authHandler := handler.NewAuthHandler(userService, mediaService, tokens)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)

	router := NewRouter(cfg, tokens, authHandler, postHandler, commentHandler, likeHandler)

	addr := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("[Server] Listening on %s", addr)
	return srv.ListenAndServe()
}
