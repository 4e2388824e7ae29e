package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book_repository/internal/api"
	"book_repository/internal/app/service"
	"book_repository/internal/common/security"
	"book_repository/internal/domain/repository"
	"book_repository/internal/platform/books"
	"book_repository/internal/platform/config"
	"book_repository/internal/platform/database"
	"book_repository/internal/platform/session"
)

func main() {
	// 1. Load Configuration (fatal on missing required values)
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	log.Println("JWT initialized.")

	// 3. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 4. Initialize Redis (session store for search criteria)
	rdb, err := session.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	bookRepo := repository.NewPgBookRepository(db)
	genreRepo := repository.NewPgGenreRepository(db)

	// 6. Initialize Services
	criteriaStore := session.NewCriteriaStore(rdb, cfg.SearchSessionTTL)
	thumbnails := books.NewClient(cfg.GoogleBooksURL, cfg.GoogleAPIKey)

	authService := service.NewAuthService(userRepo, tokens)
	bookService := service.NewBookService(bookRepo, genreRepo, thumbnails)
	searchService := service.NewSearchService(bookRepo, criteriaStore)
	adminService := service.NewAdminService(userRepo, bookRepo, cfg.AdminUsername)
	bootstrapService := service.NewBootstrapService(userRepo, bookRepo, genreRepo, cfg)

	// 7. Bootstrap: admin account and genre reference list, idempotent.
	if err := bootstrapService.Run(context.Background()); err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	log.Println("Bootstrap completed.")

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(tokens, cfg.Production, authService, bookService, searchService, adminService, bootstrapService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
