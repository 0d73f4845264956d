package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"
	"github.com/vedran77/taskdeck/internal/config"
	"github.com/vedran77/taskdeck/internal/database"
	postgresrepo "github.com/vedran77/taskdeck/internal/repository/postgres"
	"github.com/vedran77/taskdeck/internal/service"
	"github.com/vedran77/taskdeck/internal/token"
	"github.com/vedran77/taskdeck/internal/transport/http/handlers"
	"github.com/vedran77/taskdeck/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Database
	if err := database.Migrate(ctx, cfg); err != nil {
		log.Fatal(err)
	}
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	taskRepo := postgresrepo.NewTaskRepo(pool)

	// Services
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	taskService := service.NewTaskService(taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.TokenTTL, cfg.IsProduction())
	taskHandler := handlers.NewTaskHandler(taskService)

	// Auth middleware
	auth := middleware.Auth(tokens, userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// Protected - Profile
	mux.Handle("GET /auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /auth/me", auth(http.HandlerFunc(authHandler.UpdateProfile)))

	// Protected - Tasks
	mux.Handle("POST /tasks", auth(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /tasks", auth(http.HandlerFunc(taskHandler.List)))
	mux.Handle("GET /tasks/{id}", auth(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("PUT /tasks/{id}", auth(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /tasks/{id}", auth(http.HandlerFunc(taskHandler.Delete)))

	corsLayer := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsLayer.Handler(middleware.Timeout(cfg.RequestTimeout)(mux))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	log.Printf("Starting server on %s", addr)
	log.Fatal(server.ListenAndServe())
}
