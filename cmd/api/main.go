package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"bloggr/cmd/app"
	"bloggr/internal/config"
	handlers "bloggr/internal/handler"
	"bloggr/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	application := app.New(cfg)
	defer application.DB.CloseDB()

	handler := handlers.NewHandlers(application.Repo, application.Services, application.DB, application.EventManager, application.Limiter, cfg)

	router := mux.NewRouter()
	router.Use(middleware.Logging, middleware.CORS)

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet, http.MethodOptions)

	api := router.PathPrefix("/api").Subrouter()

	auth := middleware.Auth(cfg, application.Repo.User)
	optionalAuth := middleware.OptionalAuth(cfg, application.Repo.User)

	// public endpoints
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/refresh", handler.RefreshToken).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users", handler.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{post_id}/comments", handler.ListComments).Methods(http.MethodGet)
	api.HandleFunc("/posts/{post_id}/related", handler.ListRelatedPosts).Methods(http.MethodGet)
	api.HandleFunc("/tags", handler.ListTags).Methods(http.MethodGet)
	api.HandleFunc("/tags/{id}", handler.GetTag).Methods(http.MethodGet)

	// draft reads resolve the principal when a token is present
	api.Handle("/posts/{id}", optionalAuth(http.HandlerFunc(handler.GetPost))).Methods(http.MethodGet)

	// authenticated endpoints
	private := api.NewRoute().Subrouter()
	private.Use(auth)

	private.HandleFunc("/users/me", handler.GetCurrentUser).Methods(http.MethodGet)
	private.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	private.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut)
	private.HandleFunc("/users/{id}/avatar", handler.UpdateAvatar).Methods(http.MethodPatch)
	private.HandleFunc("/users/{id}/password", handler.UpdatePassword).Methods(http.MethodPut)

	private.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	private.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	private.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	private.HandleFunc("/posts/{id}/tags", handler.ListPostTags).Methods(http.MethodGet)
	private.HandleFunc("/posts/{id}/tags", handler.AddTagToPost).Methods(http.MethodPost)
	private.HandleFunc("/posts/{id}/tags", handler.RemoveTagFromPost).Methods(http.MethodDelete)

	private.HandleFunc("/posts/{post_id}/related", handler.AddRelatedPost).Methods(http.MethodPost)
	private.HandleFunc("/posts/{post_id}/related/{related_post_id}", handler.RemoveRelatedPost).Methods(http.MethodDelete)

	private.HandleFunc("/posts/{post_id}/comments", handler.AddComment).Methods(http.MethodPost)

	private.HandleFunc("/tags", handler.CreateTag).Methods(http.MethodPost)
	private.HandleFunc("/tags/{id}", handler.DeleteTag).Methods(http.MethodDelete)

	private.HandleFunc("/notifications", handler.ListNotifications).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)
	log.Printf("Database: %s", cfg.DB.Name)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
