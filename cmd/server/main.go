package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/starwishteam/starwish/internal/config"
	"github.com/starwishteam/starwish/internal/database"
	"github.com/starwishteam/starwish/internal/handlers"
	"github.com/starwishteam/starwish/internal/repository"
	cronjobs "github.com/starwishteam/starwish/internal/scheduler"
	"github.com/starwishteam/starwish/internal/services"
	"github.com/starwishteam/starwish/pkg/aidetect"
	"github.com/starwishteam/starwish/pkg/logger"
	"github.com/starwishteam/starwish/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	wishRepo := repository.NewWishRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// --- Services ---
	detector := aidetect.NewClient(cfg.AIDetectURL, cfg.AIDetectKey)
	userService := services.NewUserService(userRepo, wishRepo)
	wishService := services.NewWishService(wishRepo, voteRepo, detector)
	fulfillmentService := services.NewFulfillmentService(wishRepo, chatRepo, notifRepo)
	chatService := services.NewChatService(chatRepo)
	leaderboardService := services.NewLeaderboardService(wishRepo)
	notificationService := services.NewNotificationService(notifRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	wishHandler := handlers.NewWishHandler(wishService)
	fulfillmentHandler := handlers.NewFulfillmentHandler(fulfillmentService)
	chatHandler := handlers.NewChatHandler(chatService, cfg.JWTSecret)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// The feed, leaderboard and public profiles are readable without login
	router.HandleFunc("/wishes", wishHandler.GetWishesHandler).Methods("GET")
	router.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboardHandler).Methods("GET")
	router.HandleFunc("/users/{username}", userHandler.GetPublicProfileHandler).Methods("GET")

	// Live chat stream authenticates via token query parameter
	router.HandleFunc("/ws/chats/{chatId}", chatHandler.ChatStreamHandler)

	// Wish routes
	protectedWishRoutes := router.PathPrefix("/wishes").Subrouter()
	protectedWishRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedWishRoutes.HandleFunc("", wishHandler.CreateWishHandler).Methods("POST")
	protectedWishRoutes.HandleFunc("/{id}", wishHandler.GetWishByIDHandler).Methods("GET")
	protectedWishRoutes.HandleFunc("/{id}", wishHandler.DeleteWishHandler).Methods("DELETE")
	protectedWishRoutes.HandleFunc("/{id}/vote", wishHandler.VoteHandler).Methods("POST")
	protectedWishRoutes.HandleFunc("/{id}/fulfill", fulfillmentHandler.FulfillWishHandler).Methods("POST")
	protectedWishRoutes.HandleFunc("/{id}/complete", fulfillmentHandler.CompleteWishHandler).Methods("POST")

	// Vote lookup for the feed
	protectedVoteRoutes := router.PathPrefix("/votes").Subrouter()
	protectedVoteRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedVoteRoutes.HandleFunc("", wishHandler.GetMyVotesHandler).Methods("GET")

	// Profile routes
	protectedProfileRoutes := router.PathPrefix("/profile").Subrouter()
	protectedProfileRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedProfileRoutes.HandleFunc("", userHandler.GetProfileHandler).Methods("GET")
	protectedProfileRoutes.HandleFunc("", userHandler.UpdateProfileFieldHandler).Methods("PATCH")
	protectedProfileRoutes.HandleFunc("/links", userHandler.AddSocialLinkHandler).Methods("POST")

	// Account route
	protectedUserRoutes := router.PathPrefix("/me").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("", userHandler.GetMeHandler).Methods("GET")

	// Chat routes
	protectedChatRoutes := router.PathPrefix("/chats").Subrouter()
	protectedChatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChatRoutes.HandleFunc("", chatHandler.GetMyChatsHandler).Methods("GET")
	protectedChatRoutes.HandleFunc("/{chatId}/messages", chatHandler.GetMessagesHandler).Methods("GET")
	protectedChatRoutes.HandleFunc("/{chatId}/messages", chatHandler.SendMessageHandler).Methods("POST")

	// Notification routes
	protectedNotifRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotifRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotifRoutes.HandleFunc("", notificationHandler.GetMyNotificationsHandler).Methods("GET")
	protectedNotifRoutes.HandleFunc("/{id}/seen", notificationHandler.MarkSeenHandler).Methods("POST")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background cleanup of expired notifications
	cronjobs.StartNotificationCronJobs(notificationService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
