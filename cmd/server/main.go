package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/di"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cnf := config.Load()
	if cnf.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	log.Println("Initializing application...")
	app, err := di.InitializeApplication(cnf)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := setupRouter(app)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cnf.Server.Host, cnf.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cnf.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := app.Mongo.Close(ctx); err != nil {
		log.Printf("Mongo disconnect failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// setupRouter configures HTTP routes
func setupRouter(app *di.Application) *mux.Router {
	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Public auth routes
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", app.UserHandler.Register).Methods("POST")
	auth.HandleFunc("/login", app.UserHandler.Login).Methods("POST")

	// Everything below requires a valid bearer token
	api := router.PathPrefix("/api").Subrouter()
	api.Use(common.AuthMiddleware(app.Config.Auth.JWTSecret))

	api.HandleFunc("/users/me", app.UserHandler.Me).Methods("GET")
	api.HandleFunc("/users/me", app.UserHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/users/me", app.UserHandler.Delete).Methods("DELETE")
	api.HandleFunc("/users/me/password", app.UserHandler.ChangePassword).Methods("PUT")
	api.HandleFunc("/users/search", app.UserHandler.Search).Methods("GET")
	api.HandleFunc("/users/{userId}", app.UserHandler.Get).Methods("GET")

	api.HandleFunc("/chats", app.ChatHandler.Create).Methods("POST")
	api.HandleFunc("/chats", app.ChatHandler.List).Methods("GET")
	api.HandleFunc("/chats/{chatId}", app.ChatHandler.Get).Methods("GET")
	api.HandleFunc("/chats/{chatId}", app.ChatHandler.Update).Methods("PUT")
	api.HandleFunc("/chats/{chatId}", app.ChatHandler.Delete).Methods("DELETE")
	api.HandleFunc("/chats/{chatId}/members", app.ChatHandler.AddMember).Methods("POST")
	api.HandleFunc("/chats/{chatId}/members/{userId}", app.ChatHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/chats/{chatId}/members/{userId}/promote", app.ChatHandler.Promote).Methods("POST")
	api.HandleFunc("/chats/{chatId}/read", app.ChatHandler.MarkRead).Methods("POST")
	api.HandleFunc("/chats/{chatId}/unread", app.ChatHandler.Unread).Methods("GET")

	api.HandleFunc("/chats/{chatId}/messages", app.MessageHandler.GetMessages).Methods("GET")
	api.HandleFunc("/messages", app.MessageHandler.Send).Methods("POST")
	api.HandleFunc("/messages/{messageId}", app.MessageHandler.Update).Methods("PUT")
	api.HandleFunc("/messages/{messageId}", app.MessageHandler.Delete).Methods("DELETE")

	api.HandleFunc("/files/upload", app.AttachmentHandler.Upload).Methods("POST")
	api.HandleFunc("/files/{attachmentId}", app.AttachmentHandler.Download).Methods("GET")
	api.HandleFunc("/files/{attachmentId}", app.AttachmentHandler.Delete).Methods("DELETE")

	// Live event stream; the token may also come via ?token= since
	// browsers cannot set headers on websocket upgrades.
	ws := router.PathPrefix("/ws").Subrouter()
	ws.Use(common.AuthMiddleware(app.Config.Auth.JWTSecret))
	ws.HandleFunc("", app.WSHandler.ServeWS).Methods("GET")

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// healthCheckHandler provides basic health check
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"gigachat"}`))
}
