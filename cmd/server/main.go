// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/iyunix/go-retriever/internal/config"
	"github.com/iyunix/go-retriever/internal/domain"
	"github.com/iyunix/go-retriever/internal/handlers"
	"github.com/iyunix/go-retriever/internal/middleware"
	"github.com/iyunix/go-retriever/internal/ratelimit"
	"github.com/iyunix/go-retriever/internal/repository/conversation"
	"github.com/iyunix/go-retriever/internal/repository/message"
	"github.com/iyunix/go-retriever/internal/repository/user"
	"github.com/iyunix/go-retriever/internal/services"
	"github.com/iyunix/go-retriever/internal/services/ai"
	"github.com/iyunix/go-retriever/internal/services/blob"
	"github.com/iyunix/go-retriever/internal/services/chat"
	"github.com/iyunix/go-retriever/internal/services/index"
	"github.com/iyunix/go-retriever/internal/services/user_services"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Conversation{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	convRepo := conversation.NewConversationRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.EmbeddingKey = cfg.EmbeddingAPIKey
	aiConfig.EmbeddingBaseURL = cfg.EmbeddingBaseURL
	aiConfig.EmbeddingModel = cfg.EmbeddingModel
	aiConfig.LLMKey = cfg.LLMAPIKey
	aiConfig.LLMBaseURL = cfg.LLMBaseURL
	aiConfig.LLMModel = cfg.LLMModel

	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI provider: %v", err)
	}

	store, err := blob.NewMinioStore(cfg.BlobEndpoint, cfg.BlobAccessKey, cfg.BlobSecretKey, cfg.BlobBucket, cfg.BlobUseSSL)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize object store: %v", err)
	}

	indexConfig := index.DefaultConfig()
	indexConfig.Dir = cfg.VectorStoreDir
	indexConfig.ChunkSize = cfg.ChunkSize
	indexConfig.ChunkOverlap = cfg.ChunkOverlap

	indexService, err := index.NewService(indexConfig, aiProvider, services.NewLogger("index"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize index service: %v", err)
	}

	tokenExpiry := time.Duration(cfg.TokenExpiryMinutes) * time.Minute
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, tokenExpiry, services.NewLogger("auth"))

	chatConfig := chat.DefaultConfig()
	chatConfig.RetrievalTopK = cfg.RetrievalTopK

	chatService, err := chat.NewService(chatConfig, convRepo, messageRepo, indexService, aiProvider, services.NewLogger("chat"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	ragHandler := handlers.NewRAGHandler(chatService, indexService, store)
	convHandler := handlers.NewConversationHandler(chatService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)
	authLimiter := ratelimit.NewLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(middleware.CORSMiddleware([]string{"*"}))
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/rag/health", ragHandler.Health).Methods("GET")

	auth := r.PathPrefix("/auth").Subrouter()
	auth.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	auth.Use(middleware.AuthSuccessMiddleware(authLimiter, "auth"))
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/token", authHandler.Token).Methods("POST")

	// --- Protected Routes ---
	rag := r.PathPrefix("/rag").Subrouter()
	rag.Use(authMiddleware)
	rag.HandleFunc("/upload", ragHandler.Upload).Methods("POST")
	rag.HandleFunc("/query", ragHandler.Query).Methods("POST")
	rag.HandleFunc("/documents", ragHandler.ListDocuments).Methods("GET")
	rag.HandleFunc("/documents/{filename}", ragHandler.DeleteDocument).Methods("DELETE")
	rag.HandleFunc("/deleteVectorDB", ragHandler.DeleteVectorDB).Methods("DELETE")
	rag.HandleFunc("/getConversations", convHandler.GetConversations).Methods("GET")
	rag.HandleFunc("/getMessages", convHandler.GetMessages).Methods("GET")
	rag.HandleFunc("/deleteConversation", convHandler.DeleteConversation).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Server starting on port %s", cfg.ServerPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
