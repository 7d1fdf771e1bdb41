// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string

	JWTSecretKey       string
	TokenExpiryMinutes int

	// Embedding and LLM providers (OpenAI-compatible endpoints).
	EmbeddingAPIKey  string
	EmbeddingBaseURL string
	EmbeddingModel   string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string

	// Blob archive (MinIO / S3-compatible).
	BlobEndpoint  string
	BlobAccessKey string
	BlobSecretKey string
	BlobBucket    string
	BlobUseSSL    bool

	// Per-user vector index storage.
	VectorStoreDir string
	ChunkSize      int
	ChunkOverlap   int
	RetrievalTopK  int
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Environment:  env,
		DatabasePath: getEnv("DATABASE_PATH", "retriever.db"),

		JWTSecretKey:       getEnv("JWT_SECRET_KEY", ""),
		TokenExpiryMinutes: getEnvAsInt("TOKEN_EXPIRY_MINUTES", 30),

		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		// IMPORTANT: this must match the model the stored indexes were built with.
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:       getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),

		BlobEndpoint:  getEnv("BLOB_ENDPOINT", "localhost:9000"),
		BlobAccessKey: getEnv("BLOB_ACCESS_KEY", ""),
		BlobSecretKey: getEnv("BLOB_SECRET_KEY", ""),
		BlobBucket:    getEnv("BLOB_BUCKET", "documents"),
		BlobUseSSL:    getEnvAsBool("BLOB_USE_SSL", false),

		VectorStoreDir: getEnv("VECTOR_STORE_DIR", "vector_stores"),
		ChunkSize:      getEnvAsInt("CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 200),
		RetrievalTopK:  getEnvAsInt("RAG_TOPK", 1),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.EmbeddingAPIKey == "" {
			missing = append(missing, "EMBEDDING_API_KEY")
		}
		if cfg.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if cfg.BlobAccessKey == "" {
			missing = append(missing, "BLOB_ACCESS_KEY")
		}
		if cfg.BlobSecretKey == "" {
			missing = append(missing, "BLOB_SECRET_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsBool gets an env var as a boolean, with a fallback.
func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as boolean. Using default value.", key)
		return defaultValue
	}
	return boolValue
}
