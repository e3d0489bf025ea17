package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selectors. The defaults run fully local: in-memory storage and
// index with the deterministic hashing embedder.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	IndexMemory = "memory"
	IndexQdrant = "qdrant"

	EmbedderHashing = "hashing"
	EmbedderGemini  = "gemini"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Embedding EmbeddingConfig
	Skills    SkillsConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port  string
	Env   string
	Debug bool
}

type DatabaseConfig struct {
	Backend  string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL              string
	APIKey           string
	ResumeCollection string
	JobCollection    string
}

type GeminiConfig struct {
	APIKey string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type EmbeddingConfig struct {
	Backend       string
	IndexBackend  string
	Dimension     int
	MaxInputChars int
}

type SkillsConfig struct {
	LexiconPath string
}

type WorkerConfig struct {
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:  getEnv("PORT", "5000"),
			Env:   getEnv("ENV", "development"),
			Debug: getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Backend:  getEnv("STORAGE_BACKEND", StorageMemory),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resumerag"),
		},
		Qdrant: QdrantConfig{
			URL:              getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:           getEnv("QDRANT_API_KEY", ""),
			ResumeCollection: getEnv("QDRANT_RESUME_COLLECTION", "resumes"),
			JobCollection:    getEnv("QDRANT_JOB_COLLECTION", "jobs"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 16777216),
		},
		Embedding: EmbeddingConfig{
			Backend:       getEnv("EMBEDDER_BACKEND", EmbedderHashing),
			IndexBackend:  getEnv("INDEX_BACKEND", IndexMemory),
			Dimension:     getEnvAsInt("EMBEDDING_DIM", 512),
			MaxInputChars: getEnvAsInt("EMBEDDING_MAX_INPUT", 40000),
		},
		Skills: SkillsConfig{
			LexiconPath: getEnv("SKILL_LEXICON_PATH", ""),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
