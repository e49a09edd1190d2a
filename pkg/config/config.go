package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	ElevenLabs ElevenLabsConfig
	Unsplash   UnsplashConfig
	Assembly   AssemblyAIConfig
	Storage    StorageConfig
	Pipeline   PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	OutputDir       string
	StaticPrefix    string
}

// GeminiConfig holds the text generation collaborator configuration
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ElevenLabsConfig holds the speech synthesis collaborator configuration
type ElevenLabsConfig struct {
	APIKey       string
	BaseURL      string
	VoiceID      string
	ModelID      string
	OutputFormat string
}

// UnsplashConfig holds the image search collaborator configuration
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	PerPage   int
}

// AssemblyAIConfig holds the speech-to-text collaborator configuration
type AssemblyAIConfig struct {
	APIKey string
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// PipelineConfig holds pipeline tuning knobs
type PipelineConfig struct {
	RunTimeout        time.Duration
	ImageSearchPacing time.Duration
	FFmpegBin         string
	FFprobeBin        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			OutputDir:       getEnv("OUTPUT_DIR", "output"),
			StaticPrefix:    getEnv("STATIC_PREFIX", "/static"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:       getEnv("ELEVENLABS_API_KEY", ""),
			BaseURL:      getEnv("ELEVENLABS_API_URL", "https://api.elevenlabs.io"),
			VoiceID:      getEnv("ELEVENLABS_VOICE_ID", "qwaVDEGNsBllYcZO1ZOJ"),
			ModelID:      getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
			OutputFormat: getEnv("ELEVENLABS_OUTPUT_FORMAT", "mp3_44100_128"),
		},
		Unsplash: UnsplashConfig{
			AccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
			BaseURL:   getEnv("UNSPLASH_API_URL", "https://api.unsplash.com"),
			PerPage:   getEnvAsInt("UNSPLASH_PER_PAGE", 1),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "videogen"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Pipeline: PipelineConfig{
			RunTimeout:        getEnvAsDuration("PIPELINE_RUN_TIMEOUT", "10m"),
			ImageSearchPacing: getEnvAsDuration("IMAGE_SEARCH_PACING", "1s"),
			FFmpegBin:         getEnv("FFMPEG_BIN", "ffmpeg"),
			FFprobeBin:        getEnv("FFPROBE_BIN", "ffprobe"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.ElevenLabs.APIKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY is required")
	}
	if c.Unsplash.AccessKey == "" {
		return fmt.Errorf("UNSPLASH_ACCESS_KEY is required")
	}
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Pipeline.ImageSearchPacing < time.Second {
		return fmt.Errorf("IMAGE_SEARCH_PACING must be at least 1s")
	}
	return nil
}

// GetServerAddr returns the listen address for the HTTP server
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Helper functions

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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
