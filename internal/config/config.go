package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr string
	LogLevel string

	// Bedrock
	BedrockRegion string
	TextModel     string // plain text tasks, e.g. meta.llama3-1-70b-instruct-v1:0
	VisionModel   string // multimodal tasks, e.g. anthropic.claude-3-5-sonnet-20240620-v1:0
	TitanModel    string // Titan image tasks, e.g. amazon.titan-image-generator-v2:0

	// Reference data / files
	DataDir     string // keyed JSON reference store, e.g. ./data
	SaveDir     string // uploads and generated images
	MaxFileSize int64  // max upload size in bytes

	// Image limits
	ConverseImageMaxDim int // long-edge cap for images attached to converse calls
	TitanImageMaxDim    int // long-edge cap for Titan image inputs

	// S3/Storage (optional; generated images stay local-only when bucket is empty)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BedrockRegion: getEnv("BEDROCK_REGION", "us-west-2"),
		TextModel:     getEnv("TEXT_MODEL", "meta.llama3-1-70b-instruct-v1:0"),
		VisionModel:   getEnv("VISION_MODEL", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		TitanModel:    getEnv("TITAN_MODEL", "amazon.titan-image-generator-v2:0"),

		DataDir:     getEnv("DATA_DIR", "./data"),
		SaveDir:     getEnv("SAVE_DIR", "./generated_images"),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 5*1024*1024), // 5MB

		ConverseImageMaxDim: getEnvInt("CONVERSE_IMAGE_MAX_DIM", 1568),
		TitanImageMaxDim:    getEnvInt("TITAN_IMAGE_MAX_DIM", 1408),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
