package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress   string
	AuthMode        string // "firebase" or "jwt"
	JWTSecret       string
	JWTExpiration   time.Duration
	FirebaseProject string
	FirebaseCreds   string
	MongoURI        string
	MongoDBName     string
	DataDir         string
	UploadDir       string
	MaxUploadSizeMB int64
}

func Load() *Config {
	return &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		AuthMode:        getEnv("AUTH_MODE", "firebase"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:   24 * time.Hour,
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCreds:   getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "profile"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSizeMB: 10,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
