package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTKey       []byte
	JWTAlgorithm string
	TokenExpiry  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		JWTKey:             []byte(getEnv("JWT_SECRET", "your-secret-key-here")),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		TokenExpiry:        time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "quiz_db"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		LoginAttemptLimit:  getEnvAsInt("LOGIN_ATTEMPT_LIMIT", 10),
		LoginAttemptWindow: time.Duration(getEnvAsInt("LOGIN_ATTEMPT_WINDOW_SECONDS", 60)) * time.Second,
	}

	// DATABASE_URL wins over the discrete DB_* variables when set.
	if url := getEnv("DATABASE_URL", ""); url != "" {
		AppConfig.DBConnStr = url
	} else {
		AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
			" port=" + AppConfig.DBPort +
			" user=" + AppConfig.DBUser +
			" password=" + AppConfig.DBPassword +
			" dbname=" + AppConfig.DBName +
			" sslmode=" + AppConfig.DBSslMode
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
