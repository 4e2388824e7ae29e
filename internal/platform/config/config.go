package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort    string
	Production bool

	JWTKey []byte
	JWTExp time.Duration

	DBConnStr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AdminUsername string
	AdminPassword string

	MailServer        string
	MailPort          string
	MailUsername      string
	MailPassword      string
	MailDefaultSender string

	GoogleAPIKey   string
	GoogleBooksURL string

	SearchSessionTTL time.Duration

	GenreSeedFile string
	BookSeedFile  string
}

// Load reads the environment (plus an optional .env file) into a Config.
// Missing required values are fatal: the service refuses to start without
// its database, bootstrap admin credential, or mail parameters.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		APIPort:    getEnv("API_PORT", "8080"),
		Production: getEnv("PRODUCTION", "OFF") == "ON",

		JWTKey: []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp: time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,

		DBConnStr: mustGetEnv("DATABASE_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: mustGetEnv("ADMIN_PASSWORD"),

		MailServer:        mustGetEnv("MAIL_SERVER"),
		MailPort:          mustGetEnv("MAIL_PORT"),
		MailUsername:      mustGetEnv("MAIL_USERNAME"),
		MailPassword:      mustGetEnv("MAIL_PASSWORD"),
		MailDefaultSender: mustGetEnv("MAIL_DEFAULT_SENDER"),

		GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		GoogleBooksURL: getEnv("GOOGLE_BOOKS_URL", "https://www.googleapis.com/books/v1/volumes"),

		SearchSessionTTL: time.Duration(getEnvAsInt("SEARCH_SESSION_TTL_MINUTES", 30)) * time.Minute,

		GenreSeedFile: getEnv("GENRE_SEED_FILE", "seed/genre.json"),
		BookSeedFile:  getEnv("BOOK_SEED_FILE", "seed/book.json"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
