package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит конфигурацию приложения, загружаемую из окружения.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret       string
	JWTExpiresHours int
	SessionSecret   string

	GithubToken        string
	GithubClientID     string
	GithubClientSecret string
	GithubRedirectURL  string

	UploadsDir    string
	HackathonsURL string
}

// App — глобальная конфигурация процесса, заполняется в Load.
var App *Config

// Load читает .env (если есть) и переменные окружения.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "itbird"),

		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		JWTExpiresHours: getEnvInt("JWT_EXPIRES_HOURS", 24),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-session-secret"),

		GithubToken:        getEnv("GITHUB_TOKEN", ""),
		GithubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		GithubRedirectURL:  getEnv("GITHUB_REDIRECT_URL", ""),

		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		HackathonsURL: getEnv("HACKATHONS_URL", "https://hackathonevents.ru/"),
	}

	App = cfg
	return cfg
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
