package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds every configuration value the process needs. Required values are
// validated at startup; a missing one aborts boot instead of failing later on
// the first request.
type Env struct {
	AppAddr     string
	GinMode     string
	Environment string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	CORSOrigins []string

	UploadDir       string
	UploadPublicURL string
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	env := Env{
		AppAddr:         getOr("APP_ADDR", ":8080"),
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		Environment:     getOr("APP_ENV", "development"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		UploadDir:       getOr("UPLOAD_DIR", "./uploads"),
		UploadPublicURL: getOr("UPLOAD_PUBLIC_URL", "/uploads"),
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return env, fmt.Errorf("REDIS_DB inválido: %q", v)
		}
		env.RedisDB = n
	}

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	var missing []string
	if env.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if env.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if env.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return env, fmt.Errorf("variáveis de ambiente obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	return env, nil
}

func getOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
