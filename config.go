package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	CORSOrigin  string
	Port        string
}

func loadConfig() Config {
	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getenv("CORS_ORIGIN", "http://localhost:4200"),
		Port:        getenv("PORT", "3000"),
	}
}

func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

// mustLoadEnv fails fast on the env vars the server cannot run without.
func mustLoadEnv() {
	for _, k := range []string{"DATABASE_URL", "JWT_SECRET"} {
		if os.Getenv(k) == "" {
			log.Fatalf("missing required env %s", k)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
