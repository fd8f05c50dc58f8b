package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm/logger"
)

func newRouter(corsOrigin string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(corsOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Welcome to the ToDo API"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handleRegister)
		r.Post("/auth/login", handleLogin)

		r.Route("/todos", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handleCreateTodo)
			r.Get("/", handleListTodos)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(validateID)
				r.With(todoCtx).Get("/", handleGetTodo)
				r.With(todoCtx).Put("/", handleUpdateTodo)
				r.Delete("/", handleDeleteTodo)
			})
		})
	})

	return r
}

func main() {
	loadDotenv()
	mustLoadEnv()
	cfg := loadConfig()

	dsn := cfg.DatabaseURL
	// local only: allow sslmode=disable if using localhost
	if strings.Contains(dsn, "localhost") && !strings.Contains(dsn, "sslmode=") {
		if strings.Contains(dsn, "?") {
			dsn += "&sslmode=disable"
		} else {
			dsn += "?sslmode=disable"
		}
	}

	// Quieter GORM logger
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, sqlDB, err := openGormIPv4(dsn, gLogger)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	defer sqlDB.Close()
	log.Println("[DB] connected")

	if err := autoMigrate(db); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	users = newGormUserStore(db)
	todos = newGormTodoStore(db)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(cfg.CORSOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}
