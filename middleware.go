package main

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// contextKey avoids collisions with keys set by libraries.
type contextKey string

const (
	userIDKey contextKey = "userId"
	todoKey   contextKey = "todo"
)

// Ids are app-generated 24-hex-char strings (see newID). A shape check here
// keeps malformed route params away from the store entirely.
var idHexPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// requireAuth is the single authorization checkpoint. It reads the bearer
// credential from the Authorization header, verifies it, and stashes the
// authenticated user id in the request context.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			errorJSON(w, http.StatusUnauthorized, "Unauthorized User")
			return
		}

		// The credential is whatever follows the first word; the scheme word
		// itself is not checked.
		var credential string
		if parts := strings.Split(header, " "); len(parts) > 1 {
			credential = parts[1]
		}

		claims, err := parseToken(credential)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "Invalid Token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.User.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateID rejects route ids that don't match the store's identifier shape,
// before any store round trip.
func validateID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !idHexPattern.MatchString(chi.URLParam(r, "id")) {
			errorJSON(w, http.StatusBadRequest, "Invalid Id")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// todoCtx resolves the route id to an existing record and attaches it to the
// request context, or short-circuits with the appropriate status.
func todoCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		todo, err := todos.ByID(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "Cannot find todo")
			return
		}
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), todoKey, todo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func todoFromContext(r *http.Request) (Todo, bool) {
	t, ok := r.Context().Value(todoKey).(Todo)
	return t, ok
}
