package main

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, err := users.ByUsername(r.Context(), in.Username)
	if err == nil {
		errorJSON(w, http.StatusBadRequest, "Username is already taken")
		return
	}
	if !errors.Is(err, ErrNotFound) {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	u := User{
		ID:           newID(),
		Username:     in.Username,
		PasswordHash: string(hash),
	}
	if err := users.Create(r.Context(), &u); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// POST /api/auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := users.ByUsername(r.Context(), strings.TrimSpace(in.Username))
	if errors.Is(err, ErrNotFound) {
		// Same message as a bad password, so account existence isn't leaked.
		errorJSON(w, http.StatusBadRequest, "Invalid username or password")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	tok, err := signToken(u.ID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}
