package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// todoReq carries the optional fields of create/update bodies. Pointers
// distinguish "absent" from "empty" so update can merge per field.
type todoReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// POST /api/todos
func handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var in todoReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		errorJSON(w, http.StatusBadRequest, "Title is required")
		return
	}

	todo := Todo{
		ID:     newID(),
		Title:  *in.Title,
		Status: StatusPending,
		UserID: userIDFromContext(r),
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			errorJSON(w, http.StatusBadRequest, "Invalid status value")
			return
		}
		todo.Status = *in.Status
	}

	if err := todos.Create(r.Context(), &todo); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// GET /api/todos
func handleListTodos(w http.ResponseWriter, r *http.Request) {
	list, err := todos.All(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if list == nil {
		list = []Todo{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /api/todos/{id}
func handleGetTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := todoFromContext(r)
	if !ok {
		errorJSON(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// PUT /api/todos/{id}
// Only the fields present in the body replace those of the resolved record.
func handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	base, ok := todoFromContext(r)
	if !ok {
		errorJSON(w, http.StatusInternalServerError, "Server Error")
		return
	}

	var in todoReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated := base
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			errorJSON(w, http.StatusBadRequest, "Invalid status value")
			return
		}
		updated.Status = *in.Status
	}

	if err := todos.Update(r.Context(), &updated); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/todos/{id}
// One atomic fetch-and-delete; the prior record comes back to the client.
func handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	deleted, err := todos.DeleteByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		errorJSON(w, http.StatusNotFound, "Todo Record Not Found")
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Internal Server Error",
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
