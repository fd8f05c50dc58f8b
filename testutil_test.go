package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// In-memory stores so the middleware chain and handlers run without Postgres.

type fakeUserStore struct {
	byName    map[string]User
	lookupErr error
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: map[string]User{}}
}

func (s *fakeUserStore) ByUsername(_ context.Context, username string) (User, error) {
	if s.lookupErr != nil {
		return User{}, s.lookupErr
	}
	u, ok := s.byName[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Create(_ context.Context, u *User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.byName[u.Username] = *u
	return nil
}

type fakeTodoStore struct {
	byID      map[string]Todo
	order     []string
	allErr    error
	byIDErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{byID: map[string]Todo{}}
}

func (s *fakeTodoStore) All(_ context.Context) ([]Todo, error) {
	if s.allErr != nil {
		return nil, s.allErr
	}
	list := make([]Todo, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.byID[id])
	}
	return list, nil
}

func (s *fakeTodoStore) ByID(_ context.Context, id string) (Todo, error) {
	if s.byIDErr != nil {
		return Todo{}, s.byIDErr
	}
	t, ok := s.byID[id]
	if !ok {
		return Todo{}, ErrNotFound
	}
	return t, nil
}

func (s *fakeTodoStore) Create(_ context.Context, t *Todo) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.byID[t.ID] = *t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *fakeTodoStore) Update(_ context.Context, t *Todo) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.byID[t.ID] = *t
	return nil
}

func (s *fakeTodoStore) DeleteByID(_ context.Context, id string) (Todo, error) {
	if s.deleteErr != nil {
		return Todo{}, s.deleteErr
	}
	t, ok := s.byID[id]
	if !ok {
		return Todo{}, ErrNotFound
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return t, nil
}

// newTestServer wires fake stores into the real router.
func newTestServer(t *testing.T) (http.Handler, *fakeUserStore, *fakeTodoStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	us := newFakeUserStore()
	ts := newFakeTodoStore()
	users = us
	todos = ts
	return newRouter("http://localhost:4200"), us, ts
}

func doRequest(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// doRequestRaw hits a protected route with the Authorization header set
// verbatim (or omitted when empty), so malformed header shapes can be tested.
func doRequestRaw(t *testing.T, h http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, w.Body.String())
	}
	return body.Message
}

func decodeTodo(t *testing.T, w *httptest.ResponseRecorder) Todo {
	t.Helper()
	var todo Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Fatalf("decode todo: %v (body %q)", err, w.Body.String())
	}
	return todo
}

// testToken signs a token for the given user with the test secret.
func testToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := signToken(userID)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	return tok
}
