package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []int{}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Tokens: staticToken("tok-1")})
	if _, err := c.Get(context.Background(), "/admin/exams", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestEmptyTokenSendsNoAuthorizationHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Tokens: staticToken("")})
	if _, err := c.Post(context.Background(), "/admin/login", map[string]string{"email": "a"}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if hasAuth {
		t.Fatalf("login request must not carry an Authorization header")
	}
}

func TestQueryParamsPassThrough(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []int{}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	q := url.Values{}
	q.Set("page", "3")
	q.Set("search", "fractions")
	if _, err := c.Get(context.Background(), "/admin/questions", q); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Get("page") != "3" || got.Get("search") != "fractions" {
		t.Fatalf("query = %v", got)
	}
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "name is required"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Post(context.Background(), "/admin/subjects", map[string]string{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "name is required" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestSuccessFalseOn200BecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid credentials"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Post(context.Background(), "/admin/login", map[string]string{"email": "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestNonJSONErrorBodyFallsBackToRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Get(context.Background(), "/admin/dashboard", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "bad gateway" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}
