package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchFragment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fragment" {
			t.Errorf("expected path /fragment, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "42" {
			t.Errorf("expected id=42, got id=%s", got)
		}
		fmt.Fprint(w, `{"id": 42, "index": 3, "text": "hello"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultOptions())
	frag, err := client.FetchFragment(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchFragment: %v", err)
	}

	if frag.ID != 42 {
		t.Errorf("expected ID 42, got %d", frag.ID)
	}
	if frag.Index != 3 {
		t.Errorf("expected Index 3, got %d", frag.Index)
	}
	if frag.Text != "hello" {
		t.Errorf("expected Text 'hello', got %q", frag.Text)
	}
}

func TestFetchFragmentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultOptions())
	_, err := client.FetchFragment(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchFragmentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultOptions())
	_, err := client.FetchFragment(context.Background(), 1)
	if !errors.Is(err, ErrServerError) {
		t.Errorf("expected ErrServerError, got %v", err)
	}
}

func TestFetchFragmentMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json at all`},
		{"missing id", `{"index": 0, "text": "x"}`},
		{"missing index", `{"id": 1, "text": "x"}`},
		{"missing text", `{"id": 1, "index": 0}`},
		{"negative index", `{"id": 1, "index": -2, "text": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, DefaultOptions())
			_, err := client.FetchFragment(context.Background(), 1)
			if !errors.Is(err, ErrBadResponse) {
				t.Errorf("expected ErrBadResponse, got %v", err)
			}
		})
	}
}

func TestFetchFragmentTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond

	client := NewClient(server.URL, opts)
	start := time.Now()
	_, err := client.FetchFragment(context.Background(), 1)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestFetchFragmentContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, DefaultOptions())
	_, err := client.FetchFragment(ctx, 1)
	if err == nil {
		t.Error("expected error due to context cancellation")
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fragment" {
			t.Errorf("expected path /fragment, got %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 1, "index": 0, "text": "x"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", DefaultOptions())
	if _, err := client.FetchFragment(context.Background(), 1); err != nil {
		t.Fatalf("FetchFragment: %v", err)
	}
}
