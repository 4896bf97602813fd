package campusapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-dashboard/internal/domain/records"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Campus-Key") != "k-1" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"courses":[{"id":1,"facultyId":42}]}`))
	})
	mux.HandleFunc("/v2/announcements", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"announcements":[]}`))
	})
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestClient_Fetch(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c, err := NewClient(Config{
		BaseURL:      ts.URL,
		APIKey:       "k-1",
		APIKeyHeader: "X-Campus-Key",
		Timeout:      time.Second,
		Paths:        map[records.Collection]string{records.CollectionAnnouncements: "/v2/announcements"},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	raw, err := c.Fetch(context.Background(), records.CollectionCourses)
	if err != nil {
		t.Fatalf("Fetch courses: %v", err)
	}
	courses, err := records.DecodeCourses(raw)
	if err != nil || len(courses) != 1 {
		t.Fatalf("expected 1 decoded course, got %d err=%v", len(courses), err)
	}

	if _, err := c.Fetch(context.Background(), records.CollectionAnnouncements); err != nil {
		t.Fatalf("Fetch announcements on custom path: %v", err)
	}

	_, err = c.Fetch(context.Background(), records.CollectionEvents)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for 500, got %v", err)
	}
}

func TestClient_Fetch_Unauthorized(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "wrong", APIKeyHeader: "X-Campus-Key"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Fetch(context.Background(), records.CollectionCourses); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.IsConfigured() {
		t.Fatalf("expected client without BaseURL to be unconfigured")
	}
	if _, err := c.Fetch(context.Background(), records.CollectionCourses); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL
	ts.Close()

	c, err := NewClient(Config{BaseURL: url, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Fetch(context.Background(), records.CollectionEvents); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on transport error, got %v", err)
	}
}
