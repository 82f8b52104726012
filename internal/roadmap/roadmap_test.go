package roadmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learning-planner/internal/httpx"
)

func TestHeuristicDefaults(t *testing.T) {
	rm := Heuristic(Request{Subject: "Go"})

	if len(rm.Modules) != 6 {
		t.Fatalf("expected 6 modules for 30 days, got %d", len(rm.Modules))
	}
	if rm.Subject != "Go" {
		t.Errorf("expected subject Go, got %q", rm.Subject)
	}
	if rm.TotalDurationDays != 30 {
		t.Errorf("expected 30 total days, got %d", rm.TotalDurationDays)
	}
	if rm.ID == "" || rm.CreatedAt == 0 {
		t.Error("expected id and createdAt to be set")
	}
	for i, m := range rm.Modules {
		if m.DurationDays != 5 {
			t.Errorf("module %d: expected 5 days, got %d", i, m.DurationDays)
		}
		if !strings.HasPrefix(m.Title, "Go: ") {
			t.Errorf("module %d: expected subject prefix, got %q", i, m.Title)
		}
	}
	if len(rm.Modules[0].Prerequisites) != 0 {
		t.Errorf("first module should have no prerequisites, got %v", rm.Modules[0].Prerequisites)
	}
	if got := rm.Modules[1].Prerequisites; len(got) != 1 || got[0] != "Fundamentals" {
		t.Errorf("second module should require Fundamentals, got %v", got)
	}
}

func TestHeuristicModuleCountClamped(t *testing.T) {
	cases := []struct {
		days  int
		count int
	}{
		{7, 6},   // round(7/5)=1, clamped up
		{40, 8},  // round(40/5)=8
		{90, 10}, // round(90/5)=18, clamped down
	}
	for _, tc := range cases {
		rm := Heuristic(Request{Subject: "x", DurationDays: tc.days})
		if len(rm.Modules) != tc.count {
			t.Errorf("days=%d: expected %d modules, got %d", tc.days, tc.count, len(rm.Modules))
		}
	}
}

func TestHeuristicRemainderOnLastModule(t *testing.T) {
	rm := Heuristic(Request{Subject: "x", DurationDays: 32})
	n := len(rm.Modules)
	if n != 6 {
		t.Fatalf("expected 6 modules, got %d", n)
	}
	if rm.Modules[n-1].DurationDays != 7 {
		t.Errorf("expected last module to absorb remainder (7 days), got %d", rm.Modules[n-1].DurationDays)
	}
	if rm.TotalDurationDays != 32 {
		t.Errorf("expected total 32, got %d", rm.TotalDurationDays)
	}
}

func TestHeuristicGoalsInDescription(t *testing.T) {
	rm := Heuristic(Request{Subject: "x", Goals: "ship a service"})
	if !strings.Contains(rm.Modules[0].Description, "Focus: ship a service") {
		t.Errorf("expected goals in description, got %q", rm.Modules[0].Description)
	}
}

func fastRetry() httpx.RetryConfig {
	return httpx.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestClientNormalizesRemoteModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modules":[
			{"title":"Basics","description":"d","durationDays":3,"prerequisites":[]},
			{"title":"","durationDays":100,"prerequisites":["a","b","c","d","e"]},
			{"title":"Wrap-up","durationDays":0}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	c.retry = fastRetry()
	rm := c.Generate(context.Background(), Request{Subject: "Rust", DurationDays: 16})

	if len(rm.Modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(rm.Modules))
	}
	if rm.Modules[0].DurationDays != 3 {
		t.Errorf("expected 3 days, got %d", rm.Modules[0].DurationDays)
	}
	if rm.Modules[1].Title != "Module" {
		t.Errorf("expected empty title to default, got %q", rm.Modules[1].Title)
	}
	if rm.Modules[1].DurationDays != 28 {
		t.Errorf("expected duration clamped to 28, got %d", rm.Modules[1].DurationDays)
	}
	if len(rm.Modules[1].Prerequisites) != 3 {
		t.Errorf("expected prerequisites truncated to 3, got %d", len(rm.Modules[1].Prerequisites))
	}
	// zero duration falls back to round(16/8) = 2
	if rm.Modules[2].DurationDays != 2 {
		t.Errorf("expected fallback duration 2, got %d", rm.Modules[2].DurationDays)
	}
	if rm.TotalDurationDays != 3+28+2 {
		t.Errorf("expected total 33, got %d", rm.TotalDurationDays)
	}
}

func TestClientCapsModuleCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modules":[` + strings.Repeat(`{"title":"m","durationDays":1},`, 14) + `{"title":"m","durationDays":1}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	c.retry = fastRetry()
	rm := c.Generate(context.Background(), Request{Subject: "x"})
	if len(rm.Modules) != 12 {
		t.Errorf("expected cap at 12 modules, got %d", len(rm.Modules))
	}
}

func TestClientFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	c.retry = fastRetry()
	rm := c.Generate(context.Background(), Request{Subject: "Go", DurationDays: 30})
	if len(rm.Modules) != 6 {
		t.Errorf("expected heuristic fallback with 6 modules, got %d", len(rm.Modules))
	}
}

func TestClientFallsBackOnEmptyModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modules":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	c.retry = fastRetry()
	rm := c.Generate(context.Background(), Request{Subject: "Go"})
	if len(rm.Modules) == 0 {
		t.Error("expected heuristic fallback, got empty roadmap")
	}
}

func TestClientWithoutURLUsesHeuristic(t *testing.T) {
	c := NewClient("", nil, nil)
	rm := c.Generate(context.Background(), Request{Subject: "Go"})
	if len(rm.Modules) != 6 {
		t.Errorf("expected heuristic roadmap, got %d modules", len(rm.Modules))
	}
}
