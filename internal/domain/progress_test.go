package domain

import (
	"testing"
	"time"
)

func TestMakeWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	w := MakeWindow(now, 7)
	if len(w) != 7 {
		t.Fatalf("expected 7 records, got %d", len(w))
	}
	if w[0].Date != "2024-03-04" {
		t.Errorf("expected oldest day 2024-03-04, got %s", w[0].Date)
	}
	if w[6].Date != "2024-03-10" {
		t.Errorf("expected newest day 2024-03-10, got %s", w[6].Date)
	}
	if w[6].Label != "Mar 10" {
		t.Errorf("expected label 'Mar 10', got %q", w[6].Label)
	}
	for _, r := range w {
		if r.Minutes != 0 {
			t.Errorf("expected zeroed minutes, got %d on %s", r.Minutes, r.Date)
		}
	}
}

func TestLogSession(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	p := NewProgress(now)

	p.LogSession(now, 25)
	p.LogSession(now, 5)

	if p.TotalMinutes != 30 {
		t.Errorf("TotalMinutes = %d, want 30", p.TotalMinutes)
	}
	if p.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", p.Sessions)
	}
	if p.LastSessionDate != "2024-03-10" {
		t.Errorf("LastSessionDate = %q, want 2024-03-10", p.LastSessionDate)
	}

	last7 := p.Last7Days[len(p.Last7Days)-1]
	if last7.Minutes != 30 {
		t.Errorf("today's 7-day slot = %d minutes, want 30", last7.Minutes)
	}
	last30 := p.Last30Days[len(p.Last30Days)-1]
	if last30.Minutes != 30 {
		t.Errorf("today's 30-day slot = %d minutes, want 30", last30.Minutes)
	}
}

func TestAdvanceStreak(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return d
	}

	testCases := []struct {
		name     string
		last     string
		streak   int
		now      string
		expected int
	}{
		{"first session ever", "", 0, "2024-03-10", 1},
		{"same day keeps streak", "2024-03-10", 4, "2024-03-10", 4},
		{"next day extends", "2024-03-09", 4, "2024-03-10", 5},
		{"gap resets", "2024-03-01", 9, "2024-03-10", 1},
	}

	for _, tc := range testCases {
		p := Progress{StreakDays: tc.streak, LastSessionDate: tc.last}
		p.AdvanceStreak(day(tc.now))
		if p.StreakDays != tc.expected {
			t.Errorf("%s: StreakDays = %d, want %d", tc.name, p.StreakDays, tc.expected)
		}
		if p.LastSessionDate != tc.now {
			t.Errorf("%s: LastSessionDate = %q, want %q", tc.name, p.LastSessionDate, tc.now)
		}
	}
}

func TestCourseTouch(t *testing.T) {
	c := Course{ID: "c1", Title: "Go", UpdatedAt: 100}
	before := time.Now().UnixMilli()
	c.Touch()
	if c.UpdatedAt < before {
		t.Errorf("Touch did not refresh UpdatedAt: %d < %d", c.UpdatedAt, before)
	}
}
