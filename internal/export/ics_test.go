package export

import (
	"strings"
	"testing"
	"time"

	"learning-planner/internal/domain"
)

func TestWriteScheduleICS(t *testing.T) {
	roadmap := domain.Roadmap{
		ID:      "r1",
		Subject: "Go",
		Modules: []domain.CourseModule{
			{ID: "m1", Title: "Basics", Description: "vars, funcs", DurationDays: 3},
			{ID: "m2", Title: "Concurrency; channels", DurationDays: 5},
			{ID: "m3", Title: "Project", DurationDays: 2},
		},
	}
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	var sb strings.Builder
	if err := WriteScheduleICS(&sb, roadmap, start); err != nil {
		t.Fatalf("WriteScheduleICS: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR start")
	}
	if strings.Count(out, "BEGIN:VEVENT") != 3 {
		t.Errorf("expected 3 events:\n%s", out)
	}

	// starts are cumulative: m1 day 0, m2 day 3, m3 day 8
	for _, want := range []string{
		"UID:m1@learning-planner",
		"DTSTART:20240310T000000Z",
		"UID:m2@learning-planner",
		"DTSTART:20240313T000000Z",
		"UID:m3@learning-planner",
		"DTSTART:20240318T000000Z",
		"DTEND:20240320T000000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	// description comma and title semicolon must be escaped
	if !strings.Contains(out, `DESCRIPTION:vars\, funcs`) {
		t.Errorf("comma not escaped:\n%s", out)
	}
	if !strings.Contains(out, `SUMMARY:Concurrency\; channels`) {
		t.Errorf("semicolon not escaped:\n%s", out)
	}
}

func TestICSZeroDurationDefaultsToOneDay(t *testing.T) {
	roadmap := domain.Roadmap{
		Modules: []domain.CourseModule{
			{ID: "m1", Title: "A"},
			{ID: "m2", Title: "B", DurationDays: 2},
		},
	}
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	var sb strings.Builder
	if err := WriteScheduleICS(&sb, roadmap, start); err != nil {
		t.Fatalf("WriteScheduleICS: %v", err)
	}
	if !strings.Contains(sb.String(), "DTSTART:20240311T000000Z") {
		t.Errorf("second module must start one day in:\n%s", sb.String())
	}
}
