package export

import (
	"strings"
	"testing"
	"time"

	"learning-planner/internal/domain"
)

func TestWriteCoursesCSV(t *testing.T) {
	courses := []domain.Course{
		{
			ID:             "c1",
			Title:          `Go, the "hard" parts`,
			Description:    "multi\nline",
			URL:            "https://example.com/go",
			Status:         domain.StatusInProgress,
			Tags:           []string{"go", "advanced"},
			EstimatedHours: 12.5,
			CompletedHours: 3,
			UpdatedAt:      1700000000000,
		},
	}

	var sb strings.Builder
	if err := WriteCoursesCSV(&sb, courses); err != nil {
		t.Fatalf("WriteCoursesCSV: %v", err)
	}
	out := sb.String()

	lines := strings.SplitN(out, "\n", 2)
	if lines[0] != "id,title,description,url,status,tags,estimatedHours,completedHours,updatedAt" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, `"Go, the ""hard"" parts"`) {
		t.Errorf("comma/quote fields must be CSV-quoted, got:\n%s", out)
	}
	if !strings.Contains(out, "go|advanced") {
		t.Errorf("tags must be pipe-joined, got:\n%s", out)
	}
	if !strings.Contains(out, "12.5") || !strings.Contains(out, "1700000000000") {
		t.Errorf("numeric fields missing, got:\n%s", out)
	}
}

func TestWriteProgressCSV(t *testing.T) {
	days := []domain.DayRecord{
		{Date: "2024-03-09", Label: "Mar 9", Minutes: 0},
		{Date: "2024-03-10", Label: "Mar 10", Minutes: 45},
	}
	var sb strings.Builder
	if err := WriteProgressCSV(&sb, days); err != nil {
		t.Fatalf("WriteProgressCSV: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "date,label,minutes\n") {
		t.Errorf("header wrong:\n%s", out)
	}
	if !strings.Contains(out, "2024-03-10,Mar 10,45") {
		t.Errorf("row missing:\n%s", out)
	}
}

func TestCSVFilename(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := CSVFilename("courses", now); got != "courses-2024-03-10.csv" {
		t.Errorf("CSVFilename = %q", got)
	}
}
