// Package export writes the planner's flat-file formats: CSV summaries
// of courses and progress, and an iCalendar schedule for the roadmap.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"learning-planner/internal/domain"
)

// Keep header order EXACT: downstream spreadsheets key on positions.
var coursesHeader = []string{
	"id",
	"title",
	"description",
	"url",
	"status",
	"tags",
	"estimatedHours",
	"completedHours",
	"updatedAt",
}

var progressHeader = []string{"date", "label", "minutes"}

// WriteCoursesCSV writes one row per course. Tags are pipe-joined;
// quoting follows standard CSV rules via encoding/csv.
func WriteCoursesCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(coursesHeader); err != nil {
		return err
	}
	for _, c := range courses {
		row := []string{
			c.ID,
			c.Title,
			c.Description,
			c.URL,
			c.Status,
			strings.Join(c.Tags, "|"),
			floatToString(c.EstimatedHours),
			floatToString(c.CompletedHours),
			strconv.FormatInt(c.UpdatedAt, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProgressCSV writes the per-day study minutes, one row per day of
// the given window (conventionally the 30-day one).
func WriteProgressCSV(w io.Writer, days []domain.DayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(progressHeader); err != nil {
		return err
	}
	for _, d := range days {
		if err := cw.Write([]string{d.Date, d.Label, strconv.Itoa(d.Minutes)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename returns the conventional per-collection filename, e.g.
// courses-2024-03-10.csv.
func CSVFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", name, now.UTC().Format("2006-01-02"))
}

func floatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
