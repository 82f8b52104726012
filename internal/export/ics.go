package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"learning-planner/internal/domain"
)

const icsTimeLayout = "20060102T150405Z"

// WriteScheduleICS writes one VEVENT per roadmap module. Module start
// dates are sequential: each module begins where the cumulative duration
// of all prior modules ends, and spans its own durationDays.
func WriteScheduleICS(w io.Writer, roadmap domain.Roadmap, start time.Time) error {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Learning Planner//EN",
		"X-WR-CALNAME:" + escapeICSText(calendarName(roadmap)),
	}

	stamp := time.Now().UTC().Format(icsTimeLayout)
	offsetDays := 0
	for _, m := range roadmap.Modules {
		duration := m.DurationDays
		if duration < 1 {
			duration = 1
		}
		evStart := start.AddDate(0, 0, offsetDays)
		evEnd := evStart.AddDate(0, 0, duration)
		offsetDays += duration

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+m.ID+"@learning-planner",
			"DTSTAMP:"+stamp,
			"DTSTART:"+evStart.UTC().Format(icsTimeLayout),
			"DTEND:"+evEnd.UTC().Format(icsTimeLayout),
			"SUMMARY:"+escapeICSText(m.Title),
			"DESCRIPTION:"+escapeICSText(m.Description),
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")

	_, err := io.WriteString(w, strings.Join(lines, "\r\n")+"\r\n")
	return err
}

func calendarName(r domain.Roadmap) string {
	if r.Subject == "" {
		return "Learning Planner"
	}
	return fmt.Sprintf("Learning Planner: %s", r.Subject)
}

// escapeICSText escapes the characters the iCalendar TEXT type reserves.
func escapeICSText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, ";", `\;`)
	return s
}
