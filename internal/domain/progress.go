package domain

import "time"

// DayRecord is one day inside a rolling study window.
type DayRecord struct {
	Date    string `json:"date"`  // yyyy-mm-dd
	Label   string `json:"label"` // short display label, e.g. "Jan 2"
	Minutes int    `json:"minutes"`
}

// Progress is the singleton study-progress record. The numeric aggregates
// are cumulative counters: they only ever grow, both under session
// logging and under merge-import.
type Progress struct {
	StreakDays      int         `json:"streakDays"`
	LastSessionDate string      `json:"lastSessionDate,omitempty"` // yyyy-mm-dd
	TotalMinutes    int         `json:"totalMinutes"`
	Sessions        int         `json:"sessions"`
	Last7Days       []DayRecord `json:"last7Days"`
	Last30Days      []DayRecord `json:"last30Days"`
}

const dayKeyLayout = "2006-01-02"

// DayKey formats t as the yyyy-mm-dd key used by the rolling windows.
// ISO date strings compare lexicographically in chronological order,
// which the merge engine relies on.
func DayKey(t time.Time) string { return t.UTC().Format(dayKeyLayout) }

// NewProgress returns an empty progress record with zeroed rolling
// windows ending at now.
func NewProgress(now time.Time) Progress {
	return Progress{
		Last7Days:  MakeWindow(now, 7),
		Last30Days: MakeWindow(now, 30),
	}
}

// MakeWindow builds a zeroed window of the given length ending at now,
// oldest day first.
func MakeWindow(now time.Time, days int) []DayRecord {
	out := make([]DayRecord, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		out = append(out, DayRecord{Date: DayKey(d), Label: d.UTC().Format("Jan 2")})
	}
	return out
}

// LogSession adds one study session to the totals and to today's slot in
// both rolling windows. Days outside the windows are ignored.
func (p *Progress) LogSession(now time.Time, minutes int) {
	key := DayKey(now)
	p.TotalMinutes += minutes
	p.Sessions++
	bump := func(w []DayRecord) {
		for i := range w {
			if w[i].Date == key {
				w[i].Minutes += minutes
				return
			}
		}
	}
	bump(p.Last7Days)
	bump(p.Last30Days)
	p.LastSessionDate = key
}

// AdvanceStreak updates the day streak for a session happening now: a
// second session on the same day keeps the streak, a session on the next
// day extends it, any larger gap resets it to one.
func (p *Progress) AdvanceStreak(now time.Time) {
	today := DayKey(now)
	if p.LastSessionDate == "" {
		p.StreakDays = 1
		p.LastSessionDate = today
		return
	}
	prev, err := time.Parse(dayKeyLayout, p.LastSessionDate)
	if err != nil {
		p.StreakDays = 1
		p.LastSessionDate = today
		return
	}
	cur, _ := time.Parse(dayKeyLayout, today)
	switch int(cur.Sub(prev).Hours() / 24) {
	case 0:
		// already counted today
	case 1:
		p.StreakDays++
	default:
		p.StreakDays = 1
	}
	p.LastSessionDate = today
}
