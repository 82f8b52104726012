package domain

import "time"

// Course lifecycle states.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// CourseModule is one step of a course's learning plan. Modules are owned
// by exactly one course and are replaced wholesale when a roadmap is
// regenerated for that course.
type CourseModule struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	DurationDays  int      `json:"durationDays,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Completed     bool     `json:"completed,omitempty"`
}

// Course is the canonical representation of a tracked course. Timestamps
// are epoch milliseconds so they compare directly with values written by
// older exports.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"` // planned | in-progress | completed
	Image       string   `json:"image,omitempty"`

	// Enriched metadata, filled in by import or by external tooling.
	Provider    string  `json:"provider,omitempty"`
	Author      string  `json:"author,omitempty"`
	Level       string  `json:"level,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
	Price       string  `json:"price,omitempty"`
	Language    string  `json:"language,omitempty"`

	// Learning plan and generated content.
	Modules              []CourseModule `json:"modules"`
	PresentationMarkdown string         `json:"presentationMarkdown,omitempty"`

	// Aggregates
	EstimatedHours   float64 `json:"estimatedHours"`
	CompletedHours   float64 `json:"completedHours"`
	CreatedAt        int64   `json:"createdAt"`
	UpdatedAt        int64   `json:"updatedAt"`
	TimeTotalMinutes int     `json:"timeTotalMinutes,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// NowMillis returns the current time as epoch milliseconds, the unit used
// for all createdAt/updatedAt fields.
func NowMillis() int64 { return time.Now().UnixMilli() }

// Touch refreshes the course's modification timestamp. Every mutation to
// a course must go through Touch so merge conflict resolution stays
// meaningful.
func (c *Course) Touch() { c.UpdatedAt = NowMillis() }
