package domain

// Roadmap is the singleton learning roadmap, distinct from per-course
// modules. It is replaced wholesale on generation; at most one current
// roadmap exists in the store at a time.
type Roadmap struct {
	ID                string         `json:"id"`
	Subject           string         `json:"subject"`
	Modules           []CourseModule `json:"modules"`
	TotalDurationDays int            `json:"totalDurationDays"`
	CreatedAt         int64          `json:"createdAt"`
}

// IsZero reports whether no roadmap has been generated yet.
func (r Roadmap) IsZero() bool { return r.ID == "" }
