// Package roadmap builds learning roadmaps, either deterministically or
// by calling an external generation service.
package roadmap

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"learning-planner/internal/domain"
)

// Request describes the roadmap to build.
type Request struct {
	Subject      string `json:"subject"`
	Goals        string `json:"goals,omitempty"`
	DurationDays int    `json:"durationDays"`
	HoursPerWeek int    `json:"hoursPerWeek"`
}

func (r *Request) applyDefaults() {
	if r.DurationDays <= 0 {
		r.DurationDays = 30
	}
	if r.HoursPerWeek <= 0 {
		r.HoursPerWeek = 7
	}
}

var topics = []string{
	"Fundamentals",
	"Core Concepts",
	"Hands-on Practice",
	"Advanced Topics",
	"Ecosystem & Tools",
	"Performance & Testing",
	"Project Build",
	"Deployment",
	"Best Practices",
	"Capstone Review",
}

// Heuristic generates a roadmap without any remote call. Module count is
// roughly one per five days, clamped to [6, 10]; the duration remainder
// lands on the last module.
func Heuristic(req Request) domain.Roadmap {
	req.applyDefaults()
	days := req.DurationDays

	count := int(math.Round(float64(days) / 5))
	if count < 6 {
		count = 6
	}
	if count > 10 {
		count = 10
	}
	baseDur := days / count
	if baseDur < 1 {
		baseDur = 1
	}

	modules := make([]domain.CourseModule, count)
	for i := range modules {
		topic := fmt.Sprintf("Module %d", i+1)
		if i < len(topics) {
			topic = topics[i]
		}
		desc := topic + " overview and exercises."
		if req.Goals != "" {
			desc = fmt.Sprintf("Focus: %s. %s.", req.Goals, topic)
		}
		dur := baseDur
		if i == count-1 {
			if rest := days - baseDur*(count-1); rest > dur {
				dur = rest
			}
		}
		var prereqs []string
		if i > 0 && i-1 < len(topics) {
			prereqs = []string{topics[i-1]}
		}
		modules[i] = domain.CourseModule{
			ID:            uuid.NewString(),
			Title:         fmt.Sprintf("%s: %s", req.Subject, topic),
			Description:   desc,
			DurationDays:  dur,
			Prerequisites: prereqs,
		}
	}

	total := 0
	for _, m := range modules {
		total += m.DurationDays
	}
	return domain.Roadmap{
		ID:                uuid.NewString(),
		Subject:           req.Subject,
		Modules:           modules,
		TotalDurationDays: total,
		CreatedAt:         domain.NowMillis(),
	}
}
