package roadmap

import (
	"context"
	"math"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learning-planner/internal/domain"
	"learning-planner/internal/httpx"
)

// Client asks a remote generation service for a roadmap, falling back
// to the heuristic when the service is unreachable or returns an
// unusable shape.
type Client struct {
	url    string
	client *http.Client
	log    *zap.Logger
	retry  httpx.RetryConfig
}

func NewClient(url string, client *http.Client, log *zap.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{url: url, client: client, log: log, retry: httpx.DefaultRetryConfig()}
}

type remoteModule struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DurationDays  float64  `json:"durationDays"`
	Prerequisites []string `json:"prerequisites"`
}

type remoteResponse struct {
	Modules []remoteModule `json:"modules"`
}

// Generate returns a remote roadmap when possible, the heuristic one
// otherwise. The returned roadmap is always usable.
func (c *Client) Generate(ctx context.Context, req Request) domain.Roadmap {
	req.applyDefaults()
	if c.url == "" {
		return Heuristic(req)
	}

	var resp remoteResponse
	if err := httpx.PostJSON(ctx, c.client, c.url, req, &resp, c.retry); err != nil {
		c.log.Warn("remote roadmap generation failed, using heuristic",
			zap.String("subject", req.Subject), zap.Error(err))
		return Heuristic(req)
	}
	if len(resp.Modules) == 0 {
		c.log.Warn("remote roadmap response had no modules, using heuristic",
			zap.String("subject", req.Subject))
		return Heuristic(req)
	}

	return normalize(req, resp.Modules)
}

// normalize applies the same bounds the original service enforced: at
// most 12 modules, durations clamped to [1, 28], prerequisites
// truncated to 3.
func normalize(req Request, raw []remoteModule) domain.Roadmap {
	if len(raw) > 12 {
		raw = raw[:12]
	}

	fallbackDur := int(math.Round(float64(req.DurationDays) / 8))
	if fallbackDur < 1 {
		fallbackDur = 1
	}

	modules := make([]domain.CourseModule, len(raw))
	total := 0
	for i, m := range raw {
		title := m.Title
		if title == "" {
			title = "Module"
		}
		dur := int(math.Round(m.DurationDays))
		if m.DurationDays <= 0 {
			dur = fallbackDur
		}
		if dur < 1 {
			dur = 1
		}
		if dur > 28 {
			dur = 28
		}
		prereqs := m.Prerequisites
		if len(prereqs) > 3 {
			prereqs = prereqs[:3]
		}
		modules[i] = domain.CourseModule{
			ID:            uuid.NewString(),
			Title:         title,
			Description:   m.Description,
			DurationDays:  dur,
			Prerequisites: prereqs,
		}
		total += dur
	}

	return domain.Roadmap{
		ID:                uuid.NewString(),
		Subject:           req.Subject,
		Modules:           modules,
		TotalDurationDays: total,
		CreatedAt:         domain.NowMillis(),
	}
}
