package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/config"
	"learning-planner/internal/domain"
	"learning-planner/internal/roadmap"
	"learning-planner/internal/store"
)

func main() {
	var (
		subject = flag.String("subject", "", "subject to learn (required)")
		goals   = flag.String("goals", "", "learning goals")
		days    = flag.Int("days", 30, "total duration in days")
		hours   = flag.Int("hours", 7, "study hours per week")
		remote  = flag.Bool("remote", false, "use the remote generation service (ROADMAP_API_URL)")
	)
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	req := roadmap.Request{
		Subject:      *subject,
		Goals:        *goals,
		DurationDays: *days,
		HoursPerWeek: *hours,
	}

	var rm domain.Roadmap
	if *remote {
		if cfg.RoadmapAPIURL == "" {
			log.Fatal("-remote requires ROADMAP_API_URL to be set")
		}
		client := roadmap.NewClient(cfg.RoadmapAPIURL, &http.Client{Timeout: 90 * time.Second}, logger)
		rm = client.Generate(ctx, req)
	} else {
		rm = roadmap.Heuristic(req)
	}

	db, err := store.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.PutOne(ctx, db, store.Roadmaps, store.RoadmapID, rm); err != nil {
		log.Fatal(err)
	}

	log.Printf("generated roadmap for %q: %d modules over %d days", rm.Subject, len(rm.Modules), rm.TotalDurationDays)
	for i, m := range rm.Modules {
		log.Printf("  %2d. %s (%dd)", i+1, m.Title, m.DurationDays)
	}
}
