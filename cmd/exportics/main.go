package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/config"
	"learning-planner/internal/domain"
	"learning-planner/internal/export"
	"learning-planner/internal/store"
)

func main() {
	var (
		outPath  = flag.String("out", "learning-schedule.ics", "output ics path")
		startStr = flag.String("start", "", "schedule start date (yyyy-mm-dd, default today)")
	)
	flag.Parse()

	start := time.Now()
	if *startStr != "" {
		parsed, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Fatalf("invalid -start date: %v", err)
		}
		start = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := store.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	roadmap, ok, err := store.One[domain.Roadmap](ctx, db, store.Roadmaps, store.RoadmapID)
	if err != nil {
		log.Fatal(err)
	}
	if !ok || roadmap.IsZero() {
		log.Fatal("no roadmap to export; generate one first")
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := export.WriteScheduleICS(f, roadmap, start); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d modules for %q to %s", len(roadmap.Modules), roadmap.Subject, *outPath)
}
