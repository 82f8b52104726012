package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/config"
	"learning-planner/internal/domain"
	"learning-planner/internal/export"
	"learning-planner/internal/store"
)

func main() {
	var (
		outDir = flag.String("dir", ".", "directory to write csv files into")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	courses, err := store.All[domain.Course](ctx, db, store.Courses)
	if err != nil {
		log.Fatal(err)
	}
	progress, _, err := store.One[domain.Progress](ctx, db, store.Progress, store.ProgressID)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now()

	coursesPath := filepath.Join(*outDir, export.CSVFilename("courses", now))
	if err := writeCSV(coursesPath, func(f *os.File) error {
		return export.WriteCoursesCSV(f, courses)
	}); err != nil {
		log.Fatal(err)
	}

	progressPath := filepath.Join(*outDir, export.CSVFilename("progress", now))
	if err := writeCSV(progressPath, func(f *os.File) error {
		return export.WriteProgressCSV(f, progress.Last30Days)
	}); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d courses to %s and %d day records to %s",
		len(courses), coursesPath, len(progress.Last30Days), progressPath)
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
