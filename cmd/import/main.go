package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/config"
	"learning-planner/internal/merge"
	"learning-planner/internal/snapshot"
	"learning-planner/internal/store"
)

func main() {
	var (
		inPath = flag.String("in", "", "bundle file to import (required)")
		mode   = flag.String("mode", "merge", "import mode: replace or merge")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("-in is required")
	}
	importMode, err := merge.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatal(err)
	}
	bundle, err := snapshot.Import(data, cfg.ExportPass)
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := merge.Apply(ctx, db, bundle, importMode); err != nil {
		log.Fatal(err)
	}

	courses, err := store.All[struct{}](ctx, db, store.Courses)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf(
		"imported %s (exported %s, mode=%s): %d courses in bundle, %d courses in store, %d presentations",
		*inPath, bundle.ExportDate, importMode, len(bundle.Courses), len(courses), len(bundle.Presentations),
	)
}
