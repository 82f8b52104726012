package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/config"
	"learning-planner/internal/snapshot"
	"learning-planner/internal/store"
)

func main() {
	var (
		outPath = flag.String("out", "", "output path (default learning-data-<date>.json/.enc)")
		encrypt = flag.Bool("encrypt", false, "encrypt the export with PLANNER_EXPORT_PASSWORD")
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

	if *encrypt && cfg.ExportPass == "" {
		log.Fatal("-encrypt requires PLANNER_EXPORT_PASSWORD to be set")
	}

	db, err := store.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	data, err := snapshot.Export(ctx, db, snapshot.Options{Encrypt: *encrypt, Password: cfg.ExportPass})
	if err != nil {
		log.Fatal(err)
	}

	path := *outPath
	if path == "" {
		path = snapshot.Filename(time.Now(), *encrypt)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d bytes to %s (encrypted=%v)", len(data), path, *encrypt)
}
