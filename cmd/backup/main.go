package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/backup"
	"learning-planner/internal/config"
	"learning-planner/internal/snapshot"
	"learning-planner/internal/store"
)

func main() {
	var (
		dirOverride = flag.String("dir", "", "local backup directory (overrides PLANNER_BACKUP_DIR)")
		encrypt     = flag.Bool("encrypt", false, "encrypt the snapshot with PLANNER_EXPORT_PASSWORD")
		compress    = flag.Bool("compress", false, "brotli-compress the snapshot")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if *dirOverride != "" {
		cfg.BackupDir = *dirOverride
	}
	if *encrypt && cfg.ExportPass == "" {
		log.Fatal("-encrypt requires PLANNER_EXPORT_PASSWORD to be set")
	}

	var sinks []backup.Sink
	if cfg.BackupDir != "" {
		sinks = append(sinks, backup.NewDirSink(cfg.BackupDir))
	}
	if cfg.HasSFTP() {
		sink, err := backup.NewSFTPSink(backup.SFTPConfig{
			Host:      cfg.SFTPHost,
			Port:      cfg.SFTPPort,
			User:      cfg.SFTPUser,
			Pass:      cfg.SFTPPass,
			RemoteDir: cfg.SFTPRemoteDir,
		})
		if err != nil {
			log.Fatal(err)
		}
		sinks = append(sinks, sink)
	}
	if len(sinks) == 0 {
		log.Fatal("no backup sinks configured; set PLANNER_BACKUP_DIR or SFTP_HOST/SFTP_USER")
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

	filename := snapshot.Filename(time.Now(), *encrypt)
	if *compress {
		data, err = snapshot.Compress(data)
		if err != nil {
			log.Fatal(err)
		}
		filename += ".br"
	}

	if err := backup.WriteAll(ctx, sinks, filename, data); err != nil {
		log.Fatal(err)
	}
	log.Printf("backed up %s (%d bytes) to %d sink(s)", filename, len(data), len(sinks))
}
