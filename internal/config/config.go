package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Local persistence
	DBPath     string
	Debounce   time.Duration
	BackupDir  string
	ExportPass string

	// Roadmap generation service
	RoadmapAPIURL string

	// SFTP backup sink
	SFTPHost      string
	SFTPPort      int
	SFTPUser      string
	SFTPPass      string
	SFTPRemoteDir string
}

func Load() Config {
	return Config{
		DBPath:     getenv("PLANNER_DB_PATH", "planner.db"),
		Debounce:   time.Duration(getenvInt("PLANNER_DEBOUNCE_MS", 500)) * time.Millisecond,
		BackupDir:  os.Getenv("PLANNER_BACKUP_DIR"),
		ExportPass: os.Getenv("PLANNER_EXPORT_PASSWORD"),

		RoadmapAPIURL: os.Getenv("ROADMAP_API_URL"),

		SFTPHost:      os.Getenv("SFTP_HOST"),
		SFTPPort:      getenvInt("SFTP_PORT", 22),
		SFTPUser:      os.Getenv("SFTP_USER"),
		SFTPPass:      os.Getenv("SFTP_PASS"),
		SFTPRemoteDir: getenv("SFTP_REMOTE_DIR", "/"),
	}
}

// HasSFTP reports whether enough SFTP settings are present to build a
// remote backup sink.
func (c Config) HasSFTP() bool {
	return c.SFTPHost != "" && c.SFTPUser != ""
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
