package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const backupsSubdir = "backups"

// DirSink writes snapshots under <root>/backups. Only the root path is
// ever persisted (as a label in settings); access is re-validated on
// every write, so a revoked grant shows up as ErrPermission here rather
// than at directory-selection time.
type DirSink struct {
	root string
}

// NewDirSink wraps a user-chosen directory.
func NewDirSink(root string) *DirSink { return &DirSink{root: root} }

func (d *DirSink) Name() string { return "dir:" + d.root }

func (d *DirSink) Write(_ context.Context, filename string, data []byte) error {
	info, err := os.Stat(d.root)
	if err != nil {
		return wrapFSErr(fmt.Errorf("backup root %s: %w", d.root, err))
	}
	if !info.IsDir() {
		return fmt.Errorf("backup root %s is not a directory", d.root)
	}

	dir := filepath.Join(d.root, backupsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrapFSErr(fmt.Errorf("create %s: %w", dir, err))
	}
	dest := filepath.Join(dir, filename)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return wrapFSErr(fmt.Errorf("write %s: %w", dest, err))
	}
	return nil
}

func wrapFSErr(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermission, err)
	}
	return err
}
