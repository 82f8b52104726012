// Package backup persists already-produced snapshot bytes to one or
// more sinks: a user-chosen local directory and, optionally, a remote
// SFTP host. Sinks always write into a fixed "backups" subfolder and
// fully overwrite the destination file.
package backup

import (
	"context"
	"errors"
	"fmt"

	"learning-planner/internal/parallel"
)

// ErrPermission marks a write denied by the host: the directory grant
// was revoked or the remote rejected us. Surfaced at write time, never
// at selection time.
var ErrPermission = errors.New("backup: permission denied")

// Sink writes one named snapshot.
type Sink interface {
	Name() string
	Write(ctx context.Context, filename string, data []byte) error
}

// WriteAll fans the same snapshot out to every sink. All sinks are
// attempted; failures are joined so one broken sink never hides another.
func WriteAll(ctx context.Context, sinks []Sink, filename string, data []byte) error {
	_, errs := parallel.Run(ctx, sinks, parallel.Options{MaxWorkers: 4},
		func(ctx context.Context, _ int, sink Sink) (struct{}, error) {
			if err := sink.Write(ctx, filename, data); err != nil {
				return struct{}{}, fmt.Errorf("%s: %w", sink.Name(), err)
			}
			return struct{}{}, nil
		})
	return errors.Join(errs...)
}
