// Package snapshot produces and consumes export bundles: the versioned
// JSON envelope holding the full application state, optionally
// password-encrypted. The codec never writes to the store; applying an
// imported bundle is the merge engine's job.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learning-planner/internal/domain"
	"learning-planner/internal/store"
)

// Import failure taxonomy. The caller needs to distinguish these: a bad
// password is retried, a corrupt file is not.
var (
	// ErrParse means the input is not well-formed JSON.
	ErrParse = errors.New("snapshot: invalid JSON")
	// ErrInvalidFormat means well-formed JSON that is not an export bundle.
	ErrInvalidFormat = errors.New("snapshot: invalid export bundle")
	// ErrDecryption means a missing or wrong password, or tampered ciphertext.
	ErrDecryption = errors.New("snapshot: decryption failed")
)

// Options control Export.
type Options struct {
	Encrypt  bool
	Password string
}

// Export reads every bundle collection from the store and serializes the
// assembled bundle. With Encrypt set and a non-empty password the JSON is
// wrapped in the encrypted envelope; salt and nonce are freshly random on
// every call.
func Export(ctx context.Context, s store.Store, opts Options) ([]byte, error) {
	bundle, err := Collect(ctx, s)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode bundle: %w", err)
	}
	if opts.Encrypt && opts.Password != "" {
		return encryptEnvelope(data, opts.Password)
	}
	return data, nil
}

// Collect assembles the current bundle from the store without
// serializing it.
func Collect(ctx context.Context, s store.Store) (*domain.Bundle, error) {
	courses, err := store.All[domain.Course](ctx, s, store.Courses)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read courses: %w", err)
	}
	presentations, err := store.All[domain.Presentation](ctx, s, store.Presentations)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read presentations: %w", err)
	}
	bundle := &domain.Bundle{
		Version:       domain.BundleVersion,
		ExportDate:    time.Now().UTC().Format(time.RFC3339),
		Courses:       courses,
		Presentations: presentations,
	}
	if p, ok, err := store.One[domain.Progress](ctx, s, store.Progress, store.ProgressID); err != nil {
		return nil, fmt.Errorf("snapshot: read progress: %w", err)
	} else if ok {
		bundle.Progress = &p
	}
	// the roadmap singleton is always present in the bundle, zero-valued
	// when none has been generated yet
	r, _, err := store.One[domain.Roadmap](ctx, s, store.Roadmaps, store.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read roadmap: %w", err)
	}
	bundle.Roadmap = &r
	if st, ok, err := store.One[domain.Settings](ctx, s, store.UserData, store.SettingsID); err != nil {
		return nil, fmt.Errorf("snapshot: read settings: %w", err)
	} else if ok {
		bundle.Settings = &st
	}
	return bundle, nil
}

// Import parses a bundle from raw bytes. Brotli-compressed input is
// detected and decompressed transparently. Encrypted envelopes require
// the password. Validation happens before the caller can touch the
// store, so a failed import applies nothing.
func Import(data []byte, password string) (*domain.Bundle, error) {
	var outer json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		// not JSON as-is; it may be a brotli-compressed backup
		plain, ok := tryDecompress(data)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if err := json.Unmarshal(plain, &outer); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	var probe struct {
		Encrypted bool `json:"__encrypted__"`
	}
	// probe failure means a non-object top level, handled by validation
	_ = json.Unmarshal(outer, &probe)
	if probe.Encrypted {
		plain, err := decryptEnvelope(outer, password)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(plain, &outer); err != nil {
			return nil, fmt.Errorf("%w: decrypted payload: %v", ErrParse, err)
		}
	}

	if err := validateBundle(outer); err != nil {
		return nil, err
	}
	var bundle domain.Bundle
	if err := json.Unmarshal(outer, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &bundle, nil
}

// validateBundle enforces the minimal bundle shape: version, exportDate,
// and a list-shaped courses field.
func validateBundle(data json.RawMessage) error {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return fmt.Errorf("%w: not an object", ErrInvalidFormat)
	}
	if _, ok := shape["version"]; !ok {
		return fmt.Errorf("%w: missing version", ErrInvalidFormat)
	}
	if _, ok := shape["exportDate"]; !ok {
		return fmt.Errorf("%w: missing exportDate", ErrInvalidFormat)
	}
	courses, ok := shape["courses"]
	if !ok {
		return fmt.Errorf("%w: missing courses", ErrInvalidFormat)
	}
	trimmed := bytes.TrimSpace(courses)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: courses is not a list", ErrInvalidFormat)
	}
	return nil
}

// Filename returns the conventional export filename for today.
func Filename(now time.Time, encrypted bool) string {
	ext := "json"
	if encrypted {
		ext = "enc"
	}
	return fmt.Sprintf("learning-data-%s.%s", now.UTC().Format("2006-01-02"), ext)
}
