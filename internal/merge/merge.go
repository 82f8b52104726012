// Package merge reconciles a decoded export bundle into the store under
// a caller-chosen policy. Replace overwrites; Merge reconciles per
// collection with last-write-wins and max-counter semantics.
package merge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"learning-planner/internal/domain"
	"learning-planner/internal/store"
)

// Mode is the import policy.
type Mode string

const (
	// Replace unconditionally overwrites every collection with the
	// bundle's contents. Destructive but idempotent.
	Replace Mode = "replace"
	// Merge reconciles each collection against its existing contents.
	Merge Mode = "merge"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Replace, Merge:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("merge: unknown mode %q (want replace or merge)", s)
	}
}

// Apply writes a validated bundle into the store under the given mode.
// The bundle must come from snapshot.Import, which has already enforced
// the shape: no store mutation happens for an invalid document.
func Apply(ctx context.Context, s store.Store, b *domain.Bundle, mode Mode) error {
	if mode == Replace {
		return applyReplace(ctx, s, b)
	}
	return applyMerge(ctx, s, b)
}

func applyReplace(ctx context.Context, s store.Store, b *domain.Bundle) error {
	if err := store.ReplaceAll(ctx, s, store.Courses, b.Courses, courseID); err != nil {
		return err
	}
	if err := store.ReplaceAll(ctx, s, store.Presentations, b.Presentations, presentationID); err != nil {
		return err
	}
	progress := domain.Progress{}
	if b.Progress != nil {
		progress = *b.Progress
	}
	if err := store.PutOne(ctx, s, store.Progress, store.ProgressID, progress); err != nil {
		return err
	}
	roadmap := domain.Roadmap{}
	if b.Roadmap != nil {
		roadmap = *b.Roadmap
	}
	if err := store.PutOne(ctx, s, store.Roadmaps, store.RoadmapID, roadmap); err != nil {
		return err
	}
	if b.Settings != nil {
		if err := store.PutOne(ctx, s, store.UserData, store.SettingsID, *b.Settings); err != nil {
			return err
		}
	}
	return nil
}

func applyMerge(ctx context.Context, s store.Store, b *domain.Bundle) error {
	if err := mergeCourses(ctx, s, b.Courses); err != nil {
		return err
	}
	if b.Progress != nil {
		if err := mergeProgressRecord(ctx, s, *b.Progress); err != nil {
			return err
		}
	}
	if b.Roadmap != nil {
		if err := mergeRoadmap(ctx, s, *b.Roadmap); err != nil {
			return err
		}
	}
	if len(b.Presentations) > 0 {
		if err := mergePresentations(ctx, s, b.Presentations); err != nil {
			return err
		}
	}
	if b.Settings != nil {
		if err := mergeSettings(ctx, s, *b.Settings); err != nil {
			return err
		}
	}
	return nil
}

// mergeCourses unions by id. On collision the greater updatedAt wins;
// ties favor the imported record (>= comparison).
func mergeCourses(ctx context.Context, s store.Store, imported []domain.Course) error {
	existing, err := store.All[domain.Course](ctx, s, store.Courses)
	if err != nil {
		return fmt.Errorf("merge: read courses: %w", err)
	}
	byID := make(map[string]domain.Course, len(existing))
	for _, c := range existing {
		byID[c.ID] = c
	}
	for _, nc := range imported {
		ex, ok := byID[nc.ID]
		if !ok || nc.UpdatedAt >= ex.UpdatedAt {
			byID[nc.ID] = nc
		}
	}
	merged := make([]domain.Course, 0, len(byID))
	for _, c := range byID {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return store.ReplaceAll(ctx, s, store.Courses, merged, courseID)
}

// mergeProgressRecord takes the max of each cumulative counter, since
// the two records are supersets of each other rather than additive
// logs, and merges the rolling windows by date key.
func mergeProgressRecord(ctx context.Context, s store.Store, imported domain.Progress) error {
	existing, _, err := store.One[domain.Progress](ctx, s, store.Progress, store.ProgressID)
	if err != nil {
		return fmt.Errorf("merge: read progress: %w", err)
	}
	merged := MergeProgress(existing, imported)
	return store.PutOne(ctx, s, store.Progress, store.ProgressID, merged)
}

// MergeProgress reconciles two progress records field by field.
func MergeProgress(existing, imported domain.Progress) domain.Progress {
	out := existing
	out.TotalMinutes = max(existing.TotalMinutes, imported.TotalMinutes)
	out.Sessions = max(existing.Sessions, imported.Sessions)
	out.StreakDays = max(existing.StreakDays, imported.StreakDays)
	out.Last7Days = MergeWindow(existing.Last7Days, imported.Last7Days)
	out.Last30Days = MergeWindow(existing.Last30Days, imported.Last30Days)
	out.LastSessionDate = maxDate(existing.LastSessionDate, imported.LastSessionDate)
	return out
}

// MergeWindow merges two rolling windows by date: a date present on one
// side only is kept as-is, a date present on both keeps the larger
// minute count. The result is sorted ascending by date.
func MergeWindow(a, b []domain.DayRecord) []domain.DayRecord {
	byDate := make(map[string]domain.DayRecord, len(a)+len(b))
	for _, r := range a {
		byDate[r.Date] = r
	}
	for _, r := range b {
		ex, ok := byDate[r.Date]
		if !ok {
			byDate[r.Date] = r
			continue
		}
		ex.Minutes = max(ex.Minutes, r.Minutes)
		byDate[r.Date] = ex
	}
	out := make([]domain.DayRecord, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// maxDate returns the lexicographically greatest non-empty ISO date,
// which for yyyy-mm-dd strings is also the chronologically greatest.
func maxDate(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if b > a {
		return b
	}
	return a
}

// mergeRoadmap keeps the imported roadmap only when the current one is
// absent, the subject changed, or the import has at least as many
// modules. A size/identity heuristic, not a true merge; preserved as-is.
func mergeRoadmap(ctx context.Context, s store.Store, imported domain.Roadmap) error {
	current, ok, err := store.One[domain.Roadmap](ctx, s, store.Roadmaps, store.RoadmapID)
	if err != nil {
		return fmt.Errorf("merge: read roadmap: %w", err)
	}
	useImported := !ok ||
		(imported.Subject != "" && imported.Subject != current.Subject) ||
		len(imported.Modules) >= len(current.Modules)
	if !useImported {
		return nil
	}
	return store.PutOne(ctx, s, store.Roadmaps, store.RoadmapID, imported)
}

// mergePresentations unions by id with first-seen semantics: on
// collision the existing record wins, no timestamp comparison.
func mergePresentations(ctx context.Context, s store.Store, imported []domain.Presentation) error {
	existing, err := store.All[domain.Presentation](ctx, s, store.Presentations)
	if err != nil {
		return fmt.Errorf("merge: read presentations: %w", err)
	}
	byID := make(map[string]domain.Presentation, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}
	for _, np := range imported {
		if _, ok := byID[np.ID]; !ok {
			byID[np.ID] = np
		}
	}
	merged := make([]domain.Presentation, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return store.ReplaceAll(ctx, s, store.Presentations, merged, presentationID)
}

// mergeSettings shallow-merges at the JSON key level with existing keys
// winning over imported ones.
func mergeSettings(ctx context.Context, s store.Store, imported domain.Settings) error {
	existingRaw, err := s.Get(ctx, store.UserData, store.SettingsID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("merge: read settings: %w", err)
	}
	importedRaw, err := json.Marshal(imported)
	if err != nil {
		return fmt.Errorf("merge: encode settings: %w", err)
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(importedRaw, &merged); err != nil {
		return fmt.Errorf("merge: decode settings: %w", err)
	}
	if len(existingRaw) > 0 {
		existing := map[string]json.RawMessage{}
		if err := json.Unmarshal(existingRaw, &existing); err != nil {
			return fmt.Errorf("merge: decode stored settings: %w", err)
		}
		for k, v := range existing {
			merged[k] = v
		}
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("merge: encode merged settings: %w", err)
	}
	return s.Put(ctx, store.UserData, store.SettingsID, data)
}

func courseID(c domain.Course) string { return c.ID }

func presentationID(p domain.Presentation) string { return p.ID }
