package parallel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	results, errs := Run(ctx, []int{}, Options{}, func(ctx context.Context, index int, item int) (string, error) {
		return "", nil
	})
	if len(results) != 0 {
		t.Errorf("expected empty results for empty input, got %d items", len(results))
	}
	if errs != nil {
		t.Errorf("expected nil errors for empty input, got %v", errs)
	}

	input := []int{1, 2, 3, 4, 5}
	results, errs = Run(ctx, input, Options{}, func(ctx context.Context, index int, item int) (string, error) {
		return string(rune('a' + item - 1)), nil
	})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %d", len(errs))
	}
	expected := []string{"a", "b", "c", "d", "e"}
	for i, res := range results {
		if res != expected[i] {
			t.Errorf("expected result at index %d to be %s, got %s", i, expected[i], res)
		}
	}

	_, errs = Run(ctx, input, Options{MaxWorkers: 2}, func(ctx context.Context, index int, item int) (string, error) {
		if item%2 == 0 {
			return "", errors.New("even number error")
		}
		return string(rune('a' + item - 1)), nil
	})
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d", len(errs))
	}

	results, errs = Run(ctx, input, Options{MaxWorkers: -1}, func(ctx context.Context, index int, item int) (string, error) {
		return string(rune('a' + item - 1)), nil
	})
	if len(results) != len(input) {
		t.Errorf("expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %d", len(errs))
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := []int{1, 2, 3}
	results, errs := Run(ctx, input, Options{}, func(ctx context.Context, index int, item int) (int, error) {
		time.Sleep(100 * time.Millisecond)
		return item, nil
	})
	if len(results) != len(input) {
		t.Errorf("expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != len(input) {
		t.Errorf("expected %d context errors, got %d", len(input), len(errs))
	}
	for _, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	}
}

func TestRunOrder(t *testing.T) {
	ctx := context.Background()
	input := []int{5, 3, 1, 4, 2}

	results, errs := Run(ctx, input, Options{}, func(ctx context.Context, index int, item int) (int, error) {
		time.Sleep(time.Duration(item) * 10 * time.Millisecond)
		return item, nil
	})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %d", len(errs))
	}
	for i, res := range results {
		if res != input[i] {
			t.Errorf("expected result at index %d to be %d, got %d", i, input[i], res)
		}
	}
}
