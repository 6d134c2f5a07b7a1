package core

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
)

func TestLoadManyPrefersBulk(t *testing.T) {
	var singleCalls int32
	bulk := func(_ context.Context, ids []string) (map[string]string, error) {
		out := map[string]string{}
		for _, id := range ids {
			out[id] = "bulk-" + id
		}
		return out, nil
	}
	single := func(_ context.Context, id string) (string, bool, error) {
		atomic.AddInt32(&singleCalls, 1)
		return "", false, nil
	}

	out, err := loadMany(context.Background(), []string{"a", "b"}, bulk, single)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]string{"a": "bulk-a", "b": "bulk-b"}) {
		t.Fatalf("unexpected result: %#v", out)
	}
	if atomic.LoadInt32(&singleCalls) != 0 {
		t.Fatalf("expected no per-item calls on the bulk path")
	}
}

func TestLoadManyCleansAndDeduplicatesIDs(t *testing.T) {
	var got []string
	bulk := func(_ context.Context, ids []string) (map[string]string, error) {
		got = append([]string(nil), ids...)
		return map[string]string{}, nil
	}
	single := func(_ context.Context, id string) (string, bool, error) {
		return "", false, nil
	}

	out, err := loadMany(context.Background(), []string{" a ", "", "a", "b", "  "}, bulk, single)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected ids passed to bulk: %#v", got)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %#v", out)
	}
}

func TestLoadManyEmptyInput(t *testing.T) {
	called := false
	bulk := func(_ context.Context, ids []string) (map[string]string, error) {
		called = true
		return nil, nil
	}
	single := func(_ context.Context, id string) (string, bool, error) {
		return "", false, nil
	}

	out, err := loadMany(context.Background(), []string{"", "  "}, bulk, single)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if called {
		t.Fatalf("expected bulk skipped for empty input")
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", out)
	}
}

func TestLoadManyFallbackJoinsAllItems(t *testing.T) {
	bulk := func(_ context.Context, ids []string) (map[string]string, error) {
		return nil, errors.New("bulk endpoint down")
	}
	var mu sync.Mutex
	calls := map[string]int{}
	single := func(_ context.Context, id string) (string, bool, error) {
		mu.Lock()
		calls[id]++
		mu.Unlock()
		switch id {
		case "missing":
			return "", false, nil
		case "broken":
			return "", false, errors.New("row fetch failed")
		default:
			return "single-" + id, true, nil
		}
	}

	out, err := loadMany(context.Background(), []string{"a", "missing", "broken", "b"}, bulk, single)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if !reflect.DeepEqual(out, map[string]string{"a": "single-a", "b": "single-b"}) {
		t.Fatalf("unexpected fallback result: %#v", out)
	}
	for id, n := range calls {
		if n != 1 {
			t.Fatalf("expected exactly one fetch per id, got %d for %q", n, id)
		}
	}
	if len(calls) != 4 {
		t.Fatalf("expected every id attempted, got %#v", calls)
	}
}

func TestLoadManyFallbackMatchesBulkShape(t *testing.T) {
	store := map[string]string{"a": "A", "b": "B"}

	healthy := func(_ context.Context, ids []string) (map[string]string, error) {
		out := map[string]string{}
		for _, id := range ids {
			if v, ok := store[id]; ok {
				out[id] = v
			}
		}
		return out, nil
	}
	failing := func(_ context.Context, ids []string) (map[string]string, error) {
		return nil, errors.New("bulk endpoint down")
	}
	single := func(_ context.Context, id string) (string, bool, error) {
		v, ok := store[id]
		return v, ok, nil
	}

	ids := []string{"a", "b", "c"}
	fromBulk, err := loadMany(context.Background(), ids, healthy, single)
	if err != nil {
		t.Fatalf("bulk path: %v", err)
	}
	fromFallback, err := loadMany(context.Background(), ids, failing, single)
	if err != nil {
		t.Fatalf("fallback path: %v", err)
	}
	if !reflect.DeepEqual(fromBulk, fromFallback) {
		t.Fatalf("paths disagree: bulk=%#v fallback=%#v", fromBulk, fromFallback)
	}
}
