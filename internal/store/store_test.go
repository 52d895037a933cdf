package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"portal/internal/model"
	"portal/internal/store"
)

// fakeKV is an in-memory persistence slot.
type fakeKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	blob, ok := f.data[key]
	return blob, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func TestAssetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Load With Empty Slot", func(t *testing.T) {
		s := store.New(newFakeKV())
		s.Load(ctx)
		if got := len(s.Snapshot()); got != 0 {
			t.Errorf("expected empty collection, got %d assets", got)
		}
	})

	t.Run("Load With Unparseable Blob", func(t *testing.T) {
		kv := newFakeKV()
		kv.data[model.KeyAssets] = []byte("not json at all")
		s := store.New(kv)
		s.Load(ctx)
		if got := len(s.Snapshot()); got != 0 {
			t.Errorf("expected empty collection after corrupt blob, got %d assets", got)
		}
	})

	t.Run("Load With Read Error", func(t *testing.T) {
		kv := newFakeKV()
		kv.getErr = errors.New("storage unavailable")
		s := store.New(kv)
		s.Load(ctx)
		if got := len(s.Snapshot()); got != 0 {
			t.Errorf("expected empty collection after read error, got %d assets", got)
		}
	})

	t.Run("Round Trip Through Persistence", func(t *testing.T) {
		kv := newFakeKV()
		s := store.New(kv)
		s.Load(ctx)

		a := s.Add(ctx, "MacBook Pro", model.StatusAvailable)
		b := s.Add(ctx, "Dell Monitor", model.StatusInUse)
		c := s.Add(ctx, "Old Printer", model.StatusRetired)

		name := "Dell UltraSharp"
		if _, found := s.Update(ctx, b.ID, store.Patch{Name: &name}); !found {
			t.Fatalf("expected update of %s to find the asset", b.ID)
		}
		if !s.Delete(ctx, c.ID) {
			t.Fatalf("expected delete of %s to find the asset", c.ID)
		}

		reloaded := store.New(kv)
		reloaded.Load(ctx)

		want := s.Snapshot()
		got := reloaded.Snapshot()
		if len(got) != len(want) {
			t.Fatalf("expected %d assets after reload, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("asset %d mismatch after reload: got %+v, want %+v", i, got[i], want[i])
			}
		}
		if got[0].ID != a.ID || got[0].Name != "MacBook Pro" {
			t.Errorf("unexpected first asset after reload: %+v", got[0])
		}
		if got[1].Name != "Dell UltraSharp" {
			t.Errorf("expected renamed asset to survive reload, got %+v", got[1])
		}
	})

	t.Run("Update Missing ID Is Silent NoOp", func(t *testing.T) {
		kv := newFakeKV()
		s := store.New(kv)
		s.Add(ctx, "Laptop", model.StatusAvailable)

		before := s.Snapshot()
		setsBefore := kv.sets

		name := "x"
		if _, found := s.Update(ctx, "nonexistent-id", store.Patch{Name: &name}); found {
			t.Errorf("expected found=false for unknown id")
		}

		after := s.Snapshot()
		if len(after) != len(before) || after[0] != before[0] {
			t.Errorf("collection changed by no-op update: %+v -> %+v", before, after)
		}
		if kv.sets != setsBefore {
			t.Errorf("no-op update should not persist, sets went %d -> %d", setsBefore, kv.sets)
		}
	})

	t.Run("Delete Missing ID Returns False", func(t *testing.T) {
		s := store.New(newFakeKV())
		s.Add(ctx, "Laptop", model.StatusAvailable)
		if s.Delete(ctx, "nonexistent-id") {
			t.Errorf("expected found=false for unknown id")
		}
		if got := len(s.Snapshot()); got != 1 {
			t.Errorf("expected collection untouched, got %d assets", got)
		}
	})

	t.Run("Persist Failure Does Not Fail Mutation", func(t *testing.T) {
		kv := newFakeKV()
		kv.setErr = errors.New("quota exceeded")
		s := store.New(kv)

		asset := s.Add(ctx, "Laptop", model.StatusAvailable)
		if asset.ID == "" {
			t.Fatalf("expected asset despite persist failure")
		}
		if got := len(s.Snapshot()); got != 1 {
			t.Errorf("in-memory state should stay authoritative, got %d assets", got)
		}
	})

	t.Run("Patch Merges Only Given Fields", func(t *testing.T) {
		s := store.New(newFakeKV())
		a := s.Add(ctx, "Laptop", model.StatusAvailable)

		status := model.StatusInUse
		updated, found := s.Update(ctx, a.ID, store.Patch{Status: &status})
		if !found {
			t.Fatalf("expected asset to be found")
		}
		if updated.ID != a.ID {
			t.Errorf("id must be immutable, got %s want %s", updated.ID, a.ID)
		}
		if updated.Name != "Laptop" || updated.Status != model.StatusInUse {
			t.Errorf("unexpected merge result: %+v", updated)
		}
	})
}
