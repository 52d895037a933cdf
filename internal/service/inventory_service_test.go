package service_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"portal/internal/model"
	"portal/internal/service"
	"portal/internal/store"

	"github.com/xuri/excelize/v2"
)

// memKV is an in-memory persistence slot shared by the service tests.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.data[key]
	return blob, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// recordingAudit captures trail entries instead of hitting a database.
type recordingAudit struct {
	mu      sync.Mutex
	entries []model.AuditLog
	err     error
}

func (r *recordingAudit) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingAudit) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, int64(len(r.entries)), nil
}

func newInventoryFixture() (service.InventoryService, *store.AssetStore, *recordingAudit) {
	assets := store.New(newMemKV())
	audit := &recordingAudit{}
	return service.NewInventoryService(assets, audit, nil), assets, audit
}

func TestInventoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Rejects Invalid Status", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, err := svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: "Broken"})
		if err != service.ErrInvalidStatus {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("Create Rejects Empty Name", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		for _, name := range []string{"", "   ", "\t\n"} {
			_, err := svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: name, Status: model.StatusAvailable})
			if err != service.ErrEmptyName {
				t.Errorf("name %q: expected ErrEmptyName, got %v", name, err)
			}
		}
	})

	t.Run("Update Rejects Blank Name", func(t *testing.T) {
		svc, assets, _ := newInventoryFixture()
		asset, err := svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: model.StatusAvailable})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		blank := "   "
		if _, _, err := svc.UpdateAsset(ctx, "admin", asset.ID, service.UpdateAssetRequest{Name: &blank}); err != service.ErrEmptyName {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
		if got, _ := assets.Get(asset.ID); got.Name != "Laptop" {
			t.Errorf("name must be unchanged, got %q", got.Name)
		}
	})

	t.Run("Create Writes Audit Trail", func(t *testing.T) {
		svc, _, audit := newInventoryFixture()
		asset, err := svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: model.StatusAvailable})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(audit.entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
		}
		entry := audit.entries[0]
		if entry.Action != model.ActionCreateAsset || entry.EntityID != asset.ID || entry.Role != "admin" {
			t.Errorf("unexpected audit entry: %+v", entry)
		}
	})

	t.Run("Audit Failure Does Not Fail Mutation", func(t *testing.T) {
		assets := store.New(newMemKV())
		audit := &recordingAudit{err: context.DeadlineExceeded}
		svc := service.NewInventoryService(assets, audit, nil)

		if _, err := svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: model.StatusAvailable}); err != nil {
			t.Errorf("audit failure must not surface: %v", err)
		}
		if got := len(assets.Snapshot()); got != 1 {
			t.Errorf("expected asset despite audit failure, got %d", got)
		}
	})

	t.Run("Update Missing ID Reports Not Found", func(t *testing.T) {
		svc, assets, _ := newInventoryFixture()
		name := "x"
		_, found, err := svc.UpdateAsset(ctx, "admin", "nonexistent-id", service.UpdateAssetRequest{Name: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Errorf("expected found=false")
		}
		if got := len(assets.Snapshot()); got != 0 {
			t.Errorf("collection must be unchanged, got %d assets", got)
		}
	})

	t.Run("Delete Missing ID Reports Not Found", func(t *testing.T) {
		svc, _, audit := newInventoryFixture()
		if svc.DeleteAsset(ctx, "admin", "nonexistent-id") {
			t.Errorf("expected false for unknown id")
		}
		if len(audit.entries) != 0 {
			t.Errorf("no-op delete must not be audited, got %v", audit.entries)
		}
	})

	t.Run("List Applies Query", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, _ = svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Monitor", Status: model.StatusInUse})
		_, _ = svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: model.StatusAvailable})

		got := svc.ListAssets(service.Query{SortField: "name", SortAscending: true})
		if len(got) != 2 || got[0].Name != "Laptop" {
			t.Errorf("unexpected view: %+v", got)
		}

		filtered := svc.ListAssets(service.Query{Status: model.StatusInUse, SortField: "name", SortAscending: true})
		if len(filtered) != 1 || filtered[0].Name != "Monitor" {
			t.Errorf("unexpected filtered view: %+v", filtered)
		}
	})

	t.Run("Export Produces Workbook With One Row Per Asset", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, _ = svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Laptop", Status: model.StatusAvailable})
		_, _ = svc.CreateAsset(ctx, "admin", service.CreateAssetRequest{Name: "Monitor", Status: model.StatusInUse})

		data, name, err := svc.ExportAssets(ctx, "admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "assets.xlsx" {
			t.Errorf("expected assets.xlsx, got %s", name)
		}

		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("export is not a readable workbook: %v", err)
		}
		defer func() { _ = f.Close() }()

		rows, err := f.GetRows("Assets")
		if err != nil {
			t.Fatalf("missing Assets sheet: %v", err)
		}
		if len(rows) != 3 { // header + 2 assets
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[0][0] != "ID" || rows[0][1] != "Name" || rows[0][2] != "Status" {
			t.Errorf("unexpected header row: %v", rows[0])
		}
		if rows[1][1] != "Laptop" || rows[2][2] != model.StatusInUse {
			t.Errorf("unexpected data rows: %v", rows[1:])
		}
	})
}
