package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"portal/internal/model"
	"portal/internal/repository"
	"portal/internal/store"
	ws "portal/internal/websocket"

	"github.com/xuri/excelize/v2"
)

// DTOs
type CreateAssetRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type UpdateAssetRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// Websocket Payload
type AssetEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

var (
	ErrEmptyName     = errors.New("asset name must not be empty")
	ErrInvalidStatus = errors.New("asset status must be one of Available, In Use, Retired")
)

type InventoryService interface {
	ListAssets(q Query) []model.Asset
	GetAsset(id string) (model.Asset, bool)
	CreateAsset(ctx context.Context, role string, req CreateAssetRequest) (model.Asset, error)
	UpdateAsset(ctx context.Context, role, id string, req UpdateAssetRequest) (model.Asset, bool, error)
	DeleteAsset(ctx context.Context, role, id string) bool
	ExportAssets(ctx context.Context, role string) ([]byte, string, error)
}

type inventoryService struct {
	assets    *store.AssetStore
	auditRepo repository.AuditRepository
	hub       *ws.Hub
}

func NewInventoryService(assets *store.AssetStore, auditRepo repository.AuditRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		assets:    assets,
		auditRepo: auditRepo,
		hub:       hub,
	}
}

func (s *inventoryService) ListAssets(q Query) []model.Asset {
	return RunQuery(s.assets.Snapshot(), q)
}

func (s *inventoryService) GetAsset(id string) (model.Asset, bool) {
	return s.assets.Get(id)
}

func (s *inventoryService) CreateAsset(ctx context.Context, role string, req CreateAssetRequest) (model.Asset, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Asset{}, ErrEmptyName
	}
	if !model.ValidStatus(req.Status) {
		return model.Asset{}, ErrInvalidStatus
	}

	asset := s.assets.Add(ctx, req.Name, req.Status)

	s.audit(ctx, role, model.ActionCreateAsset, asset.ID, asset.Name, asset)
	s.broadcast("asset_created", asset)

	return asset, nil
}

func (s *inventoryService) UpdateAsset(ctx context.Context, role, id string, req UpdateAssetRequest) (model.Asset, bool, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return model.Asset{}, false, ErrEmptyName
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return model.Asset{}, false, ErrInvalidStatus
	}

	asset, found := s.assets.Update(ctx, id, store.Patch{Name: req.Name, Status: req.Status})
	if !found {
		return model.Asset{}, false, nil
	}

	s.audit(ctx, role, model.ActionUpdateAsset, asset.ID, asset.Name, asset)
	s.broadcast("asset_updated", asset)

	return asset, true, nil
}

func (s *inventoryService) DeleteAsset(ctx context.Context, role, id string) bool {
	asset, ok := s.assets.Get(id)
	if !ok {
		return false
	}
	if !s.assets.Delete(ctx, id) {
		return false
	}

	s.audit(ctx, role, model.ActionDeleteAsset, asset.ID, asset.Name, asset)
	s.broadcast("asset_deleted", asset)

	return true
}

// ExportAssets serializes the full collection to an xlsx workbook, one row
// per asset, named assets.xlsx.
func (s *inventoryService) ExportAssets(ctx context.Context, role string) ([]byte, string, error) {
	assets := s.assets.Snapshot()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Assets"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Name", "Status"}); err != nil {
		return nil, "", fmt.Errorf("failed to write header row: %w", err)
	}
	for i, a := range assets {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{a.ID, a.Name, a.Status}); err != nil {
			return nil, "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.audit(ctx, role, model.ActionExportAssets, "", "", map[string]int{"count": len(assets)})

	return buf.Bytes(), "assets.xlsx", nil
}

// audit writes a best-effort trail entry; failures are logged, never fatal.
func (s *inventoryService) audit(ctx context.Context, role, action, entityID, entityName string, payload interface{}) {
	if s.auditRepo == nil {
		return
	}
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		Role:       role,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Printf("WARNING: failed to write audit log for %s: %v", action, err)
	}
}

func (s *inventoryService) broadcast(event string, asset model.Asset) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(AssetEvent{
		Event: event,
		Data: map[string]interface{}{
			"id":     asset.ID,
			"name":   asset.Name,
			"status": asset.Status,
		},
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- msg
}
