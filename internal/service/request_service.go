package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"portal/internal/document"
	"portal/internal/model"
	"portal/internal/repository"
)

// SubmittedDocument is the downloadable artifact produced for a valid
// submission.
type SubmittedDocument struct {
	FileName    string
	ContentType string
	Data        []byte
}

type RequestService interface {
	// Submit validates the payload and renders the request document.
	// Validation failures come back as a field-to-message map, not an error;
	// err is reserved for render failures.
	Submit(ctx context.Context, role string, req model.AssetRequest) (*SubmittedDocument, map[string]string, error)
}

type requestService struct {
	generator *document.Generator
	auditRepo repository.AuditRepository
}

func NewRequestService(generator *document.Generator, auditRepo repository.AuditRepository) RequestService {
	return &requestService{generator: generator, auditRepo: auditRepo}
}

func (s *requestService) Submit(ctx context.Context, role string, req model.AssetRequest) (*SubmittedDocument, map[string]string, error) {
	if errs := ValidateRequest(req); len(errs) > 0 {
		return nil, errs, nil
	}

	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}

	pdf, name, err := s.generator.Render(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate request document: %w", err)
	}

	// The payload itself is transient and never persisted; only submission
	// metadata lands in the audit trail.
	s.auditSubmission(ctx, role, req)

	return &SubmittedDocument{
		FileName:    name,
		ContentType: "application/pdf",
		Data:        pdf,
	}, nil, nil
}

func (s *requestService) auditSubmission(ctx context.Context, role string, req model.AssetRequest) {
	if s.auditRepo == nil {
		return
	}
	details, _ := json.Marshal(map[string]interface{}{
		"assetType": req.AssetType,
		"quantity":  req.Quantity,
		"priority":  req.Priority,
	})
	entry := &model.AuditLog{
		Role:       role,
		Action:     model.ActionSubmitRequest,
		EntityName: req.AssetType,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Printf("WARNING: failed to write audit log for %s: %v", model.ActionSubmitRequest, err)
	}
}
