package service

import (
	"context"

	"portal/internal/model"
	"portal/internal/repository"
)

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.auditRepo.List(ctx, page, limit)
}
