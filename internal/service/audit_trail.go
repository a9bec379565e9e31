package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/sga-api/internal/models"
	"github.com/noah-isme/sga-api/internal/repository"
)

// auditTrail is the shared best-effort audit writer embedded by resource
// services. Failures are logged, never surfaced to the caller.
type auditTrail struct {
	audit  auditWriter
	logger *zap.Logger
}

func (a auditTrail) record(ctx context.Context, actor *models.Principal, action, resource string, resourceID int64, payload map[string]interface{}, meta models.RequestMeta) {
	if a.audit == nil {
		return
	}
	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}
	var values []byte
	if payload != nil {
		values, _ = json.Marshal(payload)
	}
	if err := a.audit.Create(ctx, &models.AuditLog{
		UserID:     actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: &resourceID,
		NewValues:  values,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil && a.logger != nil {
		a.logger.Warn("failed to record audit log", zap.String("resource", resource), zap.Error(err))
	}
}

func fieldColumns(fields []repository.Field) []string {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Column
	}
	return columns
}
