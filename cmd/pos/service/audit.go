package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
	"github.com/storeline/pos/common/queue"
)

// AuditTopic is the queue topic state-changing services publish to
const AuditTopic = "audit"

// AuditService publishes audit events onto the queue and answers log
// queries. A separate Recorder drains the topic into Postgres so the
// hot path never blocks on the audit write.
type AuditService struct {
	queue queue.Queue
	repo  *repository.AuditRepository
	log   *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(q queue.Queue, repo *repository.AuditRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		queue: q,
		repo:  repo,
		log:   log,
	}
}

// Record publishes one audit event. Failures are logged, never returned:
// an audit hiccup must not fail the business operation that caused it.
func (s *AuditService) Record(ctx context.Context, actor, action, entityKind, entityID string, detail map[string]any) {
	event := models.AuditEvent{
		Actor:      actor,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to marshal audit event", "action", action, "error", err)
		return
	}

	if err := s.queue.Publish(ctx, AuditTopic, entityID, payload); err != nil {
		s.log.Error("failed to publish audit event", "action", action, "error", err)
	}
}

// List retrieves audit entries for callers holding audit:read
func (s *AuditService) List(ctx context.Context, session models.Session, filter models.AuditFilter) ([]*models.AuditEntry, error) {
	if err := session.Require(models.PermAuditRead); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}

// StartRecorder subscribes the persistence consumer to the audit topic
func (s *AuditService) StartRecorder(ctx context.Context) error {
	return s.queue.Subscribe(ctx, AuditTopic, s.handleEvent)
}

// handleEvent persists one queued audit event
func (s *AuditService) handleEvent(ctx context.Context, key string, value []byte) error {
	var event models.AuditEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to decode audit event: %w", err)
	}

	var detail []byte
	if event.Detail != nil {
		var err error
		detail, err = json.Marshal(event.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode audit detail: %w", err)
		}
	}

	if err := s.repo.Insert(ctx, event.Actor, event.Action, event.EntityKind, event.EntityID, detail); err != nil {
		return err
	}

	s.log.Debug("audit entry recorded",
		"action", event.Action,
		"entity_kind", event.EntityKind,
		"entity_id", event.EntityID,
	)

	return nil
}
