package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/logger"
	"github.com/storeline/pos/common/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecord_PublishesDecodableEvent(t *testing.T) {
	log := logger.New("error", "text")
	q := queue.NewMemoryQueue(16, log)
	svc := NewAuditService(q, nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan models.AuditEvent, 1)
	err := q.Subscribe(ctx, AuditTopic, func(_ context.Context, key string, value []byte) error {
		var event models.AuditEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		received <- event
		return nil
	})
	require.NoError(t, err)

	svc.Record(ctx, "user-1", "customer.create", "customer", "abc", map[string]any{"name": "Acme"})

	select {
	case event := <-received:
		assert.Equal(t, "user-1", event.Actor)
		assert.Equal(t, "customer.create", event.Action)
		assert.Equal(t, "customer", event.EntityKind)
		assert.Equal(t, "abc", event.EntityID)
		assert.Equal(t, "Acme", event.Detail["name"])
		assert.False(t, event.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("audit event was not delivered")
	}
}

func TestAuditList_RequiresPermission(t *testing.T) {
	log := logger.New("error", "text")
	svc := NewAuditService(queue.NewMemoryQueue(1, log), nil, log)

	cashier := models.Session{UserID: "u", Role: models.RoleCashier}
	_, err := svc.List(context.Background(), cashier, models.AuditFilter{})
	assert.ErrorIs(t, err, models.ErrForbidden)
}
