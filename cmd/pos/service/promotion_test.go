package service

import (
	"testing"

	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/logger"
	"github.com/storeline/pos/common/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPromotionService(t *testing.T) *PromotionService {
	t.Helper()
	log := logger.New("error", "text")
	audit := NewAuditService(queue.NewMemoryQueue(16, log), nil, log)
	svc, err := NewPromotionService(nil, audit, log)
	require.NoError(t, err)
	return svc
}

func evalRule(t *testing.T, svc *PromotionService, expr string, subtotal, items, lines int64) bool {
	t.Helper()
	prg, err := svc.compile(expr)
	require.NoError(t, err)

	out, _, err := prg.Eval(map[string]any{
		"subtotal_cents": subtotal,
		"item_count":     items,
		"line_count":     lines,
	})
	require.NoError(t, err)

	holds, ok := out.Value().(bool)
	require.True(t, ok)
	return holds
}

func TestPromotionExpression_SubtotalThreshold(t *testing.T) {
	svc := newTestPromotionService(t)

	assert.True(t, evalRule(t, svc, "subtotal_cents >= 10000", 10000, 1, 1))
	assert.False(t, evalRule(t, svc, "subtotal_cents >= 10000", 9999, 1, 1))
}

func TestPromotionExpression_CompoundPredicate(t *testing.T) {
	svc := newTestPromotionService(t)
	expr := "item_count >= 5 && subtotal_cents >= 2500"

	assert.True(t, evalRule(t, svc, expr, 2500, 5, 2))
	assert.False(t, evalRule(t, svc, expr, 2500, 4, 2))
	assert.False(t, evalRule(t, svc, expr, 2499, 5, 2))
}

func TestPromotionExpression_CompileErrors(t *testing.T) {
	svc := newTestPromotionService(t)

	_, err := svc.compile("subtotal_cents >=")
	assert.Error(t, err, "syntax error must be rejected")

	_, err = svc.compile("subtotal_cents + 5")
	assert.Error(t, err, "non-boolean expression must be rejected")

	_, err = svc.compile("unknown_var > 2")
	assert.Error(t, err, "undeclared variable must be rejected")
}

func TestPromotionExpression_ProgramCacheReused(t *testing.T) {
	svc := newTestPromotionService(t)

	first, err := svc.compile("subtotal_cents >= 100")
	require.NoError(t, err)
	second, err := svc.compile("subtotal_cents >= 100")
	require.NoError(t, err)

	assert.Equal(t, 1, len(svc.cache))
	assert.True(t, first == second, "identical expressions must share one program")
}

func TestPromotionRequest_Validate(t *testing.T) {
	req := models.PromotionRequest{Code: "BULK5", Expression: "item_count >= 5", DiscountBP: 500}
	assert.NoError(t, req.Validate())

	req = models.PromotionRequest{Code: "", Expression: "true", DiscountBP: 500}
	assert.Error(t, req.Validate())

	req = models.PromotionRequest{Code: "X", Expression: "true", DiscountBP: 0}
	assert.Error(t, req.Validate())

	req = models.PromotionRequest{Code: "X", Expression: "true", DiscountBP: 10001}
	assert.Error(t, req.Validate())
}
