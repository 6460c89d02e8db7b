package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/cache"
	"github.com/storeline/pos/common/clients"
	"github.com/storeline/pos/common/logger"
)

// salesWindow is how far back the sales/expense aggregates reach
const salesWindow = 30 * 24 * time.Hour

// InsightService aggregates figures from the store's data and asks the
// external advisor to narrate them. Generated reports are cached per
// kind; generation is slow and the numbers move on business timescales,
// not request timescales.
type InsightService struct {
	inventory *repository.InventoryRepository
	sales     *repository.SaleRepository
	expenses  *repository.ExpenseRepository
	advisor   *clients.AdvisorClient
	cache     cache.Cache
	reportTTL time.Duration
	log       *logger.Logger
}

// NewInsightService creates a new insight service. advisor may be nil
// when no generation endpoint is configured.
func NewInsightService(
	inventory *repository.InventoryRepository,
	sales *repository.SaleRepository,
	expenses *repository.ExpenseRepository,
	advisor *clients.AdvisorClient,
	c cache.Cache,
	reportTTL time.Duration,
	log *logger.Logger,
) *InsightService {
	return &InsightService{
		inventory: inventory,
		sales:     sales,
		expenses:  expenses,
		advisor:   advisor,
		cache:     c,
		reportTTL: reportTTL,
		log:       log,
	}
}

// GenerateReport builds the requested report, serving from cache when a
// fresh one exists
func (s *InsightService) GenerateReport(ctx context.Context, session models.Session, kind models.InsightKind) (*models.InsightReport, error) {
	if err := session.Require(models.PermInsightsRead); err != nil {
		return nil, err
	}
	if s.advisor == nil {
		return nil, models.ErrInsightsDisabled
	}

	cacheKey := "insight:" + string(kind)
	if data, found, err := s.cache.Get(ctx, cacheKey); err == nil && found {
		report := &models.InsightReport{}
		if err := json.Unmarshal(data, report); err == nil {
			report.FromCache = true
			return report, nil
		}
	}

	stats, err := s.collectStats(ctx, kind)
	if err != nil {
		return nil, err
	}

	// Propagate the caller onto the outbound request headers
	text, err := s.advisor.GenerateReport(clients.WithUserID(ctx, session.UserID), string(kind), stats)
	if err != nil {
		return nil, err
	}

	report := &models.InsightReport{
		Kind:        kind,
		Text:        text,
		Stats:       stats,
		GeneratedAt: time.Now().UTC(),
	}

	if data, err := json.Marshal(report); err == nil {
		if err := s.cache.Set(ctx, cacheKey, data, s.reportTTL); err != nil {
			s.log.Warn("failed to cache insight report", "kind", kind, "error", err)
		}
	}

	s.log.Info("generated insight report", "kind", kind)
	return report, nil
}

// collectStats gathers the aggregates fed to the advisor
func (s *InsightService) collectStats(ctx context.Context, kind models.InsightKind) (map[string]any, error) {
	switch kind {
	case models.InsightInventory:
		levels, err := s.inventory.ListStockLevels(ctx, 500, 0)
		if err != nil {
			return nil, err
		}
		lowStock, err := s.inventory.ListLowStock(ctx)
		if err != nil {
			return nil, err
		}

		var totalUnits int64
		for _, level := range levels {
			totalUnits += level.Quantity
		}

		lowNames := make([]string, 0, len(lowStock))
		for _, level := range lowStock {
			lowNames = append(lowNames, fmt.Sprintf("%s (%d left)", level.ProductName, level.Quantity))
		}

		return map[string]any{
			"product_count":   len(levels),
			"total_units":     totalUnits,
			"low_stock_count": len(lowStock),
			"low_stock_items": lowNames,
		}, nil

	case models.InsightSales:
		since := time.Now().UTC().Add(-salesWindow)
		summary, err := s.sales.Summarize(ctx, since)
		if err != nil {
			return nil, err
		}
		expenseTotal, err := s.expenses.TotalSince(ctx, since)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"window_days":   int(salesWindow.Hours() / 24),
			"sale_count":    summary.SaleCount,
			"revenue_cents": summary.RevenueCents,
			"expense_cents": expenseTotal,
			"net_cents":     summary.RevenueCents - expenseTotal,
		}, nil

	default:
		return nil, fmt.Errorf("unknown insight kind: %s", kind)
	}
}
