package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/logger"
	"github.com/storeline/pos/common/redis"
)

// CartService keeps each user's pending order in a Redis hash keyed by
// user, one field per product. Carts expire after the configured TTL of
// inactivity; every write refreshes it.
type CartService struct {
	redis *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCartService creates a new cart service
func NewCartService(client *redis.Client, ttl time.Duration, log *logger.Logger) *CartService {
	return &CartService{
		redis: client,
		ttl:   ttl,
		log:   log,
	}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// SetItem sets the quantity of one product in the caller's cart. A zero
// quantity removes the line.
func (s *CartService) SetItem(ctx context.Context, session models.Session, req models.SetItemRequest) (*models.Cart, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := cartKey(session.UserID)

	if req.Quantity == 0 {
		if err := s.redis.HDelete(ctx, key, req.ProductID.String()); err != nil {
			return nil, err
		}
	} else {
		if err := s.redis.HSet(ctx, key, req.ProductID.String(), strconv.FormatInt(req.Quantity, 10)); err != nil {
			return nil, err
		}
	}

	if err := s.redis.Expire(ctx, key, s.ttl); err != nil {
		s.log.Warn("failed to refresh cart ttl", "user_id", session.UserID, "error", err)
	}

	return s.GetCart(ctx, session)
}

// GetCart retrieves the caller's cart. A missing key is an empty cart.
func (s *CartService) GetCart(ctx context.Context, session models.Session) (*models.Cart, error) {
	fields, err := s.redis.HGetAll(ctx, cartKey(session.UserID))
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: session.UserID}
	for field, value := range fields {
		productID, err := uuid.Parse(field)
		if err != nil {
			s.log.Warn("dropping malformed cart field", "user_id", session.UserID, "field", field)
			continue
		}
		quantity, err := strconv.ParseInt(value, 10, 64)
		if err != nil || quantity <= 0 {
			s.log.Warn("dropping malformed cart quantity", "user_id", session.UserID, "field", field)
			continue
		}
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	// Hash iteration order is random; keep responses stable
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].ProductID.String() < cart.Items[j].ProductID.String()
	})

	return cart, nil
}

// ClearCart drops the caller's cart entirely
func (s *CartService) ClearCart(ctx context.Context, session models.Session) error {
	if err := s.redis.Delete(ctx, cartKey(session.UserID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
