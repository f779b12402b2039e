package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arhamf/food-delivery-api/internal/carts"
	kafkax "github.com/arhamf/food-delivery-api/internal/kafka"
	"github.com/arhamf/food-delivery-api/internal/orders"
	"github.com/arhamf/food-delivery-api/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// CartRepairer re-derives a cart's order list from the live orders.
type CartRepairer interface {
	Repair(ctx context.Context, cartID string) (int, error)
}

type Service struct {
	Carts       CartRepairer
	Redis       *redis.Client
	ServiceName string
	Log         *slog.Logger
}

// HandleOrderRemoved is the consumer handler for the order-removed
// topic. Remove-order deletes the order first and pulls the cart list
// second, so a crash in between leaves a stale id in the cart; every
// removed event triggers a repair of that cart.
func (s *Service) HandleOrderRemoved(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderRemoved {
		return nil
	}

	// dedup by event_id so redelivered events repair at most once;
	// without redis the repair is idempotent anyway
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.OrderRemovedPayload](env.Payload)
	if err != nil {
		return err
	}

	removed, err := s.Carts.Repair(ctx, p.CartID)
	if errors.Is(err, carts.ErrCartNotFound) {
		// cart gone, nothing left to reconcile
		return nil
	}
	if err != nil {
		return err
	}
	if removed > 0 {
		s.Log.Info("repaired cart order list",
			"cart_id", p.CartID,
			"stale_ids_removed", removed,
			"event_id", env.EventID,
		)
	}
	return nil
}
