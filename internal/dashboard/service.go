package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/dataset"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/override"
)

var ErrOrderNotFound = errors.New("order not found")

// Service answers dashboard requests. Orders are reloaded from the source
// on every call and each call reads one override snapshot.
type Service struct {
	orders    dataset.OrderSource
	overrides *override.Store
	logger    *zap.Logger
}

func NewService(orders dataset.OrderSource, overrides *override.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, overrides: overrides, logger: logger}
}

func (s *Service) load(ctx context.Context) ([]contracts.Order, override.Snapshot, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, override.Snapshot{}, fmt.Errorf("load orders: %w", err)
	}
	return orders, s.overrides.Snapshot(), nil
}

func (s *Service) Stats(ctx context.Context) ([]contracts.StatCard, error) {
	orders, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return StatCards(ComputeMetrics(snap.Apply(orders), snap.Len() > 0)), nil
}

func (s *Service) ModeSplit(ctx context.Context) (map[contracts.ShippingMethod]contracts.ModeRisk, error) {
	orders, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ModeSplit(snap.Apply(orders)), nil
}

func (s *Service) Trend(ctx context.Context) (contracts.Trend, error) {
	orders, snap, err := s.load(ctx)
	if err != nil {
		return contracts.Trend{}, err
	}
	return TrendPoints(snap.Apply(orders)), nil
}

func (s *Service) Warnings(ctx context.Context) ([]contracts.Warning, error) {
	orders, snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Warnings(orders, snap), nil
}

// Story returns ErrOrderNotFound when no order has the given id.
func (s *Service) Story(ctx context.Context, orderID int64) (contracts.Story, error) {
	orders, snap, err := s.load(ctx)
	if err != nil {
		return contracts.Story{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return BuildStory(o, snap.Has(orderID)), nil
		}
	}
	return contracts.Story{}, ErrOrderNotFound
}

func (s *Service) Reroute(orderID int64) contracts.Message {
	msg := s.overrides.Reroute(orderID)
	s.logger.Info("order rerouted", zap.Int64("order_id", orderID))
	return msg
}

// Mitigate acknowledges an operator action without changing any state.
func (s *Service) Mitigate(action string) contracts.Message {
	return contracts.Message{Msg: fmt.Sprintf("Action %s confirmed.", action)}
}
