package fulfillment

import (
	"context"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/PLZ-test/wms/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShippingService drives the outbound and inbound stock flows. The heavy
// lifting is transactional and lives in the repositories; the service adds
// input checks and logging.
type ShippingService struct {
	shipments stock.ShipmentRepository
	movements stock.MovementRepository
	logger    *zap.Logger
}

// NewShippingService creates a ShippingService
func NewShippingService(shipments stock.ShipmentRepository, movements stock.MovementRepository, logger *zap.Logger) *ShippingService {
	return &ShippingService{
		shipments: shipments,
		movements: movements,
		logger:    logger,
	}
}

// Ship transitions the given orders to SHIPPED, deducting stock and recording
// OUT movements. The whole batch is one transaction; insufficient stock for
// any line item aborts it all.
func (s *ShippingService) Ship(ctx context.Context, orderIDs []uuid.UUID) ([]string, error) {
	if len(orderIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_SHIPMENT", "At least one order is required")
	}

	shipped, err := s.shipments.ShipOrders(ctx, orderIDs)
	if err != nil {
		s.logger.Warn("shipment batch aborted",
			zap.Int("orders", len(orderIDs)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("orders shipped",
		zap.Int("orders", len(shipped)),
		zap.Strings("order_nos", shipped),
	)
	return shipped, nil
}

// Receive records an inbound stock delivery for a product
func (s *ShippingService) Receive(ctx context.Context, productID uuid.UUID, quantity int, memo string) (*stock.Movement, error) {
	movement, err := s.movements.Receive(ctx, productID, quantity, memo)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock received",
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
	)
	return movement, nil
}

// Movements lists a product's stock movements, newest first
func (s *ShippingService) Movements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]stock.Movement, error) {
	return s.movements.FindByProduct(ctx, productID, filter)
}
