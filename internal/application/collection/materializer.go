package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"go.uber.org/zap"
)

// RowOutcome is the terminal fate of one raw order
type RowOutcome int

const (
	// RowSuccess means a new PENDING order was created
	RowSuccess RowOutcome = iota
	// RowError means the row was recorded as an ERROR order (new or a
	// refreshed diagnosis on an existing one)
	RowError
	// RowDuplicate means the row matched an accepted order and was skipped
	RowDuplicate
)

// Materializer turns validated raw orders into persisted orders and turns
// invalid ones into ERROR orders. Its contract is that no raw order is ever
// silently lost: every row either becomes a PENDING order, refreshes or
// creates an ERROR order, or is counted as a duplicate.
type Materializer struct {
	resolver *CatalogResolver
	orders   order.Repository
	logger   *zap.Logger
}

// NewMaterializer creates a Materializer
func NewMaterializer(resolver *CatalogResolver, orders order.Repository, logger *zap.Logger) *Materializer {
	return &Materializer{
		resolver: resolver,
		orders:   orders,
		logger:   logger,
	}
}

// Materialize processes one raw order to a terminal outcome. The returned
// error is non-nil only when even the ERROR-order fallback could not be
// persisted; the caller decides how to count such a row.
func (m *Materializer) Materialize(ctx context.Context, raw order.RawOrder, gate *DeduplicationGate, policy DuplicatePolicy) (RowOutcome, error) {
	if payload := m.validate(ctx, &raw); payload != nil {
		return RowError, m.persistFallback(ctx, &raw, payload)
	}

	dup, err := gate.IsDuplicate(ctx, &raw)
	if err != nil {
		return RowError, m.persistFallback(ctx, &raw, &order.ErrorPayload{
			Message: "duplicate check failed: " + err.Error(),
			Raw:     &raw,
		})
	}
	if dup {
		if policy != DuplicatePolicyForceAccept {
			return RowDuplicate, nil
		}
		// Force-accepted duplicates must not reuse the external number the
		// accepted sibling may already carry
		raw.OrderNo = ""
	}

	built, err := m.build(ctx, &raw)
	if err == nil {
		err = m.orders.CreateWithItems(ctx, built)
	}
	if err != nil {
		return RowError, m.persistFallback(ctx, &raw, &order.ErrorPayload{
			Message: "failed to store order: " + err.Error(),
			Raw:     &raw,
		})
	}

	gate.Remember(&raw)
	return RowSuccess, nil
}

// validate checks the raw order and collects every problem at once, so the
// operator sees the full diagnosis instead of fixing one field per attempt.
// It returns nil when the order is valid.
func (m *Materializer) validate(ctx context.Context, raw *order.RawOrder) *order.ErrorPayload {
	var fields []string
	var problems []string

	flag := func(field, problem string) {
		fields = append(fields, field)
		problems = append(problems, problem)
	}

	var shipper *masterdata.Shipper
	if strings.TrimSpace(raw.ShipperName) == "" {
		flag("shipper_name", "shipper name is required")
	} else {
		var err error
		shipper, err = m.resolver.ResolveShipper(ctx, strings.TrimSpace(raw.ShipperName))
		if errors.Is(err, shared.ErrNotFound) {
			flag("shipper_name", fmt.Sprintf("unknown shipper %q", raw.ShipperName))
		} else if err != nil {
			flag("shipper_name", "shipper lookup failed: "+err.Error())
		}
	}

	if strings.TrimSpace(raw.ChannelName) == "" {
		flag("channel_name", "channel name is required")
	}
	if strings.TrimSpace(raw.RecipientName) == "" {
		flag("recipient_name", "recipient name is required")
	}
	if strings.TrimSpace(raw.RecipientPhone) == "" {
		flag("recipient_phone", "recipient phone is required")
	}
	if strings.TrimSpace(raw.Address) == "" {
		flag("address", "address is required")
	}
	if raw.OrderDate.IsZero() {
		flag("order_date", "order date is required")
	}

	if len(raw.Items) == 0 {
		flag("items", "at least one line item is required")
	}
	for i, item := range raw.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.ProductIdentifier) == "" {
			flag(prefix+".product_identifier", "product identifier is required")
		} else if shipper != nil {
			_, err := m.resolver.ResolveProduct(ctx, shipper.ID, strings.TrimSpace(item.ProductIdentifier))
			switch {
			case errors.Is(err, shared.ErrNotFound):
				flag(prefix+".product_identifier", fmt.Sprintf("unknown product %q", item.ProductIdentifier))
			case errors.Is(err, masterdata.ErrProductAmbiguous):
				flag(prefix+".product_identifier", fmt.Sprintf("identifier %q matches more than one product", item.ProductIdentifier))
			case err != nil:
				flag(prefix+".product_identifier", "product lookup failed: "+err.Error())
			}
		}
		if item.Quantity <= 0 {
			flag(prefix+".quantity", "quantity must be positive")
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &order.ErrorPayload{
		Message: strings.Join(problems, "; "),
		Fields:  fields,
		Raw:     raw,
	}
}

// build constructs a PENDING order with resolved references from a raw order
// that already passed validation
func (m *Materializer) build(ctx context.Context, raw *order.RawOrder) (*order.Order, error) {
	shipper, err := m.resolver.ResolveShipper(ctx, strings.TrimSpace(raw.ShipperName))
	if err != nil {
		return nil, err
	}
	salesChannel, err := m.resolver.ResolveChannel(ctx, strings.TrimSpace(raw.ChannelName))
	if err != nil {
		return nil, err
	}

	o, err := order.New(raw.OrderNo, raw.OrderDate, shipper.ID, salesChannel.ID)
	if err != nil {
		return nil, err
	}
	o.ShipperName = shipper.Name
	o.SetRecipient(raw.RecipientName, raw.RecipientPhone, raw.Address, raw.Postcode, raw.DeliveryMemo)

	for _, line := range raw.Items {
		product, err := m.resolver.ResolveProduct(ctx, shipper.ID, strings.TrimSpace(line.ProductIdentifier))
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(o.ID, product.ID, line.Quantity)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
	}
	return o, nil
}

// persistFallback records a failing row as an ERROR order. When an ERROR
// order with the same natural key already exists, its diagnosis is refreshed
// in place so repeated submissions of one bad row never pile up rows.
//
// Losing a row is worse than recording an error, so a failure here is logged
// at the highest severity before being returned.
func (m *Materializer) persistFallback(ctx context.Context, raw *order.RawOrder, payload *order.ErrorPayload) error {
	if payload.Raw == nil {
		payload.Raw = raw
	}

	existing, err := m.orders.FindErrorByDuplicateKey(ctx, raw.DuplicateKey())
	if err == nil {
		if err := m.orders.UpdateErrorPayload(ctx, existing.ID, payload); err != nil {
			m.logRowLoss(raw, err)
			return err
		}
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		m.logRowLoss(raw, err)
		return err
	}

	o := m.buildFallbackOrder(ctx, raw)
	if err := o.MarkError(payload); err != nil {
		m.logRowLoss(raw, err)
		return err
	}
	if err := m.orders.CreateWithItems(ctx, o); err != nil {
		m.logRowLoss(raw, err)
		return err
	}
	return nil
}

// buildFallbackOrder assembles the best persistable row for a failing raw
// order. References that resolve are kept; line items are included up to the
// first unresolvable one. The full raw order lives in the error payload, so
// truncation here loses nothing.
func (m *Materializer) buildFallbackOrder(ctx context.Context, raw *order.RawOrder) *order.Order {
	orderDate := raw.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	o := &order.Order{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNo:     raw.OrderNo,
		OrderDate:   orderDate,
		ShipperName: strings.TrimSpace(raw.ShipperName),
	}

	var shipper *masterdata.Shipper
	if name := strings.TrimSpace(raw.ShipperName); name != "" {
		if s, err := m.resolver.ResolveShipper(ctx, name); err == nil {
			shipper = s
			id := s.ID
			o.ShipperID = &id
		}
	}
	if name := strings.TrimSpace(raw.ChannelName); name != "" {
		if ch, err := m.resolver.ResolveChannel(ctx, name); err == nil {
			id := ch.ID
			o.ChannelID = &id
		}
	}
	o.SetRecipient(raw.RecipientName, raw.RecipientPhone, raw.Address, raw.Postcode, raw.DeliveryMemo)

	if shipper != nil {
		for _, line := range raw.Items {
			product, err := m.resolver.ResolveProduct(ctx, shipper.ID, strings.TrimSpace(line.ProductIdentifier))
			if err != nil || line.Quantity <= 0 {
				break
			}
			item, err := order.NewItem(o.ID, product.ID, line.Quantity)
			if err != nil {
				break
			}
			o.Items = append(o.Items, *item)
		}
	}
	return o
}

func (m *Materializer) logRowLoss(raw *order.RawOrder, err error) {
	m.logger.DPanic("failed to persist error order, row is lost",
		zap.String("shipper_name", raw.ShipperName),
		zap.String("channel_name", raw.ChannelName),
		zap.String("recipient_name", raw.RecipientName),
		zap.String("order_no", raw.OrderNo),
		zap.Error(err),
	)
}
