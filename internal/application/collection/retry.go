package collection

import (
	"context"
	"strings"
	"time"

	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemCorrection fixes one line item of a stored raw order
type ItemCorrection struct {
	Index             int     `json:"index"`
	ProductIdentifier *string `json:"product_identifier,omitempty"`
	Quantity          *int    `json:"quantity,omitempty"`
}

// Corrections are operator-entered fixes overlaid onto the raw order stored
// in an ERROR order's payload. Field keys match the upload column names.
type Corrections struct {
	Fields map[string]string `json:"fields,omitempty"`
	Items  []ItemCorrection  `json:"items,omitempty"`
}

// RetryResult reports the outcome of one correction attempt
type RetryResult struct {
	// Succeeded means the ERROR order was replaced by a fresh PENDING order
	Succeeded bool `json:"succeeded"`
	// Order is the replacement order when the retry succeeded
	Order *order.Order `json:"order,omitempty"`
	// Payload is the refreshed diagnosis when the retry failed again
	Payload *order.ErrorPayload `json:"payload,omitempty"`
}

var errNoStoredRaw = shared.NewDomainError("NO_STORED_RAW", "Error order carries no raw order to correct")

// Retry reruns one ERROR order through the pipeline with corrections applied.
// Success replaces the ERROR row with a fresh PENDING order; failure leaves
// the same row with a refreshed diagnosis, so the next attempt starts from
// the corrected values.
func (s *Service) Retry(ctx context.Context, orderID uuid.UUID, corr Corrections) (RetryResult, error) {
	stale, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return RetryResult{}, err
	}
	if !stale.IsError() {
		return RetryResult{}, shared.ErrInvalidState
	}
	if stale.Error == nil || stale.Error.Raw == nil {
		return RetryResult{}, errNoStoredRaw
	}

	raw := stale.Error.Raw.Clone()
	if err := applyCorrections(&raw, corr); err != nil {
		return RetryResult{}, err
	}

	if payload := s.materializer.validate(ctx, &raw); payload != nil {
		return s.retryFailed(ctx, orderID, payload)
	}

	dup, err := s.orders.ExistsDuplicate(ctx, raw.DuplicateKey())
	if err != nil {
		return RetryResult{}, err
	}
	if dup {
		if s.opts.Policy != DuplicatePolicyForceAccept {
			return s.retryFailed(ctx, orderID, &order.ErrorPayload{
				Message: "corrected order duplicates an existing order",
				Raw:     &raw,
			})
		}
		raw.OrderNo = ""
	}

	built, err := s.materializer.build(ctx, &raw)
	if err == nil {
		err = s.orders.ReplaceErrorOrder(ctx, orderID, built)
	}
	if err != nil {
		return s.retryFailed(ctx, orderID, &order.ErrorPayload{
			Message: "failed to store corrected order: " + err.Error(),
			Raw:     &raw,
		})
	}

	s.logger.Info("error order corrected",
		zap.String("error_order_id", orderID.String()),
		zap.String("order_no", built.OrderNo),
	)
	return RetryResult{Succeeded: true, Order: built}, nil
}

// retryFailed refreshes the diagnosis on the existing ERROR row
func (s *Service) retryFailed(ctx context.Context, orderID uuid.UUID, payload *order.ErrorPayload) (RetryResult, error) {
	if err := s.orders.UpdateErrorPayload(ctx, orderID, payload); err != nil {
		return RetryResult{}, err
	}
	return RetryResult{Succeeded: false, Payload: payload}, nil
}

func applyCorrections(raw *order.RawOrder, corr Corrections) error {
	for field, value := range corr.Fields {
		value = strings.TrimSpace(value)
		switch field {
		case "order_no":
			raw.OrderNo = value
		case "order_date":
			d, err := time.ParseInLocation("2006-01-02", value, time.Local)
			if err != nil {
				return shared.NewDomainError("INVALID_CORRECTION", "Order date must be YYYY-MM-DD")
			}
			raw.OrderDate = d
		case "shipper_name":
			raw.ShipperName = value
		case "channel_name":
			raw.ChannelName = value
		case "recipient_name":
			raw.RecipientName = value
		case "recipient_phone":
			raw.RecipientPhone = value
		case "address":
			raw.Address = value
		case "postcode":
			raw.Postcode = value
		case "delivery_memo":
			raw.DeliveryMemo = value
		default:
			return shared.NewDomainError("INVALID_CORRECTION", "Unknown correction field: "+field)
		}
	}

	for _, item := range corr.Items {
		if item.Index < 0 || item.Index >= len(raw.Items) {
			return shared.NewDomainError("INVALID_CORRECTION", "Item correction index out of range")
		}
		if item.ProductIdentifier != nil {
			raw.Items[item.Index].ProductIdentifier = strings.TrimSpace(*item.ProductIdentifier)
		}
		if item.Quantity != nil {
			raw.Items[item.Index].Quantity = *item.Quantity
		}
	}
	return nil
}
