package order

import (
	"strings"
	"time"
)

// RawLineItem is one product line of a raw order before resolution.
// The identifier may be either a barcode or a product name.
type RawLineItem struct {
	ProductIdentifier string `json:"product_identifier"`
	Quantity          int    `json:"quantity"`
}

// RawOrder is an order as produced by a channel client or one spreadsheet row,
// before validation and resolution. It is never persisted as-is: it is either
// promoted to an Order or embedded in an ErrorPayload so no row is ever lost.
type RawOrder struct {
	// OrderNo is the external order number; empty means one is generated
	OrderNo        string       `json:"order_no,omitempty"`
	OrderDate      time.Time    `json:"order_date"`
	ShipperName    string       `json:"shipper_name"`
	ChannelName    string       `json:"channel_name"`
	RecipientName  string       `json:"recipient_name"`
	RecipientPhone string       `json:"recipient_phone"`
	Address        string       `json:"address"`
	Postcode       string       `json:"postcode,omitempty"`
	DeliveryMemo   string       `json:"delivery_memo,omitempty"`
	Items          []RawLineItem `json:"items"`
}

// DuplicateKey is the natural key used for duplicate detection. External order
// numbers are not trusted as the sole key: a resubmitted file may carry a
// different or blank number for logically the same order.
type DuplicateKey struct {
	ShipperName    string
	RecipientName  string
	Address        string
	RecipientPhone string
}

// DuplicateKey derives the raw order's natural key
func (r *RawOrder) DuplicateKey() DuplicateKey {
	return DuplicateKey{
		ShipperName:    strings.TrimSpace(r.ShipperName),
		RecipientName:  strings.TrimSpace(r.RecipientName),
		Address:        strings.TrimSpace(r.Address),
		RecipientPhone: strings.TrimSpace(r.RecipientPhone),
	}
}

// Clone returns a deep copy, so overlaying corrections cannot mutate a stored
// payload
func (r *RawOrder) Clone() RawOrder {
	out := *r
	out.Items = make([]RawLineItem, len(r.Items))
	copy(out.Items, r.Items)
	return out
}
