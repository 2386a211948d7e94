package csvimport

import (
	"io"
	"strconv"
	"time"

	"github.com/PLZ-test/wms/internal/domain/order"
)

// Expected order upload columns. order_no, order_date, postcode and
// delivery_memo are optional.
const (
	ColumnOrderNo           = "order_no"
	ColumnOrderDate         = "order_date"
	ColumnShipperName       = "shipper_name"
	ColumnChannelName       = "channel_name"
	ColumnRecipientName     = "recipient_name"
	ColumnRecipientPhone    = "recipient_phone"
	ColumnAddress           = "address"
	ColumnPostcode          = "postcode"
	ColumnProductIdentifier = "product_identifier"
	ColumnQuantity          = "quantity"
	ColumnDeliveryMemo      = "delivery_memo"
)

var requiredColumns = []string{
	ColumnShipperName,
	ColumnChannelName,
	ColumnRecipientName,
	ColumnRecipientPhone,
	ColumnAddress,
	ColumnProductIdentifier,
	ColumnQuantity,
}

const dateLayout = "2006-01-02"

// ReadOrders parses an uploaded order spreadsheet into raw orders, one per
// data row. Only file-level problems fail the read; a malformed cell never
// drops its row. The row still becomes a raw order and the pipeline's
// validation records it as an error order, so the operator sees the row
// instead of losing it.
func ReadOrders(r io.Reader) ([]order.RawOrder, error) {
	parser, err := NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	var missing []string
	for _, col := range requiredColumns {
		if !parser.HasHeader(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	now := time.Now()
	raws := make([]order.RawOrder, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, rowToRawOrder(row, now))
	}
	return raws, nil
}

func rowToRawOrder(row *Row, now time.Time) order.RawOrder {
	raw := order.RawOrder{
		OrderNo:        row.Get(ColumnOrderNo),
		OrderDate:      parseDate(row.Get(ColumnOrderDate), now),
		ShipperName:    row.Get(ColumnShipperName),
		ChannelName:    row.Get(ColumnChannelName),
		RecipientName:  row.Get(ColumnRecipientName),
		RecipientPhone: row.Get(ColumnRecipientPhone),
		Address:        row.Get(ColumnAddress),
		Postcode:       row.Get(ColumnPostcode),
		DeliveryMemo:   row.Get(ColumnDeliveryMemo),
	}
	raw.Items = []order.RawLineItem{{
		ProductIdentifier: row.Get(ColumnProductIdentifier),
		Quantity:          parseQuantity(row.Get(ColumnQuantity)),
	}}
	return raw
}

// parseDate falls back to the upload time; an order row with a bad date is
// still worth keeping
func parseDate(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	if d, err := time.ParseInLocation(dateLayout, value, now.Location()); err == nil {
		return d
	}
	return now
}

// parseQuantity maps a malformed quantity to zero, which validation rejects
// as non-positive
func parseQuantity(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
