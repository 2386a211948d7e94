package handler

import (
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/stock"
)

// CenterResponse is a fulfillment center in API responses
type CenterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toCenterResponse(center *masterdata.Center) CenterResponse {
	return CenterResponse{
		ID:        center.ID.String(),
		Name:      center.Name,
		Address:   center.Address,
		CreatedAt: center.CreatedAt,
	}
}

func toCenterResponses(centers []masterdata.Center) []CenterResponse {
	out := make([]CenterResponse, 0, len(centers))
	for i := range centers {
		out = append(out, toCenterResponse(&centers[i]))
	}
	return out
}

// ShipperResponse is a shipper in API responses
type ShipperResponse struct {
	ID        string    `json:"id"`
	CenterID  string    `json:"center_id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toShipperResponse(shipper *masterdata.Shipper) ShipperResponse {
	return ShipperResponse{
		ID:        shipper.ID.String(),
		CenterID:  shipper.CenterID.String(),
		Name:      shipper.Name,
		Contact:   shipper.Contact,
		Address:   shipper.Address,
		CreatedAt: shipper.CreatedAt,
	}
}

func toShipperResponses(shippers []masterdata.Shipper) []ShipperResponse {
	out := make([]ShipperResponse, 0, len(shippers))
	for i := range shippers {
		out = append(out, toShipperResponse(&shippers[i]))
	}
	return out
}

// ProductResponse is a catalog product in API responses
type ProductResponse struct {
	ID                string  `json:"id"`
	ShipperID         string  `json:"shipper_id"`
	Name              string  `json:"name"`
	Barcode           string  `json:"barcode"`
	Width             float64 `json:"width"`
	Length            float64 `json:"length"`
	Height            float64 `json:"height"`
	Quantity          int     `json:"quantity"`
	ProductsPerPallet int     `json:"products_per_pallet"`
	PalletQuantity    int     `json:"pallet_quantity"`
	BoxSize           string  `json:"box_size"`
}

func toProductResponse(product *masterdata.Product) ProductResponse {
	return ProductResponse{
		ID:                product.ID.String(),
		ShipperID:         product.ShipperID.String(),
		Name:              product.Name,
		Barcode:           product.Barcode,
		Width:             product.Width.InexactFloat64(),
		Length:            product.Length.InexactFloat64(),
		Height:            product.Height.InexactFloat64(),
		Quantity:          product.Quantity,
		ProductsPerPallet: product.ProductsPerPallet,
		PalletQuantity:    product.PalletQuantity,
		BoxSize:           string(product.BoxSize),
	}
}

func toProductResponses(products []masterdata.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// SalesChannelResponse is a sales channel in API responses
type SalesChannelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toSalesChannelResponses(channels []masterdata.SalesChannel) []SalesChannelResponse {
	out := make([]SalesChannelResponse, 0, len(channels))
	for i := range channels {
		out = append(out, SalesChannelResponse{
			ID:   channels[i].ID.String(),
			Name: channels[i].Name,
		})
	}
	return out
}

// CourierResponse is a courier in API responses
type CourierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

func toCourierResponse(courier *masterdata.Courier) CourierResponse {
	return CourierResponse{
		ID:      courier.ID.String(),
		Name:    courier.Name,
		Contact: courier.Contact,
	}
}

func toCourierResponses(couriers []masterdata.Courier) []CourierResponse {
	out := make([]CourierResponse, 0, len(couriers))
	for i := range couriers {
		out = append(out, toCourierResponse(&couriers[i]))
	}
	return out
}

// MovementResponse is a stock movement in API responses
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	MovedAt   time.Time `json:"moved_at"`
	Memo      string    `json:"memo,omitempty"`
}

func toMovementResponse(movement *stock.Movement) MovementResponse {
	return MovementResponse{
		ID:        movement.ID.String(),
		ProductID: movement.ProductID.String(),
		Type:      string(movement.Type),
		Quantity:  movement.Quantity,
		MovedAt:   movement.MovedAt,
		Memo:      movement.Memo,
	}
}

func toMovementResponses(movements []stock.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, toMovementResponse(&movements[i]))
	}
	return out
}
