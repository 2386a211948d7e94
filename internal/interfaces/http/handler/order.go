package handler

import (
	"net/http"
	"time"

	"github.com/PLZ-test/wms/internal/application/collection"
	"github.com/PLZ-test/wms/internal/application/fulfillment"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploaded order files are small CSVs; anything bigger is a mistake
const maxUploadSize = 10 * 1024 * 1024

// OrderHandler exposes order ingestion, correction and shipment over HTTP
type OrderHandler struct {
	BaseHandler
	collections *collection.Service
	shipping    *fulfillment.ShippingService
	orders      order.Repository
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(collections *collection.Service, shipping *fulfillment.ShippingService, orders order.Repository) *OrderHandler {
	return &OrderHandler{
		collections: collections,
		shipping:    shipping,
		orders:      orders,
	}
}

// Upload ingests an order CSV through the collection pipeline
func (h *OrderHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "file exceeds maximum size of 10MB", getRequestID(c)))
		return
	}

	var policy collection.DuplicatePolicy
	if c.PostForm("force_accept") == "true" {
		policy = collection.DuplicatePolicyForceAccept
	}

	result, err := h.collections.ProcessSpreadsheet(c.Request.Context(), file, policy)
	if err != nil {
		// file-level problems are the caller's to fix
		h.BadRequest(c, err.Error())
		return
	}
	h.Success(c, result)
}

// Retry reruns one ERROR order with operator corrections applied
func (h *OrderHandler) Retry(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	orderID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	var corr collection.Corrections
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&corr); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.collections.Retry(c.Request.Context(), orderID, corr)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toRetryResponse(result))
}

// RetryResponse reports one correction attempt
type RetryResponse struct {
	Succeeded bool                `json:"succeeded"`
	Order     *OrderResponse      `json:"order,omitempty"`
	Payload   *order.ErrorPayload `json:"payload,omitempty"`
}

func toRetryResponse(result collection.RetryResult) RetryResponse {
	resp := RetryResponse{
		Succeeded: result.Succeeded,
		Payload:   result.Payload,
	}
	if result.Order != nil {
		r := toOrderResponse(result.Order)
		resp.Order = &r
	}
	return resp
}

// ShipOrdersRequest lists the orders to ship as one batch
type ShipOrdersRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
}

// Ship transitions a batch of orders to SHIPPED, deducting stock
func (h *OrderHandler) Ship(c *gin.Context) {
	var req ShipOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "order_ids must be UUIDs")
			return
		}
		ids = append(ids, id)
	}

	shipped, err := h.shipping.Ship(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"shipped_order_nos": shipped})
}

// ListOrdersRequest filters the order listing to one day
type ListOrdersRequest struct {
	Date     string `form:"date" binding:"required"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELED ERROR"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List lists orders for one day, optionally narrowed to a status
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		h.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	var status *order.Status
	if req.Status != "" {
		s := order.Status(req.Status)
		status = &s
	}

	filter := dtoFilter(req.Page, req.PageSize)
	orders, err := h.orders.FindByDate(c.Request.Context(), day, status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	total, err := h.orders.CountByDate(c.Request.Context(), day, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Get returns one order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	orderID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	o, err := h.orders.FindByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(o))
}

// OrderResponse is one order in API responses
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNo        string              `json:"order_no"`
	OrderDate      time.Time           `json:"order_date"`
	ShipperID      string              `json:"shipper_id,omitempty"`
	ChannelID      string              `json:"channel_id,omitempty"`
	RecipientName  string              `json:"recipient_name"`
	RecipientPhone string              `json:"recipient_phone"`
	Address        string              `json:"address"`
	Postcode       string              `json:"postcode,omitempty"`
	DeliveryMemo   string              `json:"delivery_memo,omitempty"`
	Status         string              `json:"status"`
	Error          *order.ErrorPayload `json:"error,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID.String(),
		OrderNo:        o.OrderNo,
		OrderDate:      o.OrderDate,
		RecipientName:  o.RecipientName,
		RecipientPhone: o.RecipientPhone,
		Address:        o.Address,
		Postcode:       o.Postcode,
		DeliveryMemo:   o.DeliveryMemo,
		Status:         string(o.Status),
		Error:          o.Error,
		Items:          make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
	}
	if o.ShipperID != nil {
		resp.ShipperID = o.ShipperID.String()
	}
	if o.ChannelID != nil {
		resp.ChannelID = o.ChannelID.String()
	}
	for i := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        o.Items[i].ID.String(),
			ProductID: o.Items[i].ProductID.String(),
			Quantity:  o.Items[i].Quantity,
		})
	}
	return resp
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/upload", h.Upload)
		group.POST("/ship", h.Ship)
		group.POST("/:id/retry", h.Retry)
	}
}
