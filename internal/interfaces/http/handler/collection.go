package handler

import (
	"time"

	"github.com/PLZ-test/wms/internal/application/collection"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CollectionHandler exposes the collection pipeline over HTTP
type CollectionHandler struct {
	BaseHandler
	service *collection.Service
	logs    order.CollectionLogRepository
}

// NewCollectionHandler creates a CollectionHandler
func NewCollectionHandler(service *collection.Service, logs order.CollectionLogRepository) *CollectionHandler {
	return &CollectionHandler{
		service: service,
		logs:    logs,
	}
}

// RunCollectionRequest narrows a collection run to one shipper and
// optionally one channel. An empty body collects every active credential.
type RunCollectionRequest struct {
	ShipperID string `json:"shipper_id" binding:"omitempty,uuid"`
	Channel   string `json:"channel" binding:"omitempty"`
}

// Run triggers one collection pass
func (h *CollectionHandler) Run(c *gin.Context) {
	var req RunCollectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	if req.ShipperID == "" {
		if req.Channel != "" {
			h.BadRequest(c, "channel filter requires shipper_id")
			return
		}
		summary, err := h.service.CollectAll(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, summary)
		return
	}

	shipperID, err := uuid.Parse(req.ShipperID)
	if err != nil {
		h.BadRequest(c, "shipper_id must be a UUID")
		return
	}

	var channelType *masterdata.ChannelType
	if req.Channel != "" {
		ct := masterdata.ChannelType(req.Channel)
		if !ct.IsValid() {
			h.BadRequest(c, "unknown channel: "+req.Channel)
			return
		}
		channelType = &ct
	}

	summary, err := h.service.CollectForShipper(c.Request.Context(), shipperID, channelType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// CollectionLogResponse is one collection attempt in API responses
type CollectionLogResponse struct {
	ID           string    `json:"id"`
	ShipperID    string    `json:"shipper_id"`
	ShipperName  string    `json:"shipper_name,omitempty"`
	ChannelType  string    `json:"channel_type"`
	CollectedAt  time.Time `json:"collected_at"`
	Status       string    `json:"status"`
	TotalCount   int       `json:"total_count"`
	SuccessCount int       `json:"success_count"`
	ErrorCount   int       `json:"error_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// ListLogsRequest filters the collection log listing
type ListLogsRequest struct {
	ShipperID string `form:"shipper_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=SUCCESS PARTIAL FAILED"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Logs lists collection attempts, newest first
func (h *CollectionHandler) Logs(c *gin.Context) {
	var req ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := dtoFilter(req.Page, req.PageSize)
	if req.ShipperID != "" {
		filter.Filters["shipper_id"] = req.ShipperID
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	logs, total, err := h.logs.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CollectionLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toCollectionLogResponse(&logs[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

func toCollectionLogResponse(log *order.CollectionLog) CollectionLogResponse {
	resp := CollectionLogResponse{
		ID:           log.ID.String(),
		ShipperID:    log.ShipperID.String(),
		ChannelType:  string(log.ChannelType),
		CollectedAt:  log.CollectedAt,
		Status:       string(log.Status),
		TotalCount:   log.TotalCount,
		SuccessCount: log.SuccessCount,
		ErrorCount:   log.ErrorCount,
		ErrorMessage: log.ErrorMessage,
	}
	if log.Shipper != nil {
		resp.ShipperName = log.Shipper.Name
	}
	return resp
}

// RegisterRoutes registers the collection routes
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/collection")
	{
		group.POST("/run", h.Run)
		group.GET("/logs", h.Logs)
	}
}
