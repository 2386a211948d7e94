package handler

import (
	"github.com/PLZ-test/wms/internal/application/fulfillment"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterDataHandler exposes center, shipper, product, credential and courier
// management over HTTP
type MasterDataHandler struct {
	BaseHandler
	centers     masterdata.CenterRepository
	shippers    masterdata.ShipperRepository
	products    masterdata.ProductRepository
	channels    masterdata.SalesChannelRepository
	credentials masterdata.ChannelCredentialRepository
	couriers    masterdata.CourierRepository
	fulfillment *fulfillment.ShippingService
}

// NewMasterDataHandler creates a MasterDataHandler
func NewMasterDataHandler(
	centers masterdata.CenterRepository,
	shippers masterdata.ShipperRepository,
	products masterdata.ProductRepository,
	channels masterdata.SalesChannelRepository,
	credentials masterdata.ChannelCredentialRepository,
	couriers masterdata.CourierRepository,
	fulfillment *fulfillment.ShippingService,
) *MasterDataHandler {
	return &MasterDataHandler{
		centers:     centers,
		shippers:    shippers,
		products:    products,
		channels:    channels,
		credentials: credentials,
		couriers:    couriers,
		fulfillment: fulfillment,
	}
}

func (h *MasterDataHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCenterRequest creates a fulfillment center
type CreateCenterRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"max=255"`
}

func (h *MasterDataHandler) CreateCenter(c *gin.Context) {
	var req CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	center, err := masterdata.NewCenter(req.Name, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.centers.Save(c.Request.Context(), center); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCenterResponse(center))
}

func (h *MasterDataHandler) ListCenters(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	centers, err := h.centers.FindAll(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCenterResponses(centers))
}

func (h *MasterDataHandler) DeleteCenter(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.centers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateShipperRequest creates a shipper under a center
type CreateShipperRequest struct {
	CenterID string `json:"center_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Contact  string `json:"contact" binding:"max=100"`
	Address  string `json:"address" binding:"max=255"`
}

func (h *MasterDataHandler) CreateShipper(c *gin.Context) {
	var req CreateShipperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	centerID, err := uuid.Parse(req.CenterID)
	if err != nil {
		h.BadRequest(c, "center_id must be a UUID")
		return
	}
	shipper, err := masterdata.NewShipper(centerID, req.Name, req.Contact, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.shippers.Save(c.Request.Context(), shipper); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toShipperResponse(shipper))
}

func (h *MasterDataHandler) ListShippers(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	shippers, err := h.shippers.FindAll(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipperResponses(shippers))
}

func (h *MasterDataHandler) DeleteShipper(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.shippers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateProductRequest creates a product in a shipper's catalog
type CreateProductRequest struct {
	ShipperID         string  `json:"shipper_id" binding:"required,uuid"`
	Name              string  `json:"name" binding:"required,min=1,max=200"`
	Barcode           string  `json:"barcode" binding:"required,min=1,max=100"`
	BoxSize           string  `json:"box_size" binding:"omitempty,oneof=S M L XL"`
	Width             float64 `json:"width" binding:"omitempty,gte=0"`
	Length            float64 `json:"length" binding:"omitempty,gte=0"`
	Height            float64 `json:"height" binding:"omitempty,gte=0"`
	ProductsPerPallet int     `json:"products_per_pallet" binding:"omitempty,gte=0"`
}

func (h *MasterDataHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	shipperID, err := uuid.Parse(req.ShipperID)
	if err != nil {
		h.BadRequest(c, "shipper_id must be a UUID")
		return
	}
	product, err := masterdata.NewProduct(shipperID, req.Name, req.Barcode, masterdata.BoxSize(req.BoxSize))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	product.Width = decimal.NewFromFloat(req.Width)
	product.Length = decimal.NewFromFloat(req.Length)
	product.Height = decimal.NewFromFloat(req.Height)
	product.ProductsPerPallet = req.ProductsPerPallet
	if err := h.products.Save(c.Request.Context(), product); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProductResponse(product))
}

// SearchProductsRequest narrows the product search to one shipper's catalog
type SearchProductsRequest struct {
	ShipperID string `form:"shipper_id" binding:"required,uuid"`
	Term      string `form:"term"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *MasterDataHandler) SearchProducts(c *gin.Context) {
	var req SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	shipperID, err := uuid.Parse(req.ShipperID)
	if err != nil {
		h.BadRequest(c, "shipper_id must be a UUID")
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = 20
	}
	products, err := h.products.Search(c.Request.Context(), shipperID, req.Term, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponses(products))
}

func (h *MasterDataHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReceiveStockRequest records an inbound delivery for a product
type ReceiveStockRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Memo     string `json:"memo" binding:"max=255"`
}

func (h *MasterDataHandler) ReceiveStock(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	movement, err := h.fulfillment.Receive(c.Request.Context(), id, req.Quantity, req.Memo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toMovementResponse(movement))
}

func (h *MasterDataHandler) ListMovements(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	movements, err := h.fulfillment.Movements(c.Request.Context(), id, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMovementResponses(movements))
}

// CreateCredentialRequest registers marketplace credentials for a shipper
type CreateCredentialRequest struct {
	ShipperID string `json:"shipper_id" binding:"required,uuid"`
	Channel   string `json:"channel" binding:"required"`
	AccessKey string `json:"access_key" binding:"required,max=255"`
	SecretKey string `json:"secret_key" binding:"required,max=255"`
	ExtraInfo string `json:"extra_info"`
}

// CredentialResponse never echoes the secret key back
type CredentialResponse struct {
	ID        string `json:"id"`
	ShipperID string `json:"shipper_id"`
	Channel   string `json:"channel"`
	AccessKey string `json:"access_key"`
	IsActive  bool   `json:"is_active"`
}

func (h *MasterDataHandler) CreateCredential(c *gin.Context) {
	var req CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	shipperID, err := uuid.Parse(req.ShipperID)
	if err != nil {
		h.BadRequest(c, "shipper_id must be a UUID")
		return
	}
	cred, err := masterdata.NewChannelCredential(shipperID, masterdata.ChannelType(req.Channel), req.AccessKey, req.SecretKey, req.ExtraInfo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.credentials.Save(c.Request.Context(), cred); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, CredentialResponse{
		ID:        cred.ID.String(),
		ShipperID: cred.ShipperID.String(),
		Channel:   string(cred.ChannelType),
		AccessKey: cred.AccessKey,
		IsActive:  cred.IsActive,
	})
}

func (h *MasterDataHandler) DeleteCredential(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.credentials.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *MasterDataHandler) ListSalesChannels(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	channels, err := h.channels.FindAll(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSalesChannelResponses(channels))
}

// CreateCourierRequest creates a courier
type CreateCourierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Contact string `json:"contact" binding:"max=100"`
}

func (h *MasterDataHandler) CreateCourier(c *gin.Context) {
	var req CreateCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	courier, err := masterdata.NewCourier(req.Name, req.Contact)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.couriers.Save(c.Request.Context(), courier); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCourierResponse(courier))
}

func (h *MasterDataHandler) ListCouriers(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	couriers, err := h.couriers.FindAll(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCourierResponses(couriers))
}

// RegisterRoutes registers the master data routes
func (h *MasterDataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	centers := rg.Group("/centers")
	{
		centers.GET("", h.ListCenters)
		centers.POST("", h.CreateCenter)
		centers.DELETE("/:id", h.DeleteCenter)
	}
	shippers := rg.Group("/shippers")
	{
		shippers.GET("", h.ListShippers)
		shippers.POST("", h.CreateShipper)
		shippers.DELETE("/:id", h.DeleteShipper)
	}
	products := rg.Group("/products")
	{
		products.GET("", h.SearchProducts)
		products.POST("", h.CreateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/:id/receive", h.ReceiveStock)
		products.GET("/:id/movements", h.ListMovements)
	}
	credentials := rg.Group("/credentials")
	{
		credentials.POST("", h.CreateCredential)
		credentials.DELETE("/:id", h.DeleteCredential)
	}
	rg.GET("/channels", h.ListSalesChannels)
	couriers := rg.Group("/couriers")
	{
		couriers.GET("", h.ListCouriers)
		couriers.POST("", h.CreateCourier)
	}
}
