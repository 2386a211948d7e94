package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PLZ-test/wms/internal/application/collection"
	"github.com/PLZ-test/wms/internal/application/fulfillment"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/PLZ-test/wms/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderHandlerFixture struct {
	orders    *MockOrderRepository
	shipments *MockShipmentRepository
	movements *MockMovementRepository
	engine    *gin.Engine
}

func newOrderRouter() *orderHandlerFixture {
	f := &orderHandlerFixture{
		orders:    new(MockOrderRepository),
		shipments: new(MockShipmentRepository),
		movements: new(MockMovementRepository),
	}

	collections := collection.NewService(nil, nil, nil, f.orders, nil, zap.NewNop(), collection.Options{})
	shipping := fulfillment.NewShippingService(f.shipments, f.movements, zap.NewNop())
	h := NewOrderHandler(collections, shipping, f.orders)

	f.engine = gin.New()
	h.RegisterRoutes(f.engine.Group("/api/v1"))
	return f
}

func TestOrderHandler_Upload_MissingFile(t *testing.T) {
	f := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/upload", nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Upload_BadHeaderRejected(t *testing.T) {
	f := newOrderRouter()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "orders.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("order_no,quantity\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "missing required columns")
}

func TestOrderHandler_Ship(t *testing.T) {
	f := newOrderRouter()
	id := uuid.New()
	f.shipments.On("ShipOrders", mock.Anything, []uuid.UUID{id}).Return([]string{"20260305-0001"}, nil)

	body := bytes.NewBufferString(`{"order_ids":["` + id.String() + `"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/ship", body)
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "20260305-0001")
}

func TestOrderHandler_Ship_InsufficientStockMapsTo422(t *testing.T) {
	f := newOrderRouter()
	f.shipments.On("ShipOrders", mock.Anything, mock.Anything).Return(nil, shared.ErrInsufficientStock)

	body := bytes.NewBufferString(`{"order_ids":["` + uuid.NewString() + `"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/ship", body)
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
}

func TestOrderHandler_Ship_EmptyListRejected(t *testing.T) {
	f := newOrderRouter()

	body := bytes.NewBufferString(`{"order_ids":[]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/ship", body)
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Get_NotFoundMapsTo404(t *testing.T) {
	f := newOrderRouter()
	id := uuid.New()
	f.orders.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id.String(), nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Get(t *testing.T) {
	f := newOrderRouter()
	o, err := order.New("20260305-0001", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	o.SetRecipient("Kim Minji", "010-1234-5678", "12 Teheran-ro, Seoul", "06234", "")
	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+o.ID.String(), nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "20260305-0001")
	assert.Contains(t, w.Body.String(), "Kim Minji")
}

func TestOrderHandler_Retry_BadIDRejected(t *testing.T) {
	f := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/not-a-uuid/retry", nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Retry_NonErrorOrderMapsTo422(t *testing.T) {
	f := newOrderRouter()
	o, err := order.New("20260305-0003", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+o.ID.String()+"/retry", nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderHandler_List_BadDateRejected(t *testing.T) {
	f := newOrderRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?date=03-05-2026", nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
